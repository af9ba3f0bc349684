package models

import "fmt"

// Transition is a status change an admin can apply to an order
type Transition struct {
	Name   string
	From   Bucket
	To     Bucket
	Status OrderStatus
}

var (
	TransitionApprove = Transition{Name: "approve", From: BucketPending, To: BucketToShip, Status: OrderStatusConfirmed}
	TransitionReject  = Transition{Name: "reject", From: BucketPending, To: BucketRejected, Status: OrderStatusRejected}
	TransitionShip    = Transition{Name: "ship", From: BucketToShip, To: BucketShipped, Status: OrderStatusShipped}
)

// ValidBucketTransitions defines which bucket moves the orders page exposes
// Flow: PENDING → TO SHIP → SHIPPED, PENDING → REJECTED
var ValidBucketTransitions = map[Bucket][]Bucket{
	BucketPending:  {BucketToShip, BucketRejected},
	BucketToShip:   {BucketShipped},
	BucketShipped:  {}, // Terminal state
	BucketRejected: {}, // Terminal state
}

// bucketRank orders buckets by how far along the pipeline they are
var bucketRank = map[Bucket]int{
	BucketPending:  0,
	BucketToShip:   1,
	BucketShipped:  2,
	BucketRejected: 2,
}

// CanTransitionBucket checks if a move from one bucket to another is valid
func CanTransitionBucket(from, to Bucket) bool {
	validTransitions, exists := ValidBucketTransitions[from]
	if !exists {
		return false
	}
	for _, validTo := range validTransitions {
		if validTo == to {
			return true
		}
	}
	return false
}

// ValidateBucketTransition returns an error if the move is invalid
func ValidateBucketTransition(from, to Bucket) error {
	if !CanTransitionBucket(from, to) {
		return fmt.Errorf("invalid order transition from %s to %s", from, to)
	}
	return nil
}

// IsTerminalBucket checks if no move leaves the bucket
func IsTerminalBucket(b Bucket) bool {
	return len(ValidBucketTransitions[b]) == 0
}

// BucketRank returns the pipeline stage of a bucket
func BucketRank(b Bucket) int {
	return bucketRank[b]
}

// DisplayName returns a human-readable bucket title
func (b Bucket) DisplayName() string {
	switch b {
	case BucketPending:
		return "Pending"
	case BucketToShip:
		return "To Ship"
	case BucketShipped:
		return "Shipped"
	case BucketRejected:
		return "Rejected"
	default:
		return string(b)
	}
}
