package models

import "fmt"

// OrderStatus is the status value the backend stores for a purchase order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"   // Placed, waiting for review
	OrderStatusConfirmed OrderStatus = "Confirmed" // Approved, waiting to ship
	OrderStatusShipped   OrderStatus = "Shipped"   // Handed over for delivery
	OrderStatusRejected  OrderStatus = "Rejected"  // Declined during review
)

// Bucket is one of the disjoint order groupings shown on the orders page
type Bucket string

const (
	BucketPending  Bucket = "pending"
	BucketToShip   Bucket = "toShip"
	BucketShipped  Bucket = "shipped"
	BucketRejected Bucket = "rejected"
)

// AllBuckets lists the buckets in display order
var AllBuckets = []Bucket{BucketPending, BucketToShip, BucketShipped, BucketRejected}

// Order is an order summary as held by the orders page
type Order struct {
	OrderID      int64   `json:"orderID"`
	ProductName  string  `json:"productName"`
	Category     string  `json:"category"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	CustomerName string  `json:"customerName"`
	Address      string  `json:"address"`
	TotalPrice   float64 `json:"totalPrice"`
	ImagePath    string  `json:"imagePath,omitempty"`
}

// FormatTotal renders the total price for display
func (o Order) FormatTotal() string {
	return fmt.Sprintf("$%.2f", o.TotalPrice)
}

// RawOrder is an order summary as returned by the backend listings
type RawOrder struct {
	OrderID          int64   `json:"orderID"`
	ProductName      string  `json:"productName"`
	Size             string  `json:"size"`
	Category         string  `json:"category"`
	Quantity         int     `json:"quantity"`
	TotalPrice       float64 `json:"totalPrice"`
	CustomerName     string  `json:"customerName"`
	WarehouseAddress string  `json:"warehouseAddress"`
	ImagePath        *string `json:"image_path"`
}

// ToOrder maps the backend fields into the order shape
func (r RawOrder) ToOrder() Order {
	o := Order{
		OrderID:      r.OrderID,
		ProductName:  r.ProductName,
		Category:     r.Category,
		Size:         r.Size,
		Quantity:     r.Quantity,
		CustomerName: r.CustomerName,
		Address:      r.WarehouseAddress,
		TotalPrice:   r.TotalPrice,
	}
	if r.ImagePath != nil {
		o.ImagePath = *r.ImagePath
	}
	return o
}

// OrderListEnvelope is the {message, orders} shape some order listings use
type OrderListEnvelope struct {
	Message string     `json:"message"`
	Orders  []RawOrder `json:"orders"`
}

// OrderStatusUpdateRequest is the body of a status change
type OrderStatusUpdateRequest struct {
	OrderStatus OrderStatus `json:"orderStatus"`
}

// OrderView is an order prepared for rendering
type OrderView struct {
	Order
	Total string `json:"total"`
}

// NewOrderView formats an order for display
func NewOrderView(o Order) OrderView {
	return OrderView{Order: o, Total: o.FormatTotal()}
}

// OrderCard is one count card of the orders page
type OrderCard struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}
