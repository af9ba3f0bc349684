package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrSizeNotFound       = errors.New("size not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid order transition")
	ErrUnexpectedResponse = errors.New("unexpected backend response")
	ErrDismissed          = errors.New("view dismissed before the response arrived")
)

// ConflictError is a soft conflict reported by the backend inside a 2xx body
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// dismissed reports whether the response of a call made under ctx must be dropped
func dismissed(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDismissed, err)
	}
	return nil
}
