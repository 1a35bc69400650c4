package domain

import "errors"

var (
	// Reference errors
	ErrReferenceNotFound = errors.New("referenced entity not found")
	ErrReasonNotFound    = errors.New("reason not found")
	ErrNodeNotFound      = errors.New("node not found")
	ErrStockCardNotFound = errors.New("stock card not found")

	// Uniqueness errors
	ErrStockCardExists = errors.New("stock card already exists for facility, program and orderable")
	ErrNodeCodeExists  = errors.New("node code already exists")

	// Movement errors
	ErrInvalidShape           = errors.New("line item has an invalid shape")
	ErrInvalidQuantity        = errors.New("quantity must be a non-negative integer")
	ErrInvalidOccurredDate    = errors.New("invalid occurred date")
	ErrNegativeStockOnHand    = errors.New("stock on hand cannot become negative")
	ErrConcurrentModification = errors.New("stock card was modified concurrently")
)

// ReferenceError is returned when a reason or node id does not resolve.
// It matches both ErrReferenceNotFound and the specific kind with errors.Is.
type ReferenceError struct {
	Kind error
	ID   string
}

// NewReasonNotFoundError returns the error for an unknown reason id.
func NewReasonNotFoundError(id string) error {
	return &ReferenceError{Kind: ErrReasonNotFound, ID: id}
}

// NewNodeNotFoundError returns the error for an unknown node id.
func NewNodeNotFoundError(id string) error {
	return &ReferenceError{Kind: ErrNodeNotFound, ID: id}
}

func (e *ReferenceError) Error() string {
	return e.Kind.Error() + ": " + e.ID
}

func (e *ReferenceError) Unwrap() []error {
	return []error{ErrReferenceNotFound, e.Kind}
}
