package repositories

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCodeConflict is returned when order code generation keeps losing the
	// unique-constraint race after its retry budget is spent.
	ErrCodeConflict = errors.New("order code already in use")
)

// InsufficientUnitsError is returned by the strict quantity-addressed unit
// operations when fewer units exist in the required starting state than
// requested. The whole transaction is rolled back; no partial effect remains.
type InsufficientUnitsError struct {
	State     string
	Requested int
	Available int
}

func (e *InsufficientUnitsError) Error() string {
	return fmt.Sprintf("insufficient %s units: requested %d, have %d", e.State, e.Requested, e.Available)
}

// ConfirmationRequiredError blocks a guarded delete until the caller supplies
// the confirmation code. Dependents tells the caller how many rows still
// reference the record.
type ConfirmationRequiredError struct {
	Dependents int
	Detail     string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("confirmation required: %s (%d dependent rows)", e.Detail, e.Dependents)
}
