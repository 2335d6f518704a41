package billing

import (
	"errors"
	"fmt"
)

// Common billing errors
var (
	// ErrNotFound is returned when a referenced cycle or invoice
	// identifier does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for caller mistakes: an empty event set,
	// a malformed selection string, or a missing required rate.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyEventSet is returned when an invoice is compiled for a
	// cycle with no bound events. It matches ErrValidation.
	ErrEmptyEventSet = fmt.Errorf("%w: no events assigned to cycle", ErrValidation)

	// ErrMissingRate is returned when no hourly rate could be resolved
	// for compilation. It matches ErrValidation.
	ErrMissingRate = fmt.Errorf("%w: no hourly rate set", ErrValidation)

	// ErrExternalService is returned when the calendar provider call
	// fails (auth, network, quota).
	ErrExternalService = errors.New("calendar service request failed")

	// ErrStorage is returned for underlying persistence failures.
	// Storage errors are fatal to the current operation and not retried.
	ErrStorage = errors.New("storage operation failed")
)

// BillingError wraps errors with context about the failed operation.
type BillingError struct {
	// Op is the operation that failed (e.g., "Compile", "Assign").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *BillingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("billing: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("billing: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *BillingError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *BillingError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapBillingError wraps an error as a BillingError if it isn't already one.
func WrapBillingError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var billingErr *BillingError
	if errors.As(err, &billingErr) {
		return err // Already wrapped
	}

	return &BillingError{Op: op, Err: err, Details: details}
}

// SelectionError reports a malformed event selection string. Callers
// catch it separately from other failures so they can re-prompt.
type SelectionError struct {
	Input  string
	Token  string
	Reason string
}

// Error implements the error interface.
func (e *SelectionError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid selection %q: token %q: %s", e.Input, e.Token, e.Reason)
	}
	return fmt.Sprintf("invalid selection %q: %s", e.Input, e.Reason)
}

// Is makes a SelectionError match ErrValidation.
func (e *SelectionError) Is(target error) bool {
	return target == ErrValidation
}
