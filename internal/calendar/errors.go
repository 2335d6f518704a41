package calendar

import (
	"errors"
	"fmt"

	"invoicer/internal/billing"
)

// Common calendar errors
var (
	// ErrMissingCredentials is returned when the OAuth client
	// credentials file has not been downloaded yet.
	ErrMissingCredentials = errors.New("missing OAuth client credentials")

	// ErrNotAuthenticated is returned when no usable token is stored.
	ErrNotAuthenticated = errors.New("not authenticated with Google Calendar")

	// ErrFetchFailed is returned when the events request fails.
	ErrFetchFailed = errors.New("calendar fetch failed")
)

// CalendarError wraps errors with context about the failed calendar
// operation. Every CalendarError matches billing.ErrExternalService.
type CalendarError struct {
	// Op is the operation that failed (e.g., "FetchEvents").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *CalendarError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("calendar: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("calendar: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *CalendarError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *CalendarError) Is(target error) bool {
	if target == billing.ErrExternalService {
		return true
	}
	return errors.Is(e.Err, target)
}

// WrapCalendarError wraps an error as a CalendarError if it isn't already one.
func WrapCalendarError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var calErr *CalendarError
	if errors.As(err, &calErr) {
		return err // Already wrapped
	}

	return &CalendarError{Op: op, Err: err, Details: details}
}
