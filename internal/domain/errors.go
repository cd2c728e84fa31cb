package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, trip ending before it starts).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// Specific failures. Each wraps one of the roots above so callers can match
// either the precise case or the general category with errors.Is.
var (
	ErrTripNotFound       = fmt.Errorf("trip %w", ErrNotFound)
	ErrInvalidDateRange   = fmt.Errorf("%w: trip start date must be before its end date", ErrValidation)
	ErrPastStartDate      = fmt.Errorf("%w: trip start date must not be in the past", ErrValidation)
	ErrActivityOutOfRange = fmt.Errorf("%w: activity must occur between the trip start and end dates", ErrValidation)
)
