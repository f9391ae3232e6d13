package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrPastDate is returned when a booking window starts before the
// current instant.
var ErrPastDate = errors.New("date cannot be in the past")

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError reports a missing or malformed user-supplied field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that the requested window overlaps confirmed
// appointments of the same dentist. It carries the conflicting ids.
type ConflictError struct {
	DentistID      string
	Start, End     time.Time
	AppointmentIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("the dentist has a conflicting appointment during this time slot (%s)",
		strings.Join(e.AppointmentIDs, ", "))
}
