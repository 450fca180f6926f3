package booking

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPastDate          = errors.New("cannot book dates in the past")
	ErrDateTooFar        = errors.New("cannot book more than 3 months in advance")
	ErrOutsideHours      = errors.New("booking time must be between 09:00 and 17:00")
	ErrUnknownCourse     = errors.New("invalid course selected")
	ErrAvailabilityQuery = errors.New("failed to fetch available slots")
	ErrBookingCreate     = errors.New("failed to create booking")
)

// ValidationError carries per-field messages for a request whose shape is
// wrong. Business-rule errors use the sentinel errors above instead.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// CalendarBackend is the calendar capability the booking flow needs. The
// backend owns all booking state; this service never reads individual
// events back, only busy ranges.
type CalendarBackend interface {
	// BusyIntervals returns the busy ranges on calendarID that overlap
	// [from, to).
	BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]Interval, error)

	// CreateEvent writes a new event to calendarID.
	CreateEvent(ctx context.Context, calendarID string, spec EventSpec) (*EventRef, error)
}
