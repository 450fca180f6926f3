package booking

import "time"

// Interval is a half-open [Start, End) busy range on a resource calendar.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the interval overlaps [start, end) under
// half-open semantics: touching boundaries do not overlap.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return iv.Start.Before(end) && start.Before(iv.End)
}

// EventSpec describes the calendar event a booking turns into. The
// description is the only durable record of the booking, so it carries
// everything the school needs to follow up.
type EventSpec struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// EventRef identifies an event created in the calendar backend.
type EventRef struct {
	ID   string
	Link string
}

// Request is a booking request that passed validation. CalendarID is the
// resolved resource calendar for the requested course.
type Request struct {
	Name       string
	WhatsApp   string
	Course     string
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
	CalendarID string
}

// RawRequest is the unvalidated POST body as received from the widget.
type RawRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	WhatsApp string `json:"whatsapp" validate:"required,min=10,phone"`
	Course   string `json:"course" validate:"required,course"`
	Date     string `json:"date" validate:"required,dateshape"`
	Time     string `json:"time" validate:"required,timeshape"`
}
