// Package calendar implements the calendar backend against the Google
// Calendar API: freebusy queries for availability and event inserts for
// bookings.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/alauddinGen-Z/unilanguage/internal/booking"
)

// local datetime format Google accepts alongside an explicit TimeZone
const eventTimeLayout = "2006-01-02T15:04:05"

// GoogleBackend talks to the Google Calendar API on behalf of a service
// account that the course calendars are shared with.
type GoogleBackend struct {
	svc      *gcal.Service
	timezone string
}

type serviceAccountKey struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// NewGoogleBackend builds a backend authenticated as the given service
// account. Extra options override the credentials entirely, which is how
// tests point the client at a fake server.
func NewGoogleBackend(ctx context.Context, clientEmail, privateKey, timezone string, opts ...option.ClientOption) (*GoogleBackend, error) {
	if len(opts) == 0 {
		creds, err := json.Marshal(serviceAccountKey{
			Type:        "service_account",
			ClientEmail: clientEmail,
			PrivateKey:  privateKey,
			TokenURI:    "https://oauth2.googleapis.com/token",
		})
		if err != nil {
			return nil, fmt.Errorf("encode service account key: %w", err)
		}
		opts = []option.ClientOption{
			option.WithCredentialsJSON(creds),
			option.WithScopes(gcal.CalendarScope),
		}
	}

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &GoogleBackend{
		svc:      svc,
		timezone: timezone,
	}, nil
}

// BusyIntervals queries freebusy for the calendar over [from, to).
func (b *GoogleBackend) BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]booking.Interval, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin:  from.Format(time.RFC3339),
		TimeMax:  to.Format(time.RFC3339),
		TimeZone: b.timezone,
		Items:    []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}

	resp, err := b.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, nil
	}

	intervals := make([]booking.Interval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", period.End, err)
		}
		intervals = append(intervals, booking.Interval{Start: start, End: end})
	}

	return intervals, nil
}

// CreateEvent inserts the consultation event into the course calendar.
func (b *GoogleBackend) CreateEvent(ctx context.Context, calendarID string, spec booking.EventSpec) (*booking.EventRef, error) {
	event := &gcal.Event{
		Summary:     spec.Summary,
		Description: spec.Description,
		Start: &gcal.EventDateTime{
			DateTime: spec.Start.Format(eventTimeLayout),
			TimeZone: b.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: spec.End.Format(eventTimeLayout),
			TimeZone: b.timezone,
		},
	}

	created, err := b.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return &booking.EventRef{
		ID:   created.Id,
		Link: created.HtmlLink,
	}, nil
}
