package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/alauddinGen-Z/unilanguage/internal/booking"
)

// fakeCalendarAPI serves just enough of the Calendar v3 surface for the
// adapter: freebusy queries and event inserts.
type fakeCalendarAPI struct {
	t *testing.T

	freeBusyStatus int
	busy           map[string][]*gcal.TimePeriod
	lastFreeBusy   *gcal.FreeBusyRequest

	insertStatus int
	lastInsert   *gcal.Event
	lastCalendar string
}

func (f *fakeCalendarAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/freeBusy"):
			f.handleFreeBusy(w, r)
		case strings.Contains(r.URL.Path, "/calendars/") && strings.HasSuffix(r.URL.Path, "/events"):
			f.handleInsert(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func (f *fakeCalendarAPI) handleFreeBusy(w http.ResponseWriter, r *http.Request) {
	var req gcal.FreeBusyRequest
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
	f.lastFreeBusy = &req

	if f.freeBusyStatus != 0 {
		http.Error(w, `{"error":{"code":500,"message":"backend"}}`, f.freeBusyStatus)
		return
	}

	resp := gcal.FreeBusyResponse{Calendars: map[string]gcal.FreeBusyCalendar{}}
	for id, periods := range f.busy {
		resp.Calendars[id] = gcal.FreeBusyCalendar{Busy: periods}
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(f.t, json.NewEncoder(w).Encode(resp))
}

func (f *fakeCalendarAPI) handleInsert(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	for i, p := range parts {
		if p == "calendars" && i+1 < len(parts) {
			f.lastCalendar = parts[i+1]
		}
	}

	var ev gcal.Event
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&ev))
	f.lastInsert = &ev

	if f.insertStatus != 0 {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, f.insertStatus)
		return
	}

	created := gcal.Event{
		Id:       "evt-created-1",
		HtmlLink: "https://www.google.com/calendar/event?eid=evt-created-1",
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(f.t, json.NewEncoder(w).Encode(created))
}

func newTestBackend(t *testing.T, fake *fakeCalendarAPI) *GoogleBackend {
	t.Helper()

	fake.t = t
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	b, err := NewGoogleBackend(context.Background(), "svc@test.iam", "key", "Asia/Bishkek",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return b
}

func TestBusyIntervals(t *testing.T) {
	fake := &fakeCalendarAPI{
		busy: map[string][]*gcal.TimePeriod{
			"cal-1": {
				{Start: "2025-06-10T10:00:00+06:00", End: "2025-06-10T11:00:00+06:00"},
				{Start: "2025-06-10T15:30:00+06:00", End: "2025-06-10T16:30:00+06:00"},
			},
		},
	}
	b := newTestBackend(t, fake)

	loc, err := time.LoadLocation("Asia/Bishkek")
	require.NoError(t, err)
	from := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
	to := time.Date(2025, 6, 10, 18, 0, 0, 0, loc)

	intervals, err := b.BusyIntervals(context.Background(), "cal-1", from, to)
	require.NoError(t, err)
	require.Len(t, intervals, 2)

	assert.True(t, intervals[0].Start.Equal(time.Date(2025, 6, 10, 10, 0, 0, 0, loc)))
	assert.True(t, intervals[0].End.Equal(time.Date(2025, 6, 10, 11, 0, 0, 0, loc)))
	assert.True(t, intervals[1].Start.Equal(time.Date(2025, 6, 10, 15, 30, 0, 0, loc)))

	// request window and timezone forwarded to the API
	require.NotNil(t, fake.lastFreeBusy)
	assert.Equal(t, from.Format(time.RFC3339), fake.lastFreeBusy.TimeMin)
	assert.Equal(t, to.Format(time.RFC3339), fake.lastFreeBusy.TimeMax)
	assert.Equal(t, "Asia/Bishkek", fake.lastFreeBusy.TimeZone)
	require.Len(t, fake.lastFreeBusy.Items, 1)
	assert.Equal(t, "cal-1", fake.lastFreeBusy.Items[0].Id)
}

func TestBusyIntervals_UnknownCalendarInResponse(t *testing.T) {
	fake := &fakeCalendarAPI{busy: map[string][]*gcal.TimePeriod{}}
	b := newTestBackend(t, fake)

	intervals, err := b.BusyIntervals(context.Background(), "cal-missing",
		time.Now(), time.Now().Add(9*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestBusyIntervals_ServerError(t *testing.T) {
	fake := &fakeCalendarAPI{freeBusyStatus: http.StatusInternalServerError}
	b := newTestBackend(t, fake)

	_, err := b.BusyIntervals(context.Background(), "cal-1",
		time.Now(), time.Now().Add(9*time.Hour))
	assert.Error(t, err)
}

func TestCreateEvent(t *testing.T) {
	fake := &fakeCalendarAPI{}
	b := newTestBackend(t, fake)

	loc, err := time.LoadLocation("Asia/Bishkek")
	require.NoError(t, err)

	spec := booking.EventSpec{
		Summary:     "Consultation: Aigerim Asanova",
		Description: "Course: SAT Preparation\nName: Aigerim Asanova\nWhatsApp: +996 555 123456",
		Start:       time.Date(2025, 6, 10, 14, 0, 0, 0, loc),
		End:         time.Date(2025, 6, 10, 15, 0, 0, 0, loc),
	}

	ref, err := b.CreateEvent(context.Background(), "cal-sat", spec)
	require.NoError(t, err)

	assert.Equal(t, "evt-created-1", ref.ID)
	assert.Equal(t, "https://www.google.com/calendar/event?eid=evt-created-1", ref.Link)

	assert.Equal(t, "cal-sat", fake.lastCalendar)
	require.NotNil(t, fake.lastInsert)
	assert.Equal(t, spec.Summary, fake.lastInsert.Summary)
	assert.Equal(t, spec.Description, fake.lastInsert.Description)
	assert.Equal(t, "2025-06-10T14:00:00", fake.lastInsert.Start.DateTime)
	assert.Equal(t, "Asia/Bishkek", fake.lastInsert.Start.TimeZone)
	assert.Equal(t, "2025-06-10T15:00:00", fake.lastInsert.End.DateTime)
	assert.Equal(t, "Asia/Bishkek", fake.lastInsert.End.TimeZone)
}

func TestCreateEvent_ServerError(t *testing.T) {
	fake := &fakeCalendarAPI{insertStatus: http.StatusForbidden}
	b := newTestBackend(t, fake)

	_, err := b.CreateEvent(context.Background(), "cal-1", booking.EventSpec{
		Summary: "Consultation: x",
		Start:   time.Now(),
		End:     time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}
