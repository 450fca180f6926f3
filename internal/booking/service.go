package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/alauddinGen-Z/unilanguage/internal/cache"
	"github.com/alauddinGen-Z/unilanguage/internal/observability/metrics"
)

// Business hours: hourly slots start at 09:00 through 17:00, the last
// one ending at 18:00.
const (
	businessDayStart = 9
	businessDayEnd   = 18
)

// Service computes available consultation slots and writes bookings
// through the calendar backend. It owns no state beyond the slot cache;
// the calendar backend is the system of record.
type Service struct {
	backend CalendarBackend
	cache   cache.SlotCache
	loc     *time.Location
	timeout time.Duration
	metrics *metrics.BookingMetrics
}

func NewService(backend CalendarBackend, slotCache cache.SlotCache, loc *time.Location, timeout time.Duration, m *metrics.BookingMetrics) *Service {
	return &Service{
		backend: backend,
		cache:   slotCache,
		loc:     loc,
		timeout: timeout,
		metrics: m,
	}
}

// AvailableSlots returns the free hourly slots ("HH:00", ascending) on
// the given date for the given resource calendar. Results are cached per
// (calendar, date); a backend failure is surfaced as ErrAvailabilityQuery
// and nothing is cached.
func (s *Service) AvailableSlots(ctx context.Context, calendarID, date string) ([]string, error) {
	if slots, ok := s.cache.Get(ctx, calendarID, date); ok {
		s.metrics.ObserveCacheRead(true)
		return slots, nil
	}
	s.metrics.ObserveCacheRead(false)

	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		// The validation layer guarantees the shape; an unparseable date
		// here means a caller skipped it.
		return nil, fmt.Errorf("%w: bad date %q", ErrAvailabilityQuery, date)
	}

	from := hourOn(day, businessDayStart)
	to := hourOn(day, businessDayEnd)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	busy, err := s.backend.BusyIntervals(callCtx, calendarID, from, to)
	s.metrics.ObserveBackendLatency("busy_intervals", time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityQuery, err)
	}

	slots := freeSlots(day, busy)
	s.cache.Put(ctx, calendarID, date, slots)
	return slots, nil
}

// hourOn pins an hour to the day in the day's own location, so the grid
// stays aligned even across timezone offset changes.
func hourOn(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// freeSlots diffs the working-hours grid against the busy intervals.
// A grid slot [h, h+1) is excluded when it overlaps any busy interval;
// touching boundaries do not count as overlap.
func freeSlots(day time.Time, busy []Interval) []string {
	slots := make([]string, 0, businessDayEnd-businessDayStart)
	for hour := businessDayStart; hour < businessDayEnd; hour++ {
		slotStart := hourOn(day, hour)
		slotEnd := hourOn(day, hour+1)

		blocked := false
		for _, iv := range busy {
			if iv.Overlaps(slotStart, slotEnd) {
				blocked = true
				break
			}
		}
		if !blocked {
			slots = append(slots, fmt.Sprintf("%02d:00", hour))
		}
	}
	return slots
}

// CreateBooking writes a one-hour consultation event for a validated
// request and invalidates the slot cache entry for its calendar and
// date. There is no availability re-check against the backend right
// before the write, so two concurrent bookings for the same slot can
// both succeed; the school resolves those by hand.
func (s *Service) CreateBooking(ctx context.Context, req *Request) (*EventRef, error) {
	start, err := time.ParseInLocation(dateLayout+" 15:04", req.Date+" "+req.Time, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: bad datetime %q %q", ErrBookingCreate, req.Date, req.Time)
	}
	end := start.Add(time.Hour)

	spec := EventSpec{
		Summary: "Consultation: " + req.Name,
		Description: fmt.Sprintf("Course: %s\nName: %s\nWhatsApp: %s",
			req.Course, req.Name, req.WhatsApp),
		Start: start,
		End:   end,
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	callStart := time.Now()
	ref, err := s.backend.CreateEvent(callCtx, req.CalendarID, spec)
	s.metrics.ObserveBackendLatency("create_event", time.Since(callStart).Seconds())
	if err != nil {
		s.metrics.ObserveBooking("failed")
		return nil, fmt.Errorf("%w: %v", ErrBookingCreate, err)
	}

	// The new event changes this day's busy set, so the next read must
	// recompute against the backend.
	s.cache.Invalidate(ctx, req.CalendarID, req.Date)
	s.metrics.ObserveBooking("created")

	return ref, nil
}
