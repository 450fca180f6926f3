// Package cache holds computed slot lists keyed by (calendar, date) so
// repeated availability reads within the TTL window do not hit the
// calendar backend again.
package cache

import "context"

// SlotCache is safe for concurrent use. It does not coordinate fills:
// concurrent misses may each recompute and Put, which is fine because
// slot computation is idempotent.
type SlotCache interface {
	Get(ctx context.Context, calendarID, date string) ([]string, bool)
	Put(ctx context.Context, calendarID, date string, slots []string)
	Invalidate(ctx context.Context, calendarID, date string)
}

func slotKey(calendarID, date string) string {
	return calendarID + "|" + date
}
