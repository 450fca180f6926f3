package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	slots     []string
	createdAt time.Time
}

// Memory is the in-process SlotCache. Expired entries are dropped lazily
// on read; there is no background eviction and no size bound, which is
// acceptable for a handful of calendars over a three-month date range.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *Memory) Get(_ context.Context, calendarID, date string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey(calendarID, date)
	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(entry.createdAt) >= m.ttl {
		delete(m.entries, key)
		return nil, false
	}
	return entry.slots, true
}

func (m *Memory) Put(_ context.Context, calendarID, date string, slots []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[slotKey(calendarID, date)] = memoryEntry{
		slots:     slots,
		createdAt: m.now(),
	}
}

func (m *Memory) Invalidate(_ context.Context, calendarID, date string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, slotKey(calendarID, date))
}
