package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveCacheRead(true)
	m.ObserveCacheRead(true)
	m.ObserveCacheRead(false)
	m.ObserveBooking("created")
	m.ObserveBooking("failed")
	m.ObserveBackendLatency("busy_intervals", 0.25)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheReads.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheReads.WithLabelValues("miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingsTotal.WithLabelValues("failed")))
}

func TestBookingMetrics_NilSafe(t *testing.T) {
	var m *BookingMetrics

	assert.NotPanics(t, func() {
		m.ObserveCacheRead(true)
		m.ObserveBooking("created")
		m.ObserveBackendLatency("create_event", 0.1)
	})
}
