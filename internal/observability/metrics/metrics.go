package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the availability and
// booking flows. All observe methods are nil-safe so callers can run
// without metrics wired.
type BookingMetrics struct {
	cacheReads     *prometheus.CounterVec
	bookingsTotal  *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		cacheReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unilanguage",
			Subsystem: "booking",
			Name:      "slot_cache_reads_total",
			Help:      "Slot cache reads by outcome",
		}, []string{"outcome"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unilanguage",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Booking creation attempts by status",
		}, []string{"status"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "unilanguage",
			Subsystem: "booking",
			Name:      "calendar_backend_latency_seconds",
			Help:      "Latency of calendar backend calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.cacheReads, m.bookingsTotal, m.backendLatency)
	return m
}

func (m *BookingMetrics) ObserveCacheRead(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheReads.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveBackendLatency(op string, seconds float64) {
	if m == nil {
		return
	}
	m.backendLatency.WithLabelValues(op).Observe(seconds)
}
