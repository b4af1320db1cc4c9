package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prorental_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prorental_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	bookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prorental_bookings_created_total",
		Help: "Count of bookings created, by rentable kind and source",
	}, []string{"kind", "source"})

	bookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prorental_booking_transitions_total",
		Help: "Count of booking status transitions, by target status",
	}, []string{"status"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveBookingCreated increments the creation counter.
func ObserveBookingCreated(kind, source string) {
	if source == "" {
		source = "direct"
	}
	bookingsCreated.WithLabelValues(kind, source).Inc()
}

// ObserveBookingTransition increments the transition counter.
func ObserveBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}
