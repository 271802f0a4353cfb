package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shootdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shootdesk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	bookingCreations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shootdesk",
			Name:      "booking_creations_total",
			Help:      "Booking creation attempts by result.",
		},
		[]string{"result"},
	)

	exportsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shootdesk",
			Name:      "booking_exports_total",
			Help:      "Spreadsheet exports written to storage.",
		},
	)
)

// Booking creation results
const (
	ResultCreated      = "created"
	ResultInvalid      = "invalid"
	ResultInvalidCrews = "invalid_crews"
	ResultFailed       = "failed"
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingCreations, exportsGenerated)
	})
}

// ObserveHTTP records a finished request
func ObserveHTTP(method, route string, status int, seconds float64) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// IncBookingCreation counts a booking creation attempt
func IncBookingCreation(result string) {
	bookingCreations.WithLabelValues(result).Inc()
}

// IncExport counts a generated export
func IncExport() {
	exportsGenerated.Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
