package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Inbound (BFF) HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_console_http_requests_total",
			Help: "Total number of HTTP requests served by the console",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_console_http_request_duration_seconds",
			Help:    "Console HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Outbound calls to the clinic backend
	backendCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_console_backend_calls_total",
			Help: "Total number of calls made to the clinic backend",
		},
		[]string{"method", "path", "outcome"},
	)

	backendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_console_backend_call_duration_seconds",
			Help:    "Clinic backend call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// View-model lifecycle
	refreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_console_view_refreshes_total",
			Help: "View-model refreshes by view and result (ok, error, stale)",
		},
		[]string{"view", "result"},
	)

	pollTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_console_poll_ticks_total",
			Help: "Polling loop ticks by loop name",
		},
		[]string{"loop"},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordBackendCall records one call to the clinic backend. outcome is
// "ok", "api_error" or "network_error".
func RecordBackendCall(method, path, outcome string, duration time.Duration) {
	backendCallsTotal.WithLabelValues(method, path, outcome).Inc()
	backendCallDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRefresh records the result of a view-model fetch.
func RecordRefresh(view, result string) {
	refreshesTotal.WithLabelValues(view, result).Inc()
}

// RecordPollTick records one tick of a polling loop.
func RecordPollTick(loop string) {
	pollTicksTotal.WithLabelValues(loop).Inc()
}

// Handler returns the Prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
