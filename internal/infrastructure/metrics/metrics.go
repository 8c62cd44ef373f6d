package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tracker-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worktrack",
			Subsystem: "tracker_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "worktrack",
			Subsystem: "tracker_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Authorization decision counters
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worktrack",
			Subsystem: "tracker_api",
			Name:      "authz_decisions_total",
			Help:      "Total authorization decisions by operation and outcome",
		},
		[]string{"resource", "operation", "outcome"},
	)

	// Login attempt counters
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worktrack",
			Subsystem: "tracker_api",
			Name:      "login_attempts_total",
			Help:      "Total login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Time entry write counters
	TimeEntryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worktrack",
			Subsystem: "tracker_api",
			Name:      "time_entry_writes_total",
			Help:      "Total time entry create, update and delete operations",
		},
		[]string{"operation", "status"},
	)

	// DB query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "worktrack",
			Subsystem: "tracker_api",
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"query_type"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordAuthzDecision records an authorization decision
func RecordAuthzDecision(resource, operation, outcome string) {
	AuthzDecisionsTotal.WithLabelValues(resource, operation, outcome).Inc()
}

// RecordLoginAttempt records a login attempt
func RecordLoginAttempt(outcome string) {
	LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordTimeEntryWrite records a time entry write operation
func RecordTimeEntryWrite(operation, status string) {
	TimeEntryWritesTotal.WithLabelValues(operation, status).Inc()
}

// RecordDBQuery records a database query
func RecordDBQuery(queryType string, durationSec float64) {
	DBQueryDuration.WithLabelValues(queryType).Observe(durationSec)
}
