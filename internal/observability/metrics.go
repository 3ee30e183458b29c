// Package observability provides domain metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts completed registrations by user type.
	SignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumnihub_signups_total",
		Help: "Total number of completed signups by user type",
	}, []string{"user_type"})

	// LoginsTotal counts login attempts by result (success, invalid_credentials).
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumnihub_logins_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	// JobApplicationsTotal counts accepted job applications.
	JobApplicationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alumnihub_job_applications_total",
		Help: "Total number of job applications recorded",
	})

	// ApplicantExportsTotal counts applicant workbook exports by result.
	ApplicantExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumnihub_applicant_exports_total",
		Help: "Total number of applicant exports by result",
	}, []string{"result"})

	// LikesTotal counts likes recorded on activity posts.
	LikesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alumnihub_likes_total",
		Help: "Total number of likes recorded",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "alumnihub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnectionsTotal is the gauge of active realtime connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "alumnihub_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alumnihub_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
