package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec

	progressRecomputesTotal    *prometheus.CounterVec
	goalsCompletedTotal        prometheus.Counter
	notificationsPublishedTotal *prometheus.CounterVec
	streamClientsActive        prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edumentor_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edumentor_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		progressRecomputesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edumentor_progress_recomputes_total",
			Help: "Total number of progress recompute runs by outcome.",
		}, []string{"outcome"})

		goalsCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edumentor_goals_completed_total",
			Help: "Total number of study goals latched as met.",
		})

		notificationsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edumentor_notifications_published_total",
			Help: "Total number of notifications published by type.",
		}, []string{"type"})

		streamClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "edumentor_stream_clients_active",
			Help: "Number of message stream subscribers currently connected.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			progressRecomputesTotal,
			goalsCompletedTotal,
			notificationsPublishedTotal,
			streamClientsActive,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// ProgressRecomputesTotal exposes the counter for progress recompute runs.
func ProgressRecomputesTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return progressRecomputesTotal
}

// GoalsCompletedTotal exposes the counter for latched goals.
func GoalsCompletedTotal() prometheus.Counter {
	RegisterMetrics()
	return goalsCompletedTotal
}

// NotificationsPublishedTotal exposes the counter for published notifications.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublishedTotal
}

// StreamClientsActive exposes the gauge for connected stream subscribers.
func StreamClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return streamClientsActive
}
