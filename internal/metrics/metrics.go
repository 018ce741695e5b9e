package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	documents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "easy_cert",
			Subsystem: "generator",
			Name:      "documents_total",
			Help:      "Certificates rendered, by outcome.",
		},
		[]string{"status"},
	)

	documentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "easy_cert",
			Subsystem: "generator",
			Name:      "document_duration_seconds",
			Help:      "Time to composite and export one certificate.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
	)

	batches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "easy_cert",
			Subsystem: "batch",
			Name:      "runs_total",
			Help:      "Batch runs, by final status.",
		},
		[]string{"status"},
	)

	batchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "easy_cert",
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Wall time of batch runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~7m
		},
	)

	collisions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "easy_cert",
			Subsystem: "batch",
			Name:      "filename_collisions_total",
			Help:      "Archive entries overwritten by a later participant with the same file name.",
		},
	)
)

func init() {
	Registry.MustRegister(
		documents,
		documentDuration,
		batches,
		batchDuration,
		collisions,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordDocument(duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	documents.WithLabelValues(status).Inc()
	documentDuration.Observe(duration.Seconds())
}

func RecordBatch(status string, duration time.Duration, collided int) {
	batches.WithLabelValues(status).Inc()
	batchDuration.Observe(duration.Seconds())
	if collided > 0 {
		collisions.Add(float64(collided))
	}
}
