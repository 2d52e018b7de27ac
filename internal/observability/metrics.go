// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency in seconds.
	DatabaseQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// ObjectStoreUploads counts object store uploads by outcome.
	ObjectStoreUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_object_store_uploads_total",
		Help: "Total number of object store uploads by outcome",
	}, []string{"outcome"})
)
