package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"service", "operation", "result"},
	)
	storeOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
)

// Register registers the metrics. Call this once from main.go.
func Register() {
	prometheus.MustRegister(storeOperationsTotal)
	prometheus.MustRegister(storeOperationDuration)
}

// Track times one store operation. Use with a named error return:
//
//	func (s *PostService) Like(ctx context.Context, ...) (err error) {
//		defer metrics.Track("posts", "like")(&err)
//		...
func Track(service, operation string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		result := "ok"
		if errp != nil && *errp != nil {
			result = "error"
		}
		storeOperationsTotal.WithLabelValues(service, operation, result).Inc()
		storeOperationDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
	}
}
