// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Operation metrics, recorded by the logging layer.
	MetricOperationDuration = "dataservice_operation_duration_seconds"
	MetricOperationErrors   = "dataservice_operation_errors_total"

	// Cache metrics.
	MetricCacheHits   = "dataservice_cache_hits_total"
	MetricCacheMisses = "dataservice_cache_misses_total"
	MetricCacheSize   = "dataservice_cache_size"

	// Feature gate metrics.
	MetricGateRejections = "dataservice_gate_rejections_total"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

// OrNoop returns c, or a no-op collector when c is nil.
func OrNoop(c Collector) Collector {
	if c == nil {
		return NewNoop()
	}
	return c
}
