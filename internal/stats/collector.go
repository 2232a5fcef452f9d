// Package stats provides a unified interface for collecting engine metrics.
package stats

// Metric names used throughout the engine.
const (
	// Session metrics.
	MetricSearches    = "woodpusher_searches_total"
	MetricEvaluations = "woodpusher_evaluations_total"
	MetricCacheHits   = "woodpusher_result_cache_hits_total"
	MetricCacheMisses = "woodpusher_result_cache_misses_total"

	// Search metrics.
	MetricNodes         = "woodpusher_nodes_total"
	MetricTTHits        = "woodpusher_tt_hits_total"
	MetricSearchSeconds = "woodpusher_search_seconds"
	MetricSearchDepth   = "woodpusher_search_depth"
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
