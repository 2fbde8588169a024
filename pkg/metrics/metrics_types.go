package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the converter
type Registry struct {
	// Conversion Metrics
	ConversionsTotal       *prometheus.CounterVec
	ConversionDuration     prometheus.Histogram
	TrianglesTotal         prometheus.Counter
	DegenerateNormalsTotal prometheus.Counter
	NonManifoldEdgesTotal  prometheus.Counter
	SurfaceGroups          prometheus.Histogram
	BoundaryEdges          prometheus.Histogram

	// Batch Metrics
	BatchFilesTotal    *prometheus.CounterVec
	BatchFilesInFlight prometheus.Gauge
	BatchDuration      prometheus.Histogram

	// Process Metrics
	RunSeconds      prometheus.Gauge
	GoRoutines      prometheus.Gauge
	GoMaxProcs      prometheus.Gauge
	HeapAllocBytes  prometheus.Gauge
	TotalAllocBytes prometheus.Gauge
	GCCycles        prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initConversionMetrics()
	r.initBatchMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
