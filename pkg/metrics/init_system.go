package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process gauges are sampled once per batch by UpdateSystemMetrics, so a textfile
// dump shows what the run cost rather than a live view.
func (r *Registry) initSystemMetrics() {
	r.RunSeconds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "meshline_run_seconds",
			Help: "Wall time from process start to the last batch sample",
		},
	)

	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "meshline_goroutines",
			Help: "Goroutines alive after the batch drained its worker pool",
		},
	)

	r.GoMaxProcs = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "meshline_gomaxprocs",
			Help: "CPUs available to the worker pool",
		},
	)

	r.HeapAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "meshline_heap_alloc_bytes",
			Help: "Live heap after the batch; dominated by vertex maps of the largest meshes",
		},
	)

	r.TotalAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "meshline_total_alloc_bytes",
			Help: "Cumulative bytes allocated across all conversions",
		},
	)

	r.GCCycles = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "meshline_gc_cycles",
			Help: "Completed garbage collection cycles",
		},
	)
}
