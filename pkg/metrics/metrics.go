package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dd0wney/meshline/pkg/mesh"
)

// Outcome labels
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// RecordConversion records a successful conversion and its diagnostics
func (r *Registry) RecordConversion(res *mesh.Result, duration time.Duration) {
	r.ConversionsTotal.WithLabelValues(StatusSuccess).Inc()
	r.ConversionDuration.Observe(duration.Seconds())
	r.TrianglesTotal.Add(float64(len(res.Triangles)))
	r.DegenerateNormalsTotal.Add(float64(len(res.Diagnostics.DegenerateNormals)))
	r.NonManifoldEdgesTotal.Add(float64(len(res.Diagnostics.NonManifoldEdges)))
	r.SurfaceGroups.Observe(float64(len(res.Groups)))
	r.BoundaryEdges.Observe(float64(len(res.Lines)))
}

// RecordFailure records a conversion that produced no result
func (r *Registry) RecordFailure(duration time.Duration) {
	r.ConversionsTotal.WithLabelValues(StatusFailed).Inc()
	r.ConversionDuration.Observe(duration.Seconds())
}

// RecordBatch records the outcome counts and wall time of a batch run
func (r *Registry) RecordBatch(succeeded, failed, skipped int, duration time.Duration) {
	r.BatchFilesTotal.WithLabelValues(StatusSuccess).Add(float64(succeeded))
	r.BatchFilesTotal.WithLabelValues(StatusFailed).Add(float64(failed))
	r.BatchFilesTotal.WithLabelValues(StatusSkipped).Add(float64(skipped))
	r.BatchDuration.Observe(duration.Seconds())
}

// UpdateSystemMetrics samples runtime statistics; started is when the run began.
func (r *Registry) UpdateSystemMetrics(started time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	r.RunSeconds.Set(time.Since(started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.GoMaxProcs.Set(float64(runtime.GOMAXPROCS(0)))
	r.HeapAllocBytes.Set(float64(ms.HeapAlloc))
	r.TotalAllocBytes.Set(float64(ms.TotalAlloc))
	r.GCCycles.Set(float64(ms.NumGC))
}

// WriteTextfile writes every registered metric to path in the Prometheus text format,
// for pickup by a node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
