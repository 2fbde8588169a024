package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBatchMetrics() {
	r.BatchFilesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshline_batch_files_total",
			Help: "Files handled by batch runs by outcome",
		},
		[]string{"status"},
	)

	r.BatchFilesInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "meshline_batch_files_in_flight",
			Help: "Files currently being converted",
		},
	)

	r.BatchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meshline_batch_duration_seconds",
			Help:    "Wall time of a whole batch run",
			Buckets: []float64{0.1, 1, 10, 60, 300, 1800},
		},
	)
}
