package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initConversionMetrics() {
	r.ConversionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshline_conversions_total",
			Help: "Total number of mesh conversions by outcome",
		},
		[]string{"status"},
	)

	r.ConversionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meshline_conversion_duration_seconds",
			Help:    "Time spent converting one mesh, including load and export",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.TrianglesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "meshline_triangles_processed_total",
			Help: "Total number of triangles accepted into the pipeline",
		},
	)

	r.DegenerateNormalsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "meshline_degenerate_normals_total",
			Help: "Triangles skipped because their normal had zero or non-finite length",
		},
	)

	r.NonManifoldEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "meshline_non_manifold_edges_total",
			Help: "Edges shared by more than two triangles",
		},
	)

	r.SurfaceGroups = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meshline_surface_groups",
			Help:    "Coplanar surface groups per converted mesh",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	r.BoundaryEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meshline_boundary_edges",
			Help:    "Boundary lines emitted per converted mesh",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
}
