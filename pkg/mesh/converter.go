package mesh

import (
	"fmt"
	"math"

	"github.com/dd0wney/meshline/pkg/logging"
)

// Options tune the conversion.
type Options struct {
	// QuantizeDigits is the decimal precision used for vertex identity.
	QuantizeDigits int
	// AngleThreshold is the cosine tolerance of the coplanarity test.
	AngleThreshold float64
}

// DefaultOptions returns 6-digit quantization and a 1e-2 angle threshold.
func DefaultOptions() Options {
	return Options{
		QuantizeDigits: DefaultQuantizeDigits,
		AngleThreshold: DefaultAngleThreshold,
	}
}

// MaxQuantizeDigits bounds QuantizeDigits; beyond it float64 cannot hold the scaled coordinate exactly.
const MaxQuantizeDigits = 15

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.QuantizeDigits < 0 || o.QuantizeDigits > MaxQuantizeDigits {
		return fmt.Errorf("%w: quantize digits %d outside [0, %d]", ErrInvalidOptions, o.QuantizeDigits, MaxQuantizeDigits)
	}
	if math.IsNaN(o.AngleThreshold) || o.AngleThreshold <= 0 || o.AngleThreshold >= 2 {
		return fmt.Errorf("%w: angle threshold %v outside (0, 2)", ErrInvalidOptions, o.AngleThreshold)
	}
	return nil
}

// Converter runs the mesh-to-wireframe pipeline. It holds no per-mesh state
// and is safe for concurrent use; every Convert call works on a fresh run.
type Converter struct {
	opts       Options
	classifier CoplanarityClassifier
	logger     logging.Logger
}

// NewConverter validates opts and creates a converter. A nil logger discards output.
func NewConverter(opts Options, logger logging.Logger) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Converter{
		opts:       opts,
		classifier: NewCoplanarityClassifier(opts.AngleThreshold),
		logger:     logger.With(logging.Component("mesh")),
	}, nil
}

// Options returns the converter's options.
func (c *Converter) Options() Options {
	return c.opts
}

// run owns all mutable state of a single conversion.
type run struct {
	dedup     *VertexDeduplicator
	indexer   *TriangleIndexer
	triangles []Triangle
	diag      Diagnostics
}

func (c *Converter) newRun(capacity int) *run {
	dedup := NewVertexDeduplicator(c.opts.QuantizeDigits)
	return &run{
		dedup:     dedup,
		indexer:   NewTriangleIndexer(dedup),
		triangles: make([]Triangle, 0, capacity),
	}
}

// Convert deduplicates vertices, segments the mesh into coplanar surfaces and
// returns the boundary edges of every surface.
//
// Triangles with degenerate normals are skipped and edges shared by more than two
// triangles never merge surfaces; both are reported in Result.Diagnostics.
// A triangle/normal count mismatch fails the whole mesh with ErrInputLengthMismatch.
func (c *Converter) Convert(in Input) (*Result, error) {
	if len(in.Triangles) != len(in.Normals) {
		return nil, newError("Convert", in.Name, -1, ErrInputLengthMismatch,
			fmt.Sprintf("%d triangles, %d normals", len(in.Triangles), len(in.Normals)))
	}

	log := c.logger
	if in.Name != "" {
		log = log.With(logging.Mesh(in.Name))
	}

	r := c.newRun(len(in.Triangles))
	for i := range in.Triangles {
		tri, err := r.indexer.Index(i, in.Triangles[i], in.Normals[i])
		if err != nil {
			r.diag.DegenerateNormals = append(r.diag.DegenerateNormals, i)
			log.Warn("skipping triangle", logging.Triangle(i), logging.Error(err))
			continue
		}
		r.triangles = append(r.triangles, tri)
	}

	adj := BuildEdgeAdjacency(r.triangles)
	graph, nonManifold := BuildTriangleGraph(adj, r.triangles, c.classifier)
	r.diag.NonManifoldEdges = nonManifold
	for _, e := range nonManifold {
		log.Warn("non-manifold edge excluded from surface merging",
			logging.Edge(e.A, e.B), logging.Count(len(adj.Triangles(e))))
	}

	groups := SegmentSurfaces(graph)
	lines := ExtractBoundary(groups, r.triangles)

	log.Debug("mesh segmented",
		logging.Triangles(len(r.triangles)),
		logging.Vertices(r.dedup.Len()),
		logging.Groups(len(groups)),
		logging.Lines(len(lines)))

	return newResult(r.dedup.Vertices(), lines, r.triangles, groups, r.diag), nil
}
