package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is an indexed mesh triangle with a unit normal.
type Triangle struct {
	// Vertices are indices into the deduplicated vertex list, in input order.
	Vertices [3]int
	Normal   r3.Vec
	// Source is the triangle's position in the input sequence.
	Source int
}

// Edges returns the triangle's three canonical edges: (0,1), (1,2), (2,0).
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{
		NewEdge(t.Vertices[0], t.Vertices[1]),
		NewEdge(t.Vertices[1], t.Vertices[2]),
		NewEdge(t.Vertices[2], t.Vertices[0]),
	}
}

// TriangleIndexer turns raw triangles into indexed ones through a shared deduplicator.
type TriangleIndexer struct {
	dedup *VertexDeduplicator
}

// NewTriangleIndexer creates an indexer interning vertices into dedup.
func NewTriangleIndexer(dedup *VertexDeduplicator) *TriangleIndexer {
	return &TriangleIndexer{dedup: dedup}
}

// Index interns the three points and normalizes the normal.
// A degenerate normal fails with ErrDegenerateNormal before any vertex is interned.
func (ti *TriangleIndexer) Index(source int, points [3]r3.Vec, normal r3.Vec) (Triangle, error) {
	unit, err := UnitNormal(normal)
	if err != nil {
		return Triangle{}, err
	}

	tri := Triangle{Normal: unit, Source: source}
	for i, p := range points {
		tri.Vertices[i] = ti.dedup.InternIndex(p)
	}
	return tri, nil
}

// UnitNormal divides n by its Euclidean norm.
func UnitNormal(n r3.Vec) (r3.Vec, error) {
	norm := r3.Norm(n)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return r3.Vec{}, ErrDegenerateNormal
	}
	unit := r3.Scale(1/norm, n)
	if !finite(unit) {
		// subnormal norms overflow 1/norm
		return r3.Vec{}, ErrDegenerateNormal
	}
	return unit, nil
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
