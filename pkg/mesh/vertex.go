package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultQuantizeDigits is the number of decimal digits kept when deciding vertex identity.
const DefaultQuantizeDigits = 6

// vertexKey holds the quantized coordinates, scaled to integers-as-floats.
// Float map keys compare with ==, so -0 and +0 land on the same key.
type vertexKey [3]float64

// VertexDeduplicator maps raw points to stable integer indices in first-seen order.
// Two points whose coordinates agree after rounding to the configured number of
// decimal digits share an index. The stored vertex is the first original point seen.
type VertexDeduplicator struct {
	scale    float64
	index    map[vertexKey]int
	vertices []r3.Vec
}

// NewVertexDeduplicator creates a deduplicator quantizing to digits decimal places.
func NewVertexDeduplicator(digits int) *VertexDeduplicator {
	return &VertexDeduplicator{
		scale: math.Pow10(digits),
		index: make(map[vertexKey]int),
	}
}

// InternIndex returns the index of p, appending it on first sight.
func (d *VertexDeduplicator) InternIndex(p r3.Vec) int {
	key := d.key(p)
	if idx, ok := d.index[key]; ok {
		return idx
	}
	idx := len(d.vertices)
	d.index[key] = idx
	d.vertices = append(d.vertices, p)
	return idx
}

// Len returns the number of unique vertices seen so far.
func (d *VertexDeduplicator) Len() int {
	return len(d.vertices)
}

// Vertices returns the unique vertices in index order. The slice is owned by the deduplicator.
func (d *VertexDeduplicator) Vertices() []r3.Vec {
	return d.vertices
}

// Rounding is half-to-even, matching how numeric array libraries round decimals.
func (d *VertexDeduplicator) key(p r3.Vec) vertexKey {
	return vertexKey{
		math.RoundToEven(p.X * d.scale),
		math.RoundToEven(p.Y * d.scale),
		math.RoundToEven(p.Z * d.scale),
	}
}
