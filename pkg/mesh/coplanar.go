package mesh

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultAngleThreshold is the cosine tolerance for treating two normals as parallel.
const DefaultAngleThreshold = 1e-2

// CoplanarityClassifier decides whether two edge-sharing triangles lie on one surface.
// It compares unit normals by cosine similarity, not by a true dihedral angle.
type CoplanarityClassifier struct {
	minDot float64
}

// NewCoplanarityClassifier creates a classifier accepting dot(n1, n2) > 1 - threshold.
func NewCoplanarityClassifier(threshold float64) CoplanarityClassifier {
	return CoplanarityClassifier{minDot: 1 - threshold}
}

// Coplanar reports whether a and b belong to the same surface. The comparison is strict.
func (c CoplanarityClassifier) Coplanar(a, b Triangle) bool {
	return r3.Dot(a.Normal, b.Normal) > c.minDot
}

// TriangleGraph is the undirected adjacency graph over triangle indices.
// Neighbor lists are ascending and free of duplicates.
type TriangleGraph struct {
	neighbors [][]int
}

// Len returns the number of triangles (graph nodes).
func (g *TriangleGraph) Len() int {
	return len(g.neighbors)
}

// Neighbors returns the triangles adjacent to i.
func (g *TriangleGraph) Neighbors(i int) []int {
	return g.neighbors[i]
}

// BuildTriangleGraph links triangles sharing an edge used by exactly two triangles
// when the classifier accepts the pair. Edges used by more than two triangles never
// link anything and are returned as non-manifold, in first-seen order.
func BuildTriangleGraph(adj *EdgeAdjacency, tris []Triangle, c CoplanarityClassifier) (*TriangleGraph, []Edge) {
	g := &TriangleGraph{neighbors: make([][]int, len(tris))}
	var nonManifold []Edge

	for _, e := range adj.Edges() {
		shared := adj.Triangles(e)
		switch {
		case len(shared) > 2:
			nonManifold = append(nonManifold, e)
		case len(shared) == 2:
			i, j := shared[0], shared[1]
			if i == j {
				continue
			}
			if c.Coplanar(tris[i], tris[j]) {
				g.neighbors[i] = append(g.neighbors[i], j)
				g.neighbors[j] = append(g.neighbors[j], i)
			}
		}
	}

	for i, ns := range g.neighbors {
		if len(ns) > 1 {
			slices.Sort(ns)
			g.neighbors[i] = slices.Compact(ns)
		}
	}
	return g, nonManifold
}
