package mesh

import (
	"github.com/emirpasic/gods/sets/treeset"
)

func edgeComparator(a, b interface{}) int {
	ea, eb := a.(Edge), b.(Edge)
	switch {
	case ea == eb:
		return 0
	case ea.Less(eb):
		return -1
	default:
		return 1
	}
}

// ExtractBoundary collects, for every group, the edges used by exactly one of the
// group's own triangles. An edge on the border between two groups is counted once
// in each and appears once in the result. Interior edges of a flat group are used
// twice and are dropped. Self edges (A == B) from triangles with a repeated vertex
// are never boundary lines. The result is sorted by (A, B).
func ExtractBoundary(groups []SurfaceGroup, tris []Triangle) []Edge {
	boundary := treeset.NewWith(edgeComparator)

	for _, group := range groups {
		counts := make(map[Edge]int, len(group.Triangles)*3)
		for _, ti := range group.Triangles {
			for _, e := range tris[ti].Edges() {
				counts[e]++
			}
		}
		for e, n := range counts {
			if n == 1 && e.A != e.B {
				boundary.Add(e)
			}
		}
	}

	edges := make([]Edge, 0, boundary.Size())
	it := boundary.Iterator()
	for it.Next() {
		edges = append(edges, it.Value().(Edge))
	}
	return edges
}
