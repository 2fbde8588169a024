package mesh

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// SurfaceGroup is a maximal set of edge-connected, mutually coplanar triangles.
type SurfaceGroup struct {
	ID int
	// Triangles holds indices into the converter's triangle list, in visit order.
	Triangles []int
}

// Size returns the number of triangles in the group.
func (g SurfaceGroup) Size() int {
	return len(g.Triangles)
}

// SegmentSurfaces finds the connected components of g.
// Start triangles are taken in ascending order and each component is walked
// depth-first with an explicit stack, so long adjacency chains cannot exhaust
// the call stack. Every triangle ends up in exactly one group.
func SegmentSurfaces(g *TriangleGraph) []SurfaceGroup {
	n := g.Len()
	visited := make([]bool, n)
	groups := make([]SurfaceGroup, 0)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		group := SurfaceGroup{ID: len(groups)}
		stack := arraystack.New()
		stack.Push(start)
		visited[start] = true

		for !stack.Empty() {
			top, _ := stack.Pop()
			tri := top.(int)
			group.Triangles = append(group.Triangles, tri)

			// push in reverse so the lowest neighbor is visited first
			ns := g.Neighbors(tri)
			for k := len(ns) - 1; k >= 0; k-- {
				next := ns[k]
				if !visited[next] {
					visited[next] = true
					stack.Push(next)
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}
