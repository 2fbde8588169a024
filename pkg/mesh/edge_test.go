package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEdge_Canonical(t *testing.T) {
	assert.Equal(t, NewEdge(3, 1), NewEdge(1, 3))
	assert.Equal(t, Edge{A: 1, B: 3}, NewEdge(3, 1))
	assert.Equal(t, Edge{A: 4, B: 4}, NewEdge(4, 4))
	assert.Equal(t, [2]int{1, 3}, NewEdge(3, 1).Pair())
}

func TestEdge_Less(t *testing.T) {
	assert.True(t, Edge{0, 5}.Less(Edge{1, 2}))
	assert.True(t, Edge{1, 2}.Less(Edge{1, 3}))
	assert.False(t, Edge{1, 3}.Less(Edge{1, 3}))
	assert.False(t, Edge{2, 0}.Less(Edge{1, 9}))
}

func TestBuildEdgeAdjacency(t *testing.T) {
	tris := []Triangle{
		{Vertices: [3]int{0, 1, 2}},
		{Vertices: [3]int{0, 2, 3}},
	}

	adj := BuildEdgeAdjacency(tris)

	assert.Equal(t, 5, adj.Len())
	assert.Equal(t, []int{0, 1}, adj.Triangles(NewEdge(2, 0)))
	assert.Equal(t, []int{0}, adj.Triangles(NewEdge(0, 1)))
	assert.Equal(t, []int{1}, adj.Triangles(NewEdge(3, 0)))
	assert.Nil(t, adj.Triangles(NewEdge(1, 3)))

	assert.Equal(t, []Edge{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {0, 3}}, adj.Edges())
}

func TestBuildEdgeAdjacency_NoZeroLengthLists(t *testing.T) {
	tris := []Triangle{
		{Vertices: [3]int{0, 1, 2}},
		{Vertices: [3]int{1, 2, 3}},
		{Vertices: [3]int{2, 3, 4}},
	}

	adj := BuildEdgeAdjacency(tris)
	for _, e := range adj.Edges() {
		assert.NotEmpty(t, adj.Triangles(e), "edge %v", e)
	}
}

func TestBuildEdgeAdjacency_Empty(t *testing.T) {
	adj := BuildEdgeAdjacency(nil)
	assert.Equal(t, 0, adj.Len())
	assert.Empty(t, adj.Edges())
}
