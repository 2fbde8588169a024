package mesh

// Edge is an undirected vertex-index pair stored with A <= B.
type Edge struct {
	A, B int
}

// NewEdge returns the canonical edge for the pair (a, b).
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Less orders edges by (A, B).
func (e Edge) Less(o Edge) bool {
	if e.A != o.A {
		return e.A < o.A
	}
	return e.B < o.B
}

// Pair returns the edge as an ascending index pair.
func (e Edge) Pair() [2]int {
	return [2]int{e.A, e.B}
}

// EdgeAdjacency maps each canonical edge to the triangles containing it,
// in triangle-processing order. Edges are also kept in first-seen order
// so iteration does not depend on map ordering.
type EdgeAdjacency struct {
	triangles map[Edge][]int
	order     []Edge
}

// BuildEdgeAdjacency records, for every edge of every triangle, the triangle's index in tris.
func BuildEdgeAdjacency(tris []Triangle) *EdgeAdjacency {
	adj := &EdgeAdjacency{
		triangles: make(map[Edge][]int, len(tris)*3/2),
		order:     make([]Edge, 0, len(tris)*3/2),
	}

	for i, tri := range tris {
		for _, e := range tri.Edges() {
			list, seen := adj.triangles[e]
			if !seen {
				adj.order = append(adj.order, e)
			}
			adj.triangles[e] = append(list, i)
		}
	}
	return adj
}

// Triangles returns the triangles sharing e, or nil if e is unknown.
func (a *EdgeAdjacency) Triangles(e Edge) []int {
	return a.triangles[e]
}

// Edges returns all edges in first-seen order.
func (a *EdgeAdjacency) Edges() []Edge {
	return a.order
}

// Len returns the number of distinct edges.
func (a *EdgeAdjacency) Len() int {
	return len(a.order)
}
