package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Input is a raw triangle mesh: three points per triangle and one normal per triangle.
type Input struct {
	// Name identifies the mesh in logs and errors; optional.
	Name      string
	Triangles [][3]r3.Vec
	Normals   []r3.Vec
}

// Diagnostics records recoverable conditions found while converting a mesh.
type Diagnostics struct {
	// DegenerateNormals lists input triangle indices skipped for a zero or non-finite normal.
	DegenerateNormals []int
	// NonManifoldEdges lists edges shared by more than two triangles.
	NonManifoldEdges []Edge
}

// Empty reports whether nothing was recorded.
func (d Diagnostics) Empty() bool {
	return len(d.DegenerateNormals) == 0 && len(d.NonManifoldEdges) == 0
}

// Result is the wireframe of a mesh: unique vertices and boundary lines.
// Only Vertices and Lines are serialized.
type Result struct {
	Vertices [][3]float64 `json:"vertices"`
	Lines    [][2]int     `json:"lines"`

	// Triangles are the accepted triangles; Groups index into this slice.
	Triangles   []Triangle     `json:"-"`
	Groups      []SurfaceGroup `json:"-"`
	Diagnostics Diagnostics    `json:"-"`
}

func newResult(vertices []r3.Vec, lines []Edge, tris []Triangle, groups []SurfaceGroup, diag Diagnostics) *Result {
	res := &Result{
		Vertices:    make([][3]float64, len(vertices)),
		Lines:       make([][2]int, len(lines)),
		Triangles:   tris,
		Groups:      groups,
		Diagnostics: diag,
	}
	for i, v := range vertices {
		res.Vertices[i] = [3]float64{v.X, v.Y, v.Z}
	}
	for i, e := range lines {
		res.Lines[i] = e.Pair()
	}
	return res
}

// FromArrays builds an Input from plain coordinate arrays.
func FromArrays(name string, triangles [][3][3]float64, normals [][3]float64) Input {
	in := Input{
		Name:      name,
		Triangles: make([][3]r3.Vec, len(triangles)),
		Normals:   make([]r3.Vec, len(normals)),
	}
	for i, t := range triangles {
		for k, p := range t {
			in.Triangles[i][k] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
		}
	}
	for i, n := range normals {
		in.Normals[i] = r3.Vec{X: n[0], Y: n[1], Z: n[2]}
	}
	return in
}
