// Package meshtest builds small meshes with known wireframes for tests.
package meshtest

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dd0wney/meshline/pkg/mesh"
)

// Builder accumulates triangles and normals.
type Builder struct {
	in mesh.Input
}

// NewBuilder starts an empty mesh with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{in: mesh.Input{Name: name}}
}

// Triangle appends one triangle with normal n.
func (b *Builder) Triangle(p0, p1, p2, n r3.Vec) *Builder {
	b.in.Triangles = append(b.in.Triangles, [3]r3.Vec{p0, p1, p2})
	b.in.Normals = append(b.in.Normals, n)
	return b
}

// Quad appends (a,b,c) and (a,c,d); the shared diagonal is a-c.
func (b *Builder) Quad(p0, p1, p2, p3, n r3.Vec) *Builder {
	return b.Triangle(p0, p1, p2, n).Triangle(p0, p2, p3, n)
}

// Input returns the accumulated mesh.
func (b *Builder) Input() mesh.Input {
	return b.in
}

func v(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// FlatSquare is a unit square in z=0 made of two triangles sharing the 0-2 diagonal.
func FlatSquare() mesh.Input {
	return NewBuilder("square").
		Quad(v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0), v(0, 0, 1)).
		Input()
}

// UnitCube is an axis-aligned unit cube, two triangles per face, outward normals.
func UnitCube() mesh.Input {
	return NewBuilder("cube").
		Quad(v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), v(1, 0, 0), v(0, 0, -1)). // bottom
		Quad(v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1), v(0, 0, 1)).  // top
		Quad(v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1), v(0, -1, 0)). // front
		Quad(v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1), v(1, 0, 0)).  // right
		Quad(v(1, 1, 0), v(0, 1, 0), v(0, 1, 1), v(1, 1, 1), v(0, 1, 0)).  // back
		Quad(v(0, 1, 0), v(0, 0, 0), v(0, 0, 1), v(0, 1, 1), v(-1, 0, 0)). // left
		Input()
}

// Hinge is two triangles sharing the edge (0,0,0)-(1,0,0). The first lies in z=0
// with normal +Z; the second is folded by phi radians, so the normals' dot is cos(phi).
func Hinge(phi float64) mesh.Input {
	s, c := math.Sincos(phi)
	return NewBuilder("hinge").
		Triangle(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0), v(0, 0, 1)).
		Triangle(v(0, 0, 0), v(1, 0, 0), v(0, c, s), v(0, -s, c)).
		Input()
}

// Strip is a flat ribbon of n unit quads along +X in z=0 (2n triangles).
func Strip(n int) mesh.Input {
	b := NewBuilder("strip")
	for i := 0; i < n; i++ {
		x := float64(i)
		b.Quad(v(x, 0, 0), v(x+1, 0, 0), v(x+1, 1, 0), v(x, 1, 0), v(0, 0, 1))
	}
	return b.Input()
}

// Fan is k triangles all sharing the edge (0,0,0)-(0,0,1), a non-manifold edge for k > 2.
// Every blade has the same normal so only the shared-edge rule keeps them apart.
func Fan(k int) mesh.Input {
	b := NewBuilder("fan")
	for i := 0; i < k; i++ {
		y := float64(i + 1)
		b.Triangle(v(0, 0, 0), v(0, 0, 1), v(1, y, 0), v(0, 0, 1))
	}
	return b.Input()
}
