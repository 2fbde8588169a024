package mesh_test

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dd0wney/meshline/pkg/mesh"
	"github.com/dd0wney/meshline/pkg/mesh/meshtest"
)

// randomMesh picks triangle corners from a 3x3x3 lattice and normals from the six
// axis directions, so shared edges and coplanar neighbors are common.
func randomMesh(seed int64, triangles int) mesh.Input {
	rng := rand.New(rand.NewSource(seed))
	axes := []r3.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}
	point := func() r3.Vec {
		return r3.Vec{X: float64(rng.Intn(3)), Y: float64(rng.Intn(3)), Z: float64(rng.Intn(3))}
	}

	b := meshtest.NewBuilder("random")
	for i := 0; i < triangles; i++ {
		b.Triangle(point(), point(), point(), axes[rng.Intn(len(axes))])
	}
	return b.Input()
}

func TestConverterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	converter, err := mesh.NewConverter(mesh.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("NewConverter failed: %v", err)
	}

	properties.Property("duplicate points intern to one vertex", prop.ForAll(
		func(x, y, z float64) bool {
			d := mesh.NewVertexDeduplicator(mesh.DefaultQuantizeDigits)
			p := r3.Vec{X: x, Y: y, Z: z}
			q := r3.Vec{
				X: math.RoundToEven(x*1e6)/1e6 + 1e-7,
				Y: math.RoundToEven(y*1e6)/1e6 - 1e-7,
				Z: math.RoundToEven(z*1e6) / 1e6,
			}
			return d.InternIndex(p) == d.InternIndex(p) &&
				d.InternIndex(q) == d.InternIndex(p) &&
				d.Len() == 1
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
	))

	properties.Property("groups partition the triangles", prop.ForAll(
		func(seed int64, n int) bool {
			res, err := converter.Convert(randomMesh(seed, n))
			if err != nil {
				return false
			}
			seen := make([]int, len(res.Triangles))
			for _, g := range res.Groups {
				for _, ti := range g.Triangles {
					if ti < 0 || ti >= len(seen) {
						return false
					}
					seen[ti]++
				}
			}
			for _, c := range seen {
				if c != 1 {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 80),
	))

	properties.Property("lines are ascending pairs, sorted, unique and index known vertices", prop.ForAll(
		func(seed int64, n int) bool {
			res, err := converter.Convert(randomMesh(seed, n))
			if err != nil {
				return false
			}
			for i, l := range res.Lines {
				if l[0] >= l[1] || l[1] >= len(res.Vertices) || l[0] < 0 {
					return false
				}
				if i > 0 {
					prev := res.Lines[i-1]
					if prev[0] > l[0] || (prev[0] == l[0] && prev[1] >= l[1]) {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 80),
	))

	properties.Property("conversion is deterministic", prop.ForAll(
		func(seed int64, n int) bool {
			in := randomMesh(seed, n)
			a, errA := converter.Convert(in)
			b, errB := converter.Convert(in)
			if errA != nil || errB != nil {
				return false
			}
			return reflect.DeepEqual(a.Vertices, b.Vertices) &&
				reflect.DeepEqual(a.Lines, b.Lines) &&
				reflect.DeepEqual(a.Groups, b.Groups)
		},
		gen.Int64(),
		gen.IntRange(0, 80),
	))

	properties.Property("group members are linked only through coplanar neighbors", prop.ForAll(
		func(seed int64, n int) bool {
			res, err := converter.Convert(randomMesh(seed, n))
			if err != nil {
				return false
			}
			// axis normals are either identical or at least 90 degrees apart
			for _, g := range res.Groups {
				first := res.Triangles[g.Triangles[0]].Normal
				for _, ti := range g.Triangles[1:] {
					if res.Triangles[ti].Normal != first {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 80),
	))

	properties.TestingRun(t)
}
