package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/meshline/pkg/mesh"
	"github.com/dd0wney/meshline/pkg/mesh/meshtest"
)

func convert(t *testing.T, in mesh.Input) *mesh.Result {
	t.Helper()
	c, err := mesh.NewConverter(mesh.DefaultOptions(), nil)
	require.NoError(t, err)
	res, err := c.Convert(in)
	require.NoError(t, err)
	return res
}

func TestWriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, convert(t, meshtest.FlatSquare()), false))

	assert.JSONEq(t,
		`{"vertices":[[0,0,0],[1,0,0],[1,1,0],[0,1,0]],"lines":[[0,1],[0,3],[1,2],[2,3]]}`,
		buf.String())
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &mesh.Result{}, false))
	assert.JSONEq(t, `{"vertices":[],"lines":[]}`, buf.String())
}

func TestWriteJSON_ByteIdenticalAcrossRuns(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteJSON(&a, convert(t, meshtest.UnitCube()), false))
	require.NoError(t, WriteJSON(&b, convert(t, meshtest.UnitCube()), false))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestReadJSON_RoundTrip(t *testing.T) {
	res := convert(t, meshtest.UnitCube())

	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, res, compress))

		if compress {
			assert.True(t, bytes.HasPrefix(buf.Bytes(), snappyMagic))
		}

		doc, err := ReadJSON(&buf)
		require.NoError(t, err)
		assert.Equal(t, res.Vertices, doc.Vertices)
		assert.Equal(t, res.Lines, doc.Lines)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestWriteDXF(t *testing.T) {
	res := convert(t, meshtest.UnitCube())
	path := filepath.Join(t.TempDir(), "cube.dxf")

	require.NoError(t, WriteDXF(path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := 0
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) == "LINE" {
			lines++
		}
	}
	assert.Equal(t, len(res.Lines), lines)
	assert.Contains(t, string(data), BoundaryLayer)
}
