package export

import (
	"github.com/pkg/errors"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/dd0wney/meshline/pkg/mesh"
)

// BoundaryLayer is the DXF layer holding the wireframe lines.
const BoundaryLayer = "BOUNDARY"

// WriteDXF saves res as a DXF drawing with one LINE entity per boundary edge.
func WriteDXF(path string, res *mesh.Result) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	if _, err := d.AddLayer(BoundaryLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return errors.Wrap(err, "add DXF layer")
	}

	for _, l := range res.Lines {
		a, b := res.Vertices[l[0]], res.Vertices[l[1]]
		if _, err := d.Line(a[0], a[1], a[2], b[0], b[1], b[2]); err != nil {
			return errors.Wrapf(err, "add DXF line %v", l)
		}
	}

	return errors.Wrapf(d.SaveAs(path), "save %s", path)
}
