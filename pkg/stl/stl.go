// Package stl reads and writes STL triangle meshes in the binary and ASCII encodings.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dd0wney/meshline/pkg/mesh"
)

const (
	headerSize = 80
	recordSize = 50 // normal + 3 vertices as float32, plus a uint16 attribute count
)

// ErrMalformedSTL is returned for input that is neither valid binary nor valid ASCII STL.
var ErrMalformedSTL = errors.New("malformed STL")

// ReadFile reads the STL file at path. The mesh is named after the path.
func ReadFile(path string) (mesh.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return mesh.Input{}, errors.Wrap(err, "open STL")
	}
	defer f.Close()

	in, err := Read(f)
	if err != nil {
		return mesh.Input{}, errors.Wrapf(err, "read %s", path)
	}
	in.Name = path
	return in, nil
}

// Read decodes a binary or ASCII STL stream.
// Binary is chosen when the size matches the triangle count in the header, since
// some exporters start binary headers with "solid" too.
func Read(r io.Reader) (mesh.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return mesh.Input{}, errors.Wrap(err, "read STL")
	}

	if isBinary(data) {
		return readBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return readASCII(data)
	}
	return mesh.Input{}, errors.Wrap(ErrMalformedSTL, "neither binary nor ASCII")
}

func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return uint64(len(data)) == headerSize+4+uint64(count)*recordSize
}

func readBinary(data []byte) (mesh.Input, error) {
	count := int(binary.LittleEndian.Uint32(data[headerSize:]))
	in := mesh.Input{
		Triangles: make([][3]r3.Vec, count),
		Normals:   make([]r3.Vec, count),
	}

	off := headerSize + 4
	for i := 0; i < count; i++ {
		rec := data[off : off+recordSize]
		in.Normals[i] = readVec(rec[0:12])
		for k := 0; k < 3; k++ {
			start := 12 + 12*k
			in.Triangles[i][k] = readVec(rec[start : start+12])
		}
		off += recordSize
	}
	return in, nil
}

func readVec(b []byte) r3.Vec {
	return r3.Vec{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	}
}

type asciiScanner struct {
	sc  *bufio.Scanner
	pos int
}

func (s *asciiScanner) next() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	s.pos++
	return s.sc.Text(), true
}

func (s *asciiScanner) expect(words ...string) error {
	for _, w := range words {
		tok, ok := s.next()
		if !ok {
			return errors.Wrapf(ErrMalformedSTL, "expected %q, got end of input", w)
		}
		if tok != w {
			return errors.Wrapf(ErrMalformedSTL, "expected %q, got %q (token %d)", w, tok, s.pos)
		}
	}
	return nil
}

func (s *asciiScanner) vec() (r3.Vec, error) {
	var c [3]float64
	for i := range c {
		tok, ok := s.next()
		if !ok {
			return r3.Vec{}, errors.Wrap(ErrMalformedSTL, "truncated coordinate")
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return r3.Vec{}, errors.Wrapf(ErrMalformedSTL, "bad number %q (token %d)", tok, s.pos)
		}
		c[i] = f
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

func readASCII(data []byte) (mesh.Input, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), len(data)+1)
	sc.Split(bufio.ScanWords)
	s := &asciiScanner{sc: sc}

	if err := s.expect("solid"); err != nil {
		return mesh.Input{}, err
	}

	var in mesh.Input
	for {
		tok, ok := s.next()
		if !ok {
			return mesh.Input{}, errors.Wrap(ErrMalformedSTL, "missing endsolid")
		}
		switch tok {
		case "endsolid":
			return in, nil
		case "facet":
			if err := s.expect("normal"); err != nil {
				return mesh.Input{}, err
			}
			n, err := s.vec()
			if err != nil {
				return mesh.Input{}, err
			}
			if err := s.expect("outer", "loop"); err != nil {
				return mesh.Input{}, err
			}
			var tri [3]r3.Vec
			for k := range tri {
				if err := s.expect("vertex"); err != nil {
					return mesh.Input{}, err
				}
				if tri[k], err = s.vec(); err != nil {
					return mesh.Input{}, err
				}
			}
			if err := s.expect("endloop", "endfacet"); err != nil {
				return mesh.Input{}, err
			}
			in.Triangles = append(in.Triangles, tri)
			in.Normals = append(in.Normals, n)
		default:
			// solid name tokens before the first facet
			if len(in.Triangles) > 0 {
				return mesh.Input{}, errors.Wrapf(ErrMalformedSTL, "unexpected %q (token %d)", tok, s.pos)
			}
		}
	}
}

// Write encodes in as binary STL. Coordinates are narrowed to float32.
func Write(w io.Writer, in mesh.Input) error {
	if len(in.Triangles) != len(in.Normals) {
		return errors.Wrapf(mesh.ErrInputLengthMismatch, "%d triangles, %d normals", len(in.Triangles), len(in.Normals))
	}
	if uint64(len(in.Triangles)) > math.MaxUint32 {
		return errors.New("too many triangles for binary STL")
	}

	bw := bufio.NewWriter(w)
	header := make([]byte, headerSize)
	copy(header, "meshline binary STL")
	if _, err := bw.Write(header); err != nil {
		return errors.Wrap(err, "write STL header")
	}

	buf := make([]byte, recordSize)
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(in.Triangles)))
	if _, err := bw.Write(buf[:4]); err != nil {
		return errors.Wrap(err, "write STL count")
	}

	for i, tri := range in.Triangles {
		putVec(buf[0:12], in.Normals[i])
		for k, p := range tri {
			putVec(buf[12+12*k:24+12*k], p)
		}
		buf[48], buf[49] = 0, 0
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrapf(err, "write STL triangle %d", i)
		}
	}
	return errors.Wrap(bw.Flush(), "flush STL")
}

func putVec(b []byte, v r3.Vec) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
