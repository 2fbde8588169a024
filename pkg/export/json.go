// Package export serializes mesh wireframes as JSON (optionally snappy-framed) and DXF.
package export

import (
	"bufio"
	"bytes"
	"io"

	json "github.com/goccy/go-json"
	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/dd0wney/meshline/pkg/mesh"
)

// snappyMagic starts every snappy framed stream (the stream identifier chunk).
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// Document is the serialized wireframe: the result's vertices and lines, verbatim.
type Document struct {
	Vertices [][3]float64 `json:"vertices"`
	Lines    [][2]int     `json:"lines"`
}

// NewDocument copies the serializable part of res.
func NewDocument(res *mesh.Result) Document {
	doc := Document{Vertices: res.Vertices, Lines: res.Lines}
	if doc.Vertices == nil {
		doc.Vertices = [][3]float64{}
	}
	if doc.Lines == nil {
		doc.Lines = [][2]int{}
	}
	return doc
}

// WriteJSON writes res as a single-line JSON document.
// With compress set the stream is snappy framed.
func WriteJSON(w io.Writer, res *mesh.Result, compress bool) error {
	if !compress {
		return errors.Wrap(json.NewEncoder(w).Encode(NewDocument(res)), "encode wireframe")
	}

	sw := snappy.NewBufferedWriter(w)
	if err := json.NewEncoder(sw).Encode(NewDocument(res)); err != nil {
		sw.Close()
		return errors.Wrap(err, "encode wireframe")
	}
	return errors.Wrap(sw.Close(), "flush snappy stream")
}

// ReadJSON decodes a document written by WriteJSON, compressed or not.
func ReadJSON(r io.Reader) (Document, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(snappyMagic))
	if err != nil && err != io.EOF {
		return Document{}, errors.Wrap(err, "peek wireframe")
	}

	var src io.Reader = br
	if bytes.Equal(head, snappyMagic) {
		src = snappy.NewReader(br)
	}

	var doc Document
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(err, "decode wireframe")
	}
	return doc, nil
}
