package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/philipparndt/goloop/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *mesh.Mesh {
	m := mesh.New(
		[]geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(1, 1, 0),
			geometry.NewVector3(0, 1, 0),
		},
		[]mesh.Face{mesh.NewFace(0, 1, 2), mesh.NewFace(0, 2, 3)},
	)
	m.Name = "square"
	return m
}

func TestWriteParseRoundTrip(t *testing.T) {
	for _, format := range []Format{ASCII, Binary} {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "square.stl")
			require.NoError(t, Write(path, FromMesh(square()), format))

			model, err := Parse(path)
			require.NoError(t, err)
			require.Equal(t, 2, model.TriangleCount())
			assert.Contains(t, model.Name, "square")
			assert.Equal(t, geometry.NewVector3(0, 0, 1), model.Triangles[0].Normal)

			m, dropped := model.ToMesh(0)
			assert.Zero(t, dropped)
			assert.Equal(t, square().Vertices, m.Vertices)
			assert.Equal(t, square().Faces, m.Faces)
			assert.InDelta(t, 1.0, model.SurfaceArea(), 1e-9)
		})
	}
}

func TestReadBinaryStartingWithSolid(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, binaryHeaderSize)
	copy(header, "solid but actually binary")
	buf.Write(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(1)))
	record := []float32{0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 2, 0}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, record))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))

	model, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 1, model.TriangleCount())
	assert.Equal(t, geometry.NewVector3(2, 0, 0), model.Triangles[0].V2)
	assert.InDelta(t, 2.0, model.SurfaceArea(), 1e-9)
}

func TestParseASCII(t *testing.T) {
	data := `solid part one
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 3 0 0
      vertex 0 4 0
    endloop
  endfacet
endsolid part one
`
	model, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "part one", model.Name)
	require.Equal(t, 1, model.TriangleCount())
	assert.InDelta(t, 6.0, model.SurfaceArea(), 1e-12)

	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(3, 4, 0), bbox.Size())
}

func TestParseASCIIInvalidVertex(t *testing.T) {
	data := "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 zero 0\n"
	_, err := Read(strings.NewReader(data))
	assert.ErrorContains(t, err, "line 4")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteBinaryComputesMissingNormals(t *testing.T) {
	model := NewModel("")
	model.AddTriangle(geometry.NewTriangle(
		geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(1, 0, 0),
	))

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, model))
	assert.Equal(t, binaryHeaderSize+4+binaryRecordSize, buf.Len())

	parsed, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(0, 0, -1), parsed.Triangles[0].Normal)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("ASCII")
	require.NoError(t, err)
	assert.Equal(t, ASCII, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Binary, f)

	_, err = ParseFormat("obj")
	assert.Error(t, err)
}

func TestParseASCIIIncompleteFacet(t *testing.T) {
	data := "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid x\n"
	_, err := Read(strings.NewReader(data))
	assert.ErrorContains(t, err, "line 7: facet has 2 vertices")
}
