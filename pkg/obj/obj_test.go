package obj

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/philipparndt/goloop/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQuadIsFanTriangulated(t *testing.T) {
	data := `# unit square
o square
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
usemtl none
f 1/1 2/1 3/1 4/1
`
	m, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "square", m.Name)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []mesh.Face{mesh.NewFace(0, 1, 2), mesh.NewFace(0, 2, 3)}, m.Faces)
}

func TestReadIndexForms(t *testing.T) {
	data := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
f 1/1/1 2/1/1 3/1/1
f -3 -2 -1
`
	m, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, m.Faces, 3)
	for _, f := range m.Faces {
		assert.Equal(t, mesh.NewFace(0, 1, 2), f)
	}
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"index out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"zero index":         "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"bad coordinate":     "v 0 x 0\n",
		"short vertex":       "v 0 0\n",
		"short face":         "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(data))
			assert.Error(t, err)
		})
	}
}

func TestEncodeWithNormals(t *testing.T) {
	m := mesh.New(
		[]geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0, 0.5, 0),
		},
		[]mesh.Face{mesh.NewFace(0, 1, 2)},
	)
	m.Name = "tri"
	m.Normals = []geometry.Vector3{
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 1),
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m))

	expected := `# goloop
o tri
v 0 0 0
v 1 0 0
v 0 0.5 0
vn 0 0 1
vn 0 0 1
vn 0 0 1
f 1//1 2//2 3//3
`
	assert.Equal(t, expected, buf.String())
}

func TestWriteParseRoundTrip(t *testing.T) {
	m := mesh.New(
		[]geometry.Vector3{
			geometry.NewVector3(0.1, 0.2, 0.3),
			geometry.NewVector3(1e-9, -4, 7.25),
			geometry.NewVector3(3, 2, 1),
		},
		[]mesh.Face{mesh.NewFace(2, 0, 1)},
	)

	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, Write(path, m))

	parsed, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "model", parsed.Name)
	assert.Equal(t, m.Vertices, parsed.Vertices)
	assert.Equal(t, m.Faces, parsed.Faces)
}
