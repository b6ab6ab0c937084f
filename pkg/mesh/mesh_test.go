package mesh

import (
	"testing"

	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad is the unit square split along the 0-2 diagonal
func quad() *Mesh {
	return New(
		[]geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(1, 1, 0),
			geometry.NewVector3(0, 1, 0),
		},
		[]Face{NewFace(0, 1, 2), NewFace(0, 2, 3)},
	)
}

func TestNewEdgeOrderIndependent(t *testing.T) {
	assert.Equal(t, NewEdge(3, 7), NewEdge(7, 3))
	assert.Equal(t, Edge{A: 3, B: 7}, NewEdge(7, 3))
	assert.Equal(t, "{3, 7}", NewEdge(7, 3).String())
}

func TestNewEdgeIdenticalEndpointsPanics(t *testing.T) {
	assert.Panics(t, func() { NewEdge(2, 2) })
}

func TestFaceOpposite(t *testing.T) {
	f := NewFace(4, 9, 2)

	v, ok := f.Opposite(NewEdge(2, 4))
	assert.True(t, ok)
	assert.Equal(t, 9, v)

	v, ok = f.Opposite(NewEdge(9, 4))
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = f.Opposite(NewEdge(4, 5))
	assert.False(t, ok)
}

func TestEdgesDistinctFirstSeen(t *testing.T) {
	m := quad()
	edges := Edges(m.Faces)

	assert.Equal(t, []Edge{
		{A: 0, B: 1},
		{A: 1, B: 2},
		{A: 0, B: 2},
		{A: 2, B: 3},
		{A: 0, B: 3},
	}, edges)
}

func TestBuildAdjacency(t *testing.T) {
	adj := BuildAdjacency(quad().Faces)

	assert.Len(t, adj, 5)
	assert.Equal(t, []int{0, 1}, adj[NewEdge(2, 0)])
	assert.False(t, adj.IsBoundary(NewEdge(0, 2)))
	assert.True(t, adj.IsBoundary(NewEdge(0, 1)))
	assert.True(t, adj.IsManifold())

	adj = BuildAdjacency([]Face{NewFace(0, 1, 2), NewFace(1, 0, 3), NewFace(0, 1, 4)})
	assert.Equal(t, []int{0, 1, 2}, adj[NewEdge(0, 1)])
	assert.False(t, adj.IsManifold())
}

func TestValence(t *testing.T) {
	assert.Equal(t, []int{2, 1, 2, 1}, Valence(4, quad().Faces))
}

func TestValidate(t *testing.T) {
	require.NoError(t, quad().Validate())

	m := quad()
	m.Faces[1] = NewFace(0, 2, 4)
	assert.ErrorIs(t, m.Validate(), ErrIndexOutOfRange)

	m = quad()
	m.Faces[1] = NewFace(0, -1, 3)
	assert.ErrorIs(t, m.Validate(), ErrIndexOutOfRange)

	m = quad()
	m.Faces[0] = NewFace(0, 1, 1)
	assert.ErrorIs(t, m.Validate(), ErrDegenerateFace)

	m = quad()
	m.Vertices = append(m.Vertices, geometry.NewVector3(5, 5, 5))
	assert.ErrorIs(t, m.Validate(), ErrIsolatedVertex)
}

func TestCompact(t *testing.T) {
	m := New(
		[]geometry.Vector3{
			geometry.NewVector3(9, 9, 9),
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0, 1, 0),
		},
		[]Face{NewFace(1, 2, 3)},
	)

	c := m.Compact()
	require.NoError(t, c.Validate())
	assert.Equal(t, []Face{NewFace(0, 1, 2)}, c.Faces)
	assert.Equal(t, m.Vertices[1:], c.Vertices)
}

func TestSurfaceAreaAndTriangles(t *testing.T) {
	m := quad()
	assert.InDelta(t, 1.0, m.SurfaceArea(), 1e-12)

	tris := m.Triangles()
	require.Len(t, tris, 2)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), tris[0].Normal)
	assert.Equal(t, m.Vertices[3], tris[1].V3)
}

func TestCloneIsDeep(t *testing.T) {
	m := quad()
	c := m.Clone()
	c.Vertices[0] = geometry.NewVector3(7, 7, 7)
	c.Faces[0] = NewFace(1, 2, 3)

	assert.Equal(t, geometry.NewVector3(0, 0, 0), m.Vertices[0])
	assert.Equal(t, NewFace(0, 1, 2), m.Faces[0])
}

func TestWeldExact(t *testing.T) {
	m := quad()
	welded, dropped := Weld("quad", m.Triangles(), 0)

	assert.Zero(t, dropped)
	assert.Equal(t, "quad", welded.Name)
	assert.Equal(t, m.Vertices, welded.Vertices)
	assert.Equal(t, m.Faces, welded.Faces)
}

func TestWeldTolerance(t *testing.T) {
	tris := []geometry.Triangle{
		geometry.NewTriangle(geometry.Vector3{},
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(1, 1, 0)),
		geometry.NewTriangle(geometry.Vector3{},
			geometry.NewVector3(0.0000001, 0, 0),
			geometry.NewVector3(1, 1, 0.0000001),
			geometry.NewVector3(0, 1, 0)),
	}

	exact, _ := Weld("", tris, 0)
	assert.Equal(t, 6, exact.VertexCount())

	welded, dropped := Weld("", tris, 1e-4)
	assert.Zero(t, dropped)
	assert.Equal(t, 4, welded.VertexCount())
	assert.Equal(t, []Face{NewFace(0, 1, 2), NewFace(0, 2, 3)}, welded.Faces)
}

func TestWeldDropsCollapsedTriangles(t *testing.T) {
	tris := []geometry.Triangle{
		geometry.NewTriangle(geometry.Vector3{},
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0, 1, 0)),
		geometry.NewTriangle(geometry.Vector3{},
			geometry.NewVector3(5, 5, 5),
			geometry.NewVector3(5, 5, 5),
			geometry.NewVector3(6, 5, 5)),
	}

	welded, dropped := Weld("", tris, 0)
	assert.Equal(t, 1, dropped)
	require.NoError(t, welded.Validate())
	assert.Equal(t, 3, welded.VertexCount())
}
