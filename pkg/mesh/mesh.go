package mesh

import (
	"github.com/philipparndt/goloop/pkg/geometry"
)

// Face is a triangle given by three vertex indices.
// The order V1, V2, V3 defines the outward normal.
type Face struct {
	V1, V2, V3 int
}

// NewFace creates a new face
func NewFace(v1, v2, v3 int) Face {
	return Face{V1: v1, V2: v2, V3: v3}
}

// Indices returns the vertex indices in winding order
func (f Face) Indices() [3]int {
	return [3]int{f.V1, f.V2, f.V3}
}

// Edges returns the three edges (v1,v2), (v2,v3), (v3,v1)
func (f Face) Edges() [3]Edge {
	return [3]Edge{
		NewEdge(f.V1, f.V2),
		NewEdge(f.V2, f.V3),
		NewEdge(f.V3, f.V1),
	}
}

// Contains reports whether v is one of the face's corners
func (f Face) Contains(v int) bool {
	return f.V1 == v || f.V2 == v || f.V3 == v
}

// Opposite returns the corner of the face that is not on edge e.
// The second result is false if e is not an edge of the face.
func (f Face) Opposite(e Edge) (int, bool) {
	if !f.Contains(e.A) || !f.Contains(e.B) {
		return 0, false
	}
	for _, v := range f.Indices() {
		if v != e.A && v != e.B {
			return v, true
		}
	}
	return 0, false
}

// Mesh is an indexed triangle mesh. Vertices are identified by their
// position in Vertices. Normals is either empty or holds one normal
// per vertex.
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
	Normals  []geometry.Vector3
}

// New creates a mesh from vertices and faces
func New(vertices []geometry.Vector3, faces []Face) *Mesh {
	return &Mesh{
		Vertices: vertices,
		Faces:    faces,
	}
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// HasNormals reports whether the mesh carries one normal per vertex
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0 && len(m.Normals) == len(m.Vertices)
}

// Triangle returns the geometry of face i with its flat normal
func (m *Mesh) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	v1, v2, v3 := m.Vertices[f.V1], m.Vertices[f.V2], m.Vertices[f.V3]
	return geometry.NewTriangle(geometry.FaceNormal(v1, v2, v3), v1, v2, v3)
}

// Triangles expands the mesh into a triangle soup
func (m *Mesh) Triangles() []geometry.Triangle {
	triangles := make([]geometry.Triangle, len(m.Faces))
	for i := range m.Faces {
		triangles[i] = m.Triangle(i)
	}
	return triangles
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.Vertices)
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for _, f := range m.Faces {
		totalArea += geometry.TriangleArea(m.Vertices[f.V1], m.Vertices[f.V2], m.Vertices[f.V3])
	}
	return totalArea
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:     m.Name,
		Vertices: make([]geometry.Vector3, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Faces, m.Faces)
	if len(m.Normals) > 0 {
		c.Normals = make([]geometry.Vector3, len(m.Normals))
		copy(c.Normals, m.Normals)
	}
	return c
}
