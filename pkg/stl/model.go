package stl

import (
	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/philipparndt/goloop/pkg/mesh"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// FromMesh expands an indexed mesh into an STL model. Facet normals are
// the flat normals of the faces.
func FromMesh(m *mesh.Mesh) *Model {
	return &Model{
		Name:      m.Name,
		Triangles: m.Triangles(),
	}
}

// ToMesh welds the triangles into an indexed mesh, see mesh.Weld.
// It also returns the number of triangles dropped as degenerate.
func (m *Model) ToMesh(tolerance float64) (*mesh.Mesh, int) {
	return mesh.Weld(m.Name, m.Triangles, tolerance)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
