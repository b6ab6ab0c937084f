// Package transform applies affine transforms to mesh vertices before
// subdivision.
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/philipparndt/goloop/pkg/mesh"
)

// Apply returns a copy of m with every vertex transformed by mat.
// Stored normals are dropped since subdivision recomputes them.
func Apply(m *mesh.Mesh, mat mgl64.Mat4) *mesh.Mesh {
	out := &mesh.Mesh{
		Name:     m.Name,
		Vertices: make([]geometry.Vector3, len(m.Vertices)),
		Faces:    make([]mesh.Face, len(m.Faces)),
	}
	copy(out.Faces, m.Faces)

	for i, v := range m.Vertices {
		p := mgl64.TransformCoordinate(mgl64.Vec3{v.X, v.Y, v.Z}, mat)
		out.Vertices[i] = geometry.NewVector3(p.X(), p.Y(), p.Z())
	}
	return out
}

// FitMatrix returns the transform that centers bbox on the origin and
// scales it uniformly so its largest dimension equals size.
// A flat or empty box is only centered.
func FitMatrix(bbox geometry.BoundingBox, size float64) mgl64.Mat4 {
	if bbox.IsEmpty() {
		return mgl64.Ident4()
	}

	c := bbox.Center()
	center := mgl64.Translate3D(-c.X, -c.Y, -c.Z)

	extent := bbox.MaxExtent()
	if extent == 0 || size <= 0 {
		return center
	}
	s := size / extent
	return mgl64.Scale3D(s, s, s).Mul4(center)
}

// Fit centers m on the origin and scales it to the given size
func Fit(m *mesh.Mesh, size float64) *mesh.Mesh {
	return Apply(m, FitMatrix(m.BoundingBox(), size))
}

// RotationMatrix rotates about X, then Y, then Z by the given angles in
// degrees
func RotationMatrix(x, y, z float64) mgl64.Mat4 {
	rx := mgl64.HomogRotate3DX(mgl64.DegToRad(x))
	ry := mgl64.HomogRotate3DY(mgl64.DegToRad(y))
	rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(z))
	return rz.Mul4(ry).Mul4(rx)
}

// ParseRotation parses "x,y,z" degrees
func ParseRotation(s string) (x, y, z float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid rotation %q: expected x,y,z in degrees", s)
	}

	var angles [3]float64
	for i, p := range parts {
		angles[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid rotation %q: %w", s, err)
		}
	}
	return angles[0], angles[1], angles[2], nil
}
