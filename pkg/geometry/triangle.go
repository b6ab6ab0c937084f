package geometry

import "math"

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the unit normal from the winding order V1, V2, V3
func (t Triangle) CalculateNormal() Vector3 {
	return FaceNormal(t.V1, t.V2, t.V3)
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return TriangleArea(t.V1, t.V2, t.V3)
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Angles returns the three interior angles in radians
func (t Triangle) Angles() [3]float64 {
	return [3]float64{
		AngleAtVertex(t.V1, t.V2, t.V3),
		AngleAtVertex(t.V2, t.V3, t.V1),
		AngleAtVertex(t.V3, t.V1, t.V2),
	}
}

// FaceNormal returns the unit normal of the triangle a, b, c.
// The direction follows the right-hand rule over the winding order.
// A degenerate triangle yields the zero vector.
func FaceNormal(a, b, c Vector3) Vector3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// TriangleArea returns the area of the triangle a, b, c
func TriangleArea(a, b, c Vector3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2.0
}

// AngleAtVertex returns the interior angle in radians at vertex p of the
// triangle p, q, r. If either edge leaving p has zero length the angle is 0.
func AngleAtVertex(p, q, r Vector3) float64 {
	e1 := q.Sub(p)
	e2 := r.Sub(p)
	l1 := e1.Length()
	l2 := e2.Length()
	if l1 == 0 || l2 == 0 {
		return 0
	}

	cos := e1.Dot(e2) / (l1 * l2)
	// rounding can push |cos| slightly past 1
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}
