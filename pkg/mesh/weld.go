package mesh

import (
	"math"

	"github.com/philipparndt/goloop/pkg/geometry"
)

type weldKey struct {
	x, y, z int64
}

// Weld turns a triangle soup into an indexed mesh by merging corners that
// share a position. With tolerance <= 0 positions must match exactly;
// otherwise positions are snapped to a grid of that cell size before
// comparison. Triangles that collapse to fewer than three distinct vertices
// are dropped, and the number of dropped triangles is returned.
func Weld(name string, triangles []geometry.Triangle, tolerance float64) (*Mesh, int) {
	m := &Mesh{
		Name:     name,
		Vertices: make([]geometry.Vector3, 0, len(triangles)/2+3),
		Faces:    make([]Face, 0, len(triangles)),
	}

	exact := make(map[geometry.Vector3]int)
	snapped := make(map[weldKey]int)

	index := func(p geometry.Vector3) int {
		if tolerance <= 0 {
			if i, ok := exact[p]; ok {
				return i
			}
			exact[p] = len(m.Vertices)
		} else {
			k := weldKey{
				x: int64(math.Round(p.X / tolerance)),
				y: int64(math.Round(p.Y / tolerance)),
				z: int64(math.Round(p.Z / tolerance)),
			}
			if i, ok := snapped[k]; ok {
				return i
			}
			snapped[k] = len(m.Vertices)
		}
		m.Vertices = append(m.Vertices, p)
		return len(m.Vertices) - 1
	}

	dropped := 0
	for _, t := range triangles {
		f := Face{V1: index(t.V1), V2: index(t.V2), V3: index(t.V3)}
		if f.V1 == f.V2 || f.V2 == f.V3 || f.V3 == f.V1 {
			dropped++
			continue
		}
		m.Faces = append(m.Faces, f)
	}

	if dropped > 0 {
		// a dropped triangle may leave vertices without faces
		m = m.Compact()
	}
	return m, dropped
}
