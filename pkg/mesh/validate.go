package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a face refers to a missing vertex
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	// ErrDegenerateFace is returned when a face repeats a vertex index
	ErrDegenerateFace = errors.New("face repeats a vertex index")
	// ErrIsolatedVertex is returned when a vertex belongs to no face
	ErrIsolatedVertex = errors.New("vertex is not used by any face")
)

// Validate checks the topology preconditions of a subdivision step:
// every face index is in range, the three indices of a face are distinct
// and every vertex is used by at least one face.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, v := range f.Indices() {
			if v < 0 || v >= n {
				return fmt.Errorf("face %d: index %d with %d vertices: %w", i, v, n, ErrIndexOutOfRange)
			}
		}
		if f.V1 == f.V2 || f.V2 == f.V3 || f.V3 == f.V1 {
			return fmt.Errorf("face %d (%d, %d, %d): %w", i, f.V1, f.V2, f.V3, ErrDegenerateFace)
		}
	}

	for v, count := range Valence(n, m.Faces) {
		if count == 0 {
			return fmt.Errorf("vertex %d: %w", v, ErrIsolatedVertex)
		}
	}
	return nil
}

// Compact removes vertices that no face refers to and renumbers the faces.
// Normals are kept in step with the vertices when present.
func (m *Mesh) Compact() *Mesh {
	remap := make([]int, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}

	out := &Mesh{Name: m.Name}
	keepNormals := m.HasNormals()
	next := func(v int) int {
		if remap[v] < 0 {
			remap[v] = len(out.Vertices)
			out.Vertices = append(out.Vertices, m.Vertices[v])
			if keepNormals {
				out.Normals = append(out.Normals, m.Normals[v])
			}
		}
		return remap[v]
	}

	out.Faces = make([]Face, len(m.Faces))
	for i, f := range m.Faces {
		out.Faces[i] = Face{V1: next(f.V1), V2: next(f.V2), V3: next(f.V3)}
	}
	return out
}
