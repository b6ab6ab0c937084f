// Package loop implements one refinement step of Loop subdivision for
// indexed triangle meshes.
package loop

import (
	"fmt"

	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/philipparndt/goloop/pkg/mesh"
)

// Loop stencil weights
const (
	edgeWeight     = 3.0 / 8.0
	oppositeWeight = 1.0 / 8.0
	vertexWeight   = 5.0 / 8.0
	neighborWeight = 3.0 / 16.0
)

// step holds the state of a single subdivision call
type step struct {
	orig     []geometry.Vector3
	faces    []mesh.Face
	adj      mesh.Adjacency
	vertices []geometry.Vector3
	registry *EdgeRegistry
}

func newStep(m *mesh.Mesh) *step {
	adj := mesh.BuildAdjacency(m.Faces)

	vertices := make([]geometry.Vector3, len(m.Vertices), len(m.Vertices)+len(adj))
	copy(vertices, m.Vertices)

	return &step{
		orig:     m.Vertices,
		faces:    m.Faces,
		adj:      adj,
		vertices: vertices,
		registry: NewEdgeRegistry(len(adj)),
	}
}

// Subdivide applies one step of Loop subdivision to m and returns the
// refined mesh. The input mesh is not modified.
//
// The result holds the smoothed original vertices followed by one new
// vertex per distinct edge, four faces per input face and one unit normal
// per vertex (zero where no face contributes a direction).
//
// The mesh must pass Validate. Edges shared by more than two faces use the
// first two of them, in face order, for the interior edge stencil.
func Subdivide(m *mesh.Mesh) (*mesh.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}

	s := newStep(m)
	faces := s.retriangulate()
	s.smooth()

	return &mesh.Mesh{
		Name:     m.Name,
		Vertices: s.vertices,
		Faces:    faces,
		Normals:  VertexNormals(s.vertices, faces),
	}, nil
}

// midpoint returns the index of the new vertex on edge e, creating it on
// first use.
func (s *step) midpoint(e mesh.Edge) int {
	if s.registry.Contains(e) {
		return s.registry.Index(e)
	}

	p, q := s.orig[e.A], s.orig[e.B]

	var v geometry.Vector3
	if o1, o2, interior := s.opposites(e); interior {
		v = p.Add(q).Mul(edgeWeight).Add(s.orig[o1].Add(s.orig[o2]).Mul(oppositeWeight))
	} else {
		v = p.Add(q).Mul(0.5)
	}

	index := len(s.vertices)
	s.vertices = append(s.vertices, v)
	s.registry.Add(e, index)
	return index
}

// opposites returns the corners facing e in its first two incident faces.
// interior is false for a boundary edge.
func (s *step) opposites(e mesh.Edge) (o1, o2 int, interior bool) {
	incident := s.adj[e]
	if len(incident) < 2 {
		return 0, 0, false
	}
	o1, _ = s.faces[incident[0]].Opposite(e)
	o2, _ = s.faces[incident[1]].Opposite(e)
	return o1, o2, true
}

// retriangulate splits every face into four, creating the edge midpoints
// on the way. Children of face i are stored at 4i..4i+3.
func (s *step) retriangulate() []mesh.Face {
	faces := make([]mesh.Face, 0, 4*len(s.faces))
	for _, f := range s.faces {
		a := s.midpoint(mesh.NewEdge(f.V1, f.V2))
		b := s.midpoint(mesh.NewEdge(f.V2, f.V3))
		c := s.midpoint(mesh.NewEdge(f.V3, f.V1))

		//         v2
		//         /\
		//        a--b
		//       /\  /\
		//      v1--c--v3
		faces = append(faces,
			mesh.NewFace(f.V1, a, c),
			mesh.NewFace(a, b, c),
			mesh.NewFace(c, b, f.V3),
			mesh.NewFace(a, f.V2, b),
		)
	}
	return faces
}

// smooth moves the original vertices with the Loop vertex stencil.
// Every value is computed from s.orig before any slot of s.vertices is
// written. Boundary vertices get the same stencil as interior ones.
func (s *step) smooth() {
	acc := make([]geometry.Vector3, len(s.orig))
	valence := make([]int, len(s.orig))

	for _, f := range s.faces {
		p1, p2, p3 := s.orig[f.V1], s.orig[f.V2], s.orig[f.V3]

		valence[f.V1]++
		acc[f.V1] = acc[f.V1].Add(p2.Add(p3))

		valence[f.V2]++
		acc[f.V2] = acc[f.V2].Add(p1.Add(p3))

		valence[f.V3]++
		acc[f.V3] = acc[f.V3].Add(p1.Add(p2))
	}

	for i, p := range s.orig {
		// valence > 0 is guaranteed by Validate
		s.vertices[i] = p.Mul(vertexWeight).Add(acc[i].Mul(neighborWeight / float64(valence[i])))
	}
}

// VertexNormals computes one normal per vertex as the sum of the unit
// normals of the incident faces, each weighted by the face's interior angle
// at that vertex, normalized. Vertices without a contribution get the zero
// vector.
func VertexNormals(vertices []geometry.Vector3, faces []mesh.Face) []geometry.Vector3 {
	normals := make([]geometry.Vector3, len(vertices))

	for _, f := range faces {
		p1, p2, p3 := vertices[f.V1], vertices[f.V2], vertices[f.V3]
		n := geometry.FaceNormal(p1, p2, p3)

		normals[f.V1] = normals[f.V1].Add(n.Mul(geometry.AngleAtVertex(p1, p2, p3)))
		normals[f.V2] = normals[f.V2].Add(n.Mul(geometry.AngleAtVertex(p2, p3, p1)))
		normals[f.V3] = normals[f.V3].Add(n.Mul(geometry.AngleAtVertex(p3, p1, p2)))
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
