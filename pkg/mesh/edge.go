package mesh

import "fmt"

// Edge is an undirected edge between two vertices.
// A is always the smaller index, so two edges are equal regardless of the
// order their endpoints were given in and Edge can be used as a map key.
type Edge struct {
	A, B int
}

// NewEdge creates the edge {a, b}. It panics if a == b.
func NewEdge(a, b int) Edge {
	if a == b {
		panic(fmt.Sprintf("mesh: edge with identical endpoints %d", a))
	}
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// String returns the edge as "{a, b}"
func (e Edge) String() string {
	return fmt.Sprintf("{%d, %d}", e.A, e.B)
}

// Adjacency maps each edge to the indices of the faces that contain it,
// in face order.
type Adjacency map[Edge][]int

// BuildAdjacency collects the incident faces of every edge
func BuildAdjacency(faces []Face) Adjacency {
	adj := make(Adjacency, len(faces)*3/2)
	for i, f := range faces {
		for _, e := range f.Edges() {
			adj[e] = append(adj[e], i)
		}
	}
	return adj
}

// IsBoundary reports whether e belongs to exactly one face
func (a Adjacency) IsBoundary(e Edge) bool {
	return len(a[e]) == 1
}

// IsManifold reports whether no edge is shared by more than two faces
func (a Adjacency) IsManifold() bool {
	for _, faces := range a {
		if len(faces) > 2 {
			return false
		}
	}
	return true
}

// Edges returns the distinct edges of faces in first-seen order
func Edges(faces []Face) []Edge {
	seen := make(map[Edge]struct{}, len(faces)*3/2)
	edges := make([]Edge, 0, len(faces)*3/2)
	for _, f := range faces {
		for _, e := range f.Edges() {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// Valence counts, for every vertex, the faces that contain it
func Valence(vertexCount int, faces []Face) []int {
	valence := make([]int, vertexCount)
	for _, f := range faces {
		valence[f.V1]++
		valence[f.V2]++
		valence[f.V3]++
	}
	return valence
}
