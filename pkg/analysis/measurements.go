package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/goloop/pkg/geometry"
	"github.com/philipparndt/goloop/pkg/mesh"
)

// EdgeKind classifies an edge by the number of faces that share it
type EdgeKind int

const (
	// Boundary edges belong to exactly one face
	Boundary EdgeKind = iota
	// Interior edges are shared by exactly two faces
	Interior
	// NonManifold edges are shared by more than two faces
	NonManifold
)

// String returns the kind name
func (k EdgeKind) String() string {
	switch k {
	case Boundary:
		return "boundary"
	case Interior:
		return "interior"
	default:
		return "non-manifold"
	}
}

// EdgeInfo contains information about a distinct edge of the mesh
type EdgeInfo struct {
	Edge   mesh.Edge
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Faces  []int
	Kind   EdgeKind
}

// MeasurementResult contains topology and size measurements of a mesh
type MeasurementResult struct {
	BoundingBox      geometry.BoundingBox
	Dimensions       geometry.Vector3
	SurfaceArea      float64
	VertexCount      int
	FaceCount        int
	EdgeCount        int
	BoundaryEdges    int
	InteriorEdges    int
	NonManifoldEdges int
	IsolatedVertices int
	MinValence       int
	MaxValence       int
	AvgValence       float64
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
	AllEdges         []EdgeInfo
}

// AnalyzeMesh performs topology and size analysis on an indexed mesh.
// The faces must only refer to existing vertices.
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: m.BoundingBox(),
		SurfaceArea: m.SurfaceArea(),
		VertexCount: m.VertexCount(),
		FaceCount:   m.FaceCount(),
	}
	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
	}

	analyzeValence(m, result)
	analyzeEdges(m, result)
	return result
}

func analyzeValence(m *mesh.Mesh, result *MeasurementResult) {
	valence := mesh.Valence(len(m.Vertices), m.Faces)

	minValence := math.MaxInt
	total, used := 0, 0
	for _, count := range valence {
		if count == 0 {
			result.IsolatedVertices++
			continue
		}
		used++
		total += count
		if count < minValence {
			minValence = count
		}
		if count > result.MaxValence {
			result.MaxValence = count
		}
	}

	if used > 0 {
		result.MinValence = minValence
		result.AvgValence = float64(total) / float64(used)
	}
}

func analyzeEdges(m *mesh.Mesh, result *MeasurementResult) {
	adj := mesh.BuildAdjacency(m.Faces)
	edges := mesh.Edges(m.Faces)
	result.AllEdges = make([]EdgeInfo, 0, len(edges))

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, e := range edges {
		start, end := m.Vertices[e.A], m.Vertices[e.B]
		info := EdgeInfo{
			Edge:   e,
			Start:  start,
			End:    end,
			Length: start.Distance(end),
			Faces:  adj[e],
		}

		switch len(info.Faces) {
		case 1:
			info.Kind = Boundary
			result.BoundaryEdges++
		case 2:
			info.Kind = Interior
			result.InteriorEdges++
		default:
			info.Kind = NonManifold
			result.NonManifoldEdges++
		}
		result.AllEdges = append(result.AllEdges, info)

		totalLength += info.Length
		if info.Length < minLength {
			minLength = info.Length
		}
		if info.Length > maxLength {
			maxLength = info.Length
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
}

// IsClosed reports whether every edge is shared by exactly two faces
func (r *MeasurementResult) IsClosed() bool {
	return r.EdgeCount > 0 && r.BoundaryEdges == 0 && r.NonManifoldEdges == 0
}

// EulerCharacteristic returns V - E + F
func (r *MeasurementResult) EulerCharacteristic() int {
	return r.VertexCount - r.EdgeCount + r.FaceCount
}

// SubdividedCounts returns the vertex and face counts after one Loop step
func (r *MeasurementResult) SubdividedCounts() (vertices, faces int) {
	return r.VertexCount + r.EdgeCount, 4 * r.FaceCount
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindEdgesByKind returns the edges of the given kind in mesh order
func FindEdgesByKind(result *MeasurementResult, kind EdgeKind) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Kind == kind {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool {
		return a.Length > b.Length
	})
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool {
		return a.Length < b.Length
	})
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
