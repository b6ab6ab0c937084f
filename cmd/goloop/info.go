package main

import (
	"fmt"

	"github.com/philipparndt/goloop/pkg/analysis"
	"github.com/philipparndt/goloop/pkg/meshio"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display topology and size information about a mesh",
	Long:  "Show vertex, face and edge counts, boundary and non-manifold edges, valence, dimensions, and the mesh size after one subdivision step.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	loaded, err := meshio.Load(filename, meshio.Options{WeldTolerance: cfg.WeldTolerance})
	if err != nil {
		return err
	}

	m := loaded.Mesh
	result := analysis.AnalyzeMesh(m)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	if m.Name != "" {
		fmt.Printf("Name: %s\n", m.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Topology:")
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Faces: %d\n", result.FaceCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("    Interior: %d\n", result.InteriorEdges)
	fmt.Printf("    Boundary: %d\n", result.BoundaryEdges)
	fmt.Printf("    Non-manifold: %d\n", result.NonManifoldEdges)
	fmt.Printf("  Isolated vertices: %d\n", result.IsolatedVertices)
	if loaded.Dropped > 0 {
		fmt.Printf("  Dropped degenerate triangles: %d\n", loaded.Dropped)
	}
	fmt.Printf("  Closed: %t\n", result.IsClosed())
	fmt.Printf("  Euler characteristic: %d\n", result.EulerCharacteristic())
	fmt.Printf("  Valence: min %d, max %d, avg %.3f\n\n", result.MinValence, result.MaxValence, result.AvgValence)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n\n", result.AvgEdgeLength)

	vertices, faces := result.SubdividedCounts()
	fmt.Println("After One Subdivision Step:")
	fmt.Printf("  Vertices: %d\n", vertices)
	fmt.Printf("  Faces: %d\n", faces)
	return nil
}
