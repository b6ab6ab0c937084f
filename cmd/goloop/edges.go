package main

import (
	"fmt"

	"github.com/philipparndt/goloop/pkg/analysis"
	"github.com/philipparndt/goloop/pkg/meshio"
	"github.com/spf13/cobra"
)

var (
	edgesCount       int
	edgesLongest     bool
	edgesShortest    bool
	edgesBoundary    bool
	edgesNonManifold bool
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "List and measure the edges of a mesh",
	Long:  "Find and measure distinct edges, including longest, shortest, boundary or non-manifold edges.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges")
	edgesCmd.Flags().BoolVarP(&edgesBoundary, "boundary", "b", false, "Show boundary edges")
	edgesCmd.Flags().BoolVar(&edgesNonManifold, "non-manifold", false, "Show edges shared by more than two faces")
	edgesCmd.MarkFlagsMutuallyExclusive("longest", "shortest", "boundary", "non-manifold")
}

func runEdges(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if edgesCount < 0 {
		return fmt.Errorf("count must not be negative, got %d", edgesCount)
	}

	loaded, err := meshio.Load(filename, meshio.Options{WeldTolerance: cfg.WeldTolerance})
	if err != nil {
		return err
	}

	result := analysis.AnalyzeMesh(loaded.Mesh)

	var edges []analysis.EdgeInfo
	var title string

	switch {
	case edgesLongest:
		edges = analysis.FindLongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = analysis.FindShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesBoundary:
		edges = analysis.FindEdgesByKind(result, analysis.Boundary)
		title = fmt.Sprintf("Boundary Edges (found %d)", len(edges))
	case edgesNonManifold:
		edges = analysis.FindEdgesByKind(result, analysis.NonManifold)
		title = fmt.Sprintf("Non-manifold Edges (found %d)", len(edges))
	default:
		edges = result.AllEdges
		title = fmt.Sprintf("All Edges (showing first %d of %d)", min(edgesCount, len(edges)), len(edges))
	}
	if len(edges) > edgesCount {
		edges = edges[:edgesCount]
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total edges in mesh: %d\n", result.EdgeCount)
	fmt.Printf("Min edge length: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("Max edge length: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

	if len(edges) == 0 {
		fmt.Println("No edges found matching the criteria.")
		return nil
	}

	fmt.Printf("%-6s %-14s %-35s %-35s %-15s %-12s\n", "Index", "Vertices", "Start", "End", "Length", "Kind")
	fmt.Println("-------------------------------------------------------------------------------------------------------------------------")
	for i, edge := range edges {
		fmt.Printf("%-6d %-14s %-35s %-35s %-15.6f %-12s\n",
			i+1,
			edge.Edge.String(),
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length,
			edge.Kind)
	}
	return nil
}
