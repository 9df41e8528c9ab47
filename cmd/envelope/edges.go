package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/envelope/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	edgesSource    meshSource
	edgesCount     int
	edgesLongest   bool
	edgesShortest  bool
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "Analyze and measure the edges of an envelope or STL file",
	Long: `Find and measure edges, including longest, shortest, or edges within a specific
length range. For route files the envelope is generated first; --mesh wall lists
the slanted side walls only.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesSource.register(edgesCmd)
	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
	edgesCmd.MarkFlagsMutuallyExclusive("longest", "shortest")
}

func runEdges(cmd *cobra.Command, args []string) error {
	triangles, err := edgesSource.load(cmd, args[0])
	if err != nil {
		return err
	}

	all := analysis.CollectEdges(triangles)
	result := analysis.AnalyzeTriangles(triangles)

	var edges []analysis.EdgeInfo
	var title string
	switch {
	case edgesLongest:
		edges = analysis.FindLongestEdges(all, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = analysis.FindShortestEdges(all, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesMaxLength > 0:
		edges = analysis.FindEdgesByLength(all, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
		edges = firstN(edges, edgesCount)
	default:
		edges = firstN(all, edgesCount)
		title = fmt.Sprintf("All Edges (showing first %d of %d)", len(edges), len(all))
	}

	printEdges(cmd.OutOrStdout(), title, result, edges)
	return nil
}

func printEdges(w io.Writer, title string, result *analysis.MeasurementResult, edges []analysis.EdgeInfo) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "Total edges: %d\n", result.EdgeCount)
	fmt.Fprintf(w, "Min edge length: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(w, "Max edge length: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(w, "Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

	if len(edges) == 0 {
		fmt.Fprintln(w, "No edges found matching the criteria.")
		return
	}

	fmt.Fprintf(w, "%-6s %-9s %-35s %-35s %-15s\n", "Index", "Triangle", "Start", "End", "Length")
	fmt.Fprintln(w, "---------------------------------------------------------------------------------------------------------------")
	for i, edge := range edges {
		fmt.Fprintf(w, "%-6d %-9d %-35s %-35s %-15.6f\n",
			i+1,
			edge.TriangleID,
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length)
	}
}

func firstN[T any](items []T, n int) []T {
	if n >= 0 && n < len(items) {
		return items[:n]
	}
	return items
}
