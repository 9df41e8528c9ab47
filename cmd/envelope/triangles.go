package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/envelope/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	triSource   meshSource
	triCount    int
	triLargest  bool
	triSmallest bool
)

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "List the triangles of an envelope or STL file",
	Long: `Display area, perimeter, smallest angle and vertex positions of triangles.
For route files the envelope is generated first; --mesh selects top, wall or floor.`,
	Args: cobra.ExactArgs(1),
	RunE: runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	triSource.register(trianglesCmd)
	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runTriangles(cmd *cobra.Command, args []string) error {
	triangles, err := triSource.load(cmd, args[0])
	if err != nil {
		return err
	}

	order := analysis.InputOrder
	title := "First %d Triangles"
	switch {
	case triLargest:
		order = analysis.LargestFirst
		title = "Top %d Largest Triangles"
	case triSmallest:
		order = analysis.SmallestFirst
		title = "Top %d Smallest Triangles"
	}

	infos := analysis.ListTriangles(triangles, order)
	shown := firstN(infos, triCount)
	printTriangles(cmd.OutOrStdout(), fmt.Sprintf(title, len(shown)), analysis.AnalyzeTriangles(triangles), shown)
	return nil
}

func printTriangles(w io.Writer, title string, result *analysis.MeasurementResult, infos []analysis.TriangleInfo) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "Total triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(w, "Degenerate: %d\n", result.Degenerate)
	fmt.Fprintf(w, "Total surface area: %.6f square units\n", result.SurfaceArea)
	if result.TriangleCount > 0 {
		fmt.Fprintf(w, "Avg triangle area: %.6f square units\n", result.SurfaceArea/float64(result.TriangleCount))
	}
	fmt.Fprintln(w)

	for _, info := range infos {
		fmt.Fprintf(w, "Triangle #%d:\n", info.Index)
		fmt.Fprintf(w, "  Area: %.6f square units\n", info.Area)
		fmt.Fprintf(w, "  Perimeter: %.6f units\n", info.Perimeter)
		fmt.Fprintf(w, "  Smallest Angle: %.3f degrees\n", info.MinAngle)
		fmt.Fprintf(w, "  Vertices: %s, %s, %s\n\n",
			analysis.FormatVector(info.Triangle.V1),
			analysis.FormatVector(info.Triangle.V2),
			analysis.FormatVector(info.Triangle.V3))
	}
}
