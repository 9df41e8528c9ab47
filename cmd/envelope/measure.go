package main

import (
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/envelope/pkg/analysis"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	measureSource             meshSource
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure the distance between two points on an envelope",
	Long: `Measure the straight-line distance between two 3D points and between the
envelope (or STL) vertices nearest to them.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureSource.register(measureCmd)
	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	triangles, err := measureSource.load(cmd, args[0])
	if err != nil {
		return err
	}

	p1 := geometry.NewVector3(point1X, point1Y, point1Z)
	p2 := geometry.NewVector3(point2X, point2Y, point2Z)
	printMeasurement(cmd.OutOrStdout(), triangles, p1, p2)
	return nil
}

func printMeasurement(w io.Writer, triangles []geometry.Triangle, p1, p2 geometry.Vector3) {
	fmt.Fprintln(w, "Point-to-Point Measurement")
	fmt.Fprintln(w, "==========================")

	nearest1, dist1 := analysis.FindNearestVertex(triangles, p1)
	nearest2, dist2 := analysis.FindNearestVertex(triangles, p2)
	found := !math.IsInf(dist1, 1)

	fmt.Fprintf(w, "\nPoint 1: %s\n", analysis.FormatVector(p1))
	if found && dist1 > 0 {
		fmt.Fprintf(w, "  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(nearest1), dist1)
	}

	fmt.Fprintf(w, "\nPoint 2: %s\n", analysis.FormatVector(p2))
	if found && dist2 > 0 {
		fmt.Fprintf(w, "  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(nearest2), dist2)
	}

	fmt.Fprintf(w, "\nDirect distance: %.6f units\n", p1.Distance(p2))
	if found {
		fmt.Fprintf(w, "Distance between nearest vertices: %.6f units\n", nearest1.Distance(nearest2))
	}
}
