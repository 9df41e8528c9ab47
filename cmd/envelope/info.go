package main

import (
	"fmt"

	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/analysis"
	"github.com/philipparndt/envelope/pkg/stl"
	"github.com/spf13/cobra"
)

var infoFlags envelopeFlags

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a route or an STL file",
	Long: `For route files, show the route measurements and the triangle count, area,
bounds and material of every generated sub-mesh. For STL files, show dimensions,
triangle count, surface area and edge statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoFlags.register(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if !pipeline.IsRouteFile(filename) {
		return printModelInfo(filename)
	}

	result, err := infoFlags.generate(cmd, filename)
	if err != nil {
		return err
	}
	defer result.Close()

	stats, meshes := result.Summary()

	fmt.Println("Envelope Information")
	fmt.Println("====================")
	fmt.Printf("Name: %s\n", result.Name())
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Route:")
	fmt.Printf("  Points: %d\n", stats.Points)
	fmt.Printf("  Segments: %d\n", stats.Segments)
	fmt.Printf("  Bends: %d\n", stats.Bends)
	fmt.Printf("  Length: %.6f units\n", stats.Length)
	fmt.Printf("  Rise: %.6f units\n", stats.Rise)
	fmt.Printf("  Ramp Length: %.6f units\n\n", stats.RampLength)

	fmt.Println("Options:")
	fmt.Printf("  Width: %.3f\n", result.Options.Width)
	fmt.Printf("  Height: %.3f\n\n", result.Options.Height)

	for _, m := range meshes {
		fmt.Printf("Mesh %q:\n", m.Name)
		fmt.Printf("  Triangles: %d", m.TriangleCount)
		if m.Degenerate > 0 {
			fmt.Printf(" (%d degenerate)", m.Degenerate)
		}
		fmt.Println()
		fmt.Printf("  Color: %s  Opacity: %.3f\n", m.Color, m.Opacity)
		fmt.Printf("  Surface Area: %.6f square units\n", m.SurfaceArea)
		fmt.Printf("  Smallest Angle: %.3f degrees\n", m.MinAngle)
		if m.TriangleCount > 0 {
			fmt.Printf("  Min: %s\n", analysis.FormatVector(m.BoundingBox.Min))
			fmt.Printf("  Max: %s\n", analysis.FormatVector(m.BoundingBox.Max))
		}
		fmt.Println()
	}

	bbox := result.Group.BoundingBox()
	if !bbox.IsEmpty() {
		fmt.Println("Envelope Bounds:")
		fmt.Printf("  Size: %s\n", analysis.FormatVector(bbox.Size()))
		fmt.Printf("  Center: %s\n", analysis.FormatVector(bbox.Center()))
		fmt.Printf("  Volume: %.6f cubic units\n", bbox.Volume())
	}
	return nil
}

func printModelInfo(filename string) error {
	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("error parsing STL file: %w", err)
	}

	result := analysis.AnalyzeModel(model)

	fmt.Println("STL File Information")
	fmt.Println("====================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Degenerate: %d\n", result.Degenerate)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Height (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Depth (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Printf("  Bounding Volume: %.6f cubic units\n\n", result.BoundingBox.Volume())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)
	fmt.Printf("  Smallest Angle: %.3f degrees\n", result.MinAngle)
	return nil
}
