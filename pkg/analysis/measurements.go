// Package analysis measures generated envelopes and STL models.
package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/philipparndt/envelope/pkg/stl"
)

// MeasurementResult describes a triangle soup
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	Degenerate    int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	// MinAngle is the smallest interior angle in degrees over all
	// non-degenerate triangles; slivers show up as values near zero.
	MinAngle float64
}

// MeshSummary is the measurement of one envelope sub-mesh
type MeshSummary struct {
	Name     string
	Color    envelope.Color
	Opacity  float64
	Disposed bool
	MeasurementResult
}

// RouteStats describes the route an envelope was generated from
type RouteStats struct {
	Points     int
	Segments   int
	Bends      int
	Length     float64 // sum of segment lengths, after the tail elevation snap
	Rise       float64 // elevation of the last point above the first
	RampLength float64 // horizontal span of the tail ramp, clamped to Length
}

// AnalyzeModel measures an STL model
func AnalyzeModel(model *stl.Model) *MeasurementResult {
	return AnalyzeTriangles(model.Triangles)
}

// AnalyzeTriangles measures bounds, area and edge lengths
func AnalyzeTriangles(triangles []geometry.Triangle) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   geometry.NewBoundingBox(),
		TriangleCount: len(triangles),
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	minAngle := math.Pi

	for _, triangle := range triangles {
		result.BoundingBox.ExtendTriangle(triangle)
		result.SurfaceArea += triangle.Area()
		if triangle.IsDegenerate() {
			result.Degenerate++
		} else {
			for _, a := range triangle.Angles() {
				minAngle = math.Min(minAngle, a)
			}
		}

		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.Dimensions = result.BoundingBox.Size()
	result.EdgeCount = len(triangles) * 3
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
	if result.Degenerate < result.TriangleCount {
		result.MinAngle = minAngle * 180 / math.Pi
	}

	return result
}

// SummarizeGroup measures every sub-mesh of an assembled envelope in child order
func SummarizeGroup(group *envelope.Group) []MeshSummary {
	summaries := make([]MeshSummary, 0, len(group.Children))
	for _, mesh := range group.Children {
		summary := MeshSummary{
			Name:              mesh.Name,
			MeasurementResult: *AnalyzeTriangles(mesh.WorldTriangles()),
		}
		if mesh.Material != nil {
			summary.Color = mesh.Material.Color
			summary.Opacity = mesh.Material.Opacity
		}
		if mesh.Geometry != nil {
			summary.Disposed = mesh.Geometry.Disposed()
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// AnalyzeRoute measures a route the way envelope.Build walks it
func AnalyzeRoute(path []geometry.Vector3) RouteStats {
	stats := RouteStats{Points: len(path)}
	if len(path) < 2 {
		return stats
	}

	stats.Segments = len(path) - 1
	stats.Bends = len(path) - 2

	last := len(path) - 1
	stats.Rise = path[last].Y - path[0].Y
	for i := last; i > 0; i-- {
		start := path[i]
		if i == last {
			start = start.WithY(path[0].Y)
		}
		stats.Length += start.Distance(path[i-1])
	}

	stats.RampLength = math.Min(math.Abs(envelope.NewRamp(stats.Rise).Length), stats.Length)
	return stats
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
