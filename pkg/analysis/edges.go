package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// EdgeInfo is one triangle edge
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// TriangleInfo is one triangle with its measurements
type TriangleInfo struct {
	Index     int
	Area      float64
	Perimeter float64
	MinAngle  float64 // degrees
	Triangle  geometry.Triangle
}

// TriangleOrder selects how ListTriangles sorts its result
type TriangleOrder int

const (
	InputOrder TriangleOrder = iota
	LargestFirst
	SmallestFirst
)

// CollectEdges lists the three edges of every triangle. Shared edges appear
// once per triangle.
func CollectEdges(triangles []geometry.Triangle) []EdgeInfo {
	edges := make([]EdgeInfo, 0, len(triangles)*3)
	for i, t := range triangles {
		lengths := t.EdgeLengths()
		edges = append(edges,
			EdgeInfo{Start: t.V1, End: t.V2, Length: lengths[0], TriangleID: i},
			EdgeInfo{Start: t.V2, End: t.V3, Length: lengths[1], TriangleID: i},
			EdgeInfo{Start: t.V3, End: t.V1, Length: lengths[2], TriangleID: i},
		)
	}
	return edges
}

// FindEdgesByLength returns the edges with minLength <= length <= maxLength
func FindEdgesByLength(edges []EdgeInfo, minLength, maxLength float64) []EdgeInfo {
	var found []EdgeInfo
	for _, edge := range edges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			found = append(found, edge)
		}
	}
	return found
}

// FindLongestEdges returns the count longest edges
func FindLongestEdges(edges []EdgeInfo, count int) []EdgeInfo {
	return topEdges(edges, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the count shortest edges
func FindShortestEdges(edges []EdgeInfo, count int) []EdgeInfo {
	return topEdges(edges, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func topEdges(edges []EdgeInfo, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	sorted := make([]EdgeInfo, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return truncate(sorted, count)
}

// ListTriangles measures every triangle and sorts the result
func ListTriangles(triangles []geometry.Triangle, order TriangleOrder) []TriangleInfo {
	infos := make([]TriangleInfo, len(triangles))
	for i, t := range triangles {
		lengths := t.EdgeLengths()
		info := TriangleInfo{
			Index:     i,
			Area:      t.Area(),
			Perimeter: lengths[0] + lengths[1] + lengths[2],
			Triangle:  t,
		}
		if !t.IsDegenerate() {
			angles := t.Angles()
			info.MinAngle = math.Min(angles[0], math.Min(angles[1], angles[2])) * 180 / math.Pi
		}
		infos[i] = info
	}

	switch order {
	case LargestFirst:
		sort.SliceStable(infos, func(i, j int) bool { return infos[i].Area > infos[j].Area })
	case SmallestFirst:
		sort.SliceStable(infos, func(i, j int) bool { return infos[i].Area < infos[j].Area })
	}
	return infos
}

// FindNearestVertex returns the triangle vertex closest to point and its
// distance. With no triangles the distance is +Inf.
func FindNearestVertex(triangles []geometry.Triangle, point geometry.Vector3) (geometry.Vector3, float64) {
	var nearest geometry.Vector3
	minDistance := math.Inf(1)
	for _, t := range triangles {
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			if d := point.Distance(v); d < minDistance {
				minDistance = d
				nearest = v
			}
		}
	}
	return nearest, minDistance
}

func truncate[T any](items []T, count int) []T {
	if count >= 0 && count < len(items) {
		return items[:count]
	}
	return items
}
