package measurement

import (
	"math"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// Projector maps a world point to screen pixels. depth grows away from the
// viewer; visible is false for points behind the camera.
type Projector func(p geometry.Vector3) (x, y, depth float64, visible bool)

// UniqueVertices returns the distinct triangle corners in first-seen order
func UniqueVertices(triangles []geometry.Triangle) []geometry.Vector3 {
	seen := make(map[geometry.Vector3]bool, len(triangles))
	var vertices []geometry.Vector3
	for _, t := range triangles {
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			if !seen[v] {
				seen[v] = true
				vertices = append(vertices, v)
			}
		}
	}
	return vertices
}

// Pick returns the vertex drawn closest to the screen point (x, y) within
// radius pixels. Vertices that project onto the same spot resolve to the one
// nearest the viewer.
func Pick(vertices []geometry.Vector3, project Projector, x, y, radius float64) (geometry.Vector3, bool) {
	const samePixel = 0.5

	var best geometry.Vector3
	bestDist, bestDepth := math.Inf(1), math.Inf(1)
	found := false
	for _, v := range vertices {
		sx, sy, depth, visible := project(v)
		if !visible {
			continue
		}
		d := math.Hypot(sx-x, sy-y)
		if d > radius {
			continue
		}
		closer := d < bestDist-samePixel
		tie := math.Abs(d-bestDist) <= samePixel && depth < bestDepth
		if !found || closer || tie {
			best, bestDist, bestDepth, found = v, d, depth, true
		}
	}
	return best, found
}

// AverageSpacing estimates vertex spacing from edge lengths. It scales the
// markers and the reload tolerance.
func AverageSpacing(triangles []geometry.Triangle) float64 {
	if len(triangles) == 0 {
		return 1
	}
	total := 0.0
	for _, t := range triangles {
		lengths := t.EdgeLengths()
		total += lengths[0] + lengths[1] + lengths[2]
	}
	return total / float64(len(triangles)*3)
}

func nearest(vertices []geometry.Vector3, p geometry.Vector3) (geometry.Vector3, float64) {
	var best geometry.Vector3
	bestDist := math.Inf(1)
	for _, v := range vertices {
		if d := v.Distance(p); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best, bestDist
}
