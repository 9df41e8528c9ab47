package geometry

import "math"

const polygonEpsilon = 1e-10

// SignedArea returns the signed area of a closed contour.
// Counter-clockwise contours have a positive area.
func SignedArea(contour []Vector2) float64 {
	n := len(contour)
	if n < 3 {
		return 0
	}
	area := 0.0
	for p, q := n-1, 0; q < n; p, q = q, q+1 {
		area += contour[p].X*contour[q].Y - contour[q].X*contour[p].Y
	}
	return area / 2
}

// CleanContour drops consecutive duplicate points, including a closing point
// that repeats the first one.
func CleanContour(contour []Vector2) []Vector2 {
	cleaned := make([]Vector2, 0, len(contour))
	for _, p := range contour {
		if len(cleaned) > 0 && samePoint(cleaned[len(cleaned)-1], p) {
			continue
		}
		cleaned = append(cleaned, p)
	}
	for len(cleaned) > 1 && samePoint(cleaned[0], cleaned[len(cleaned)-1]) {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return cleaned
}

// TriangulatePolygon triangulates a simple closed contour by ear clipping.
// It returns the cleaned contour and counter-clockwise index triples into it.
// Contours with fewer than three distinct points or no area yield no triangles.
// Self-intersecting contours still terminate; the result then covers the
// contour only approximately.
func TriangulatePolygon(contour []Vector2) ([]Vector2, [][3]int) {
	points := CleanContour(contour)
	n := len(points)
	if n < 3 {
		return points, nil
	}

	area := SignedArea(points)
	if math.Abs(area) < polygonEpsilon {
		return points, nil
	}

	// Work on a counter-clockwise index ring regardless of input winding.
	ring := make([]int, n)
	for i := range ring {
		if area > 0 {
			ring[i] = i
		} else {
			ring[i] = n - 1 - i
		}
	}

	triangles := make([][3]int, 0, n-2)
	remaining := n
	guard := 2 * remaining
	v := remaining - 1

	for remaining > 2 {
		if guard <= 0 {
			// No ear found in a full pass; clip anyway so the loop terminates.
			u, w := prev(v, remaining), next(v, remaining)
			triangles = append(triangles, [3]int{ring[u], ring[v], ring[w]})
			ring = append(ring[:v], ring[v+1:]...)
			remaining--
			guard = 2 * remaining
			v = v % remaining
			continue
		}
		guard--

		u := v % remaining
		v = next(u, remaining)
		w := next(v, remaining)

		if !isEar(points, ring, remaining, u, v, w) {
			continue
		}

		triangles = append(triangles, [3]int{ring[u], ring[v], ring[w]})
		ring = append(ring[:v], ring[v+1:]...)
		remaining--
		guard = 2 * remaining
		v = u
	}

	return points, triangles
}

func isEar(points []Vector2, ring []int, remaining, u, v, w int) bool {
	a, b, c := points[ring[u]], points[ring[v]], points[ring[w]]
	if b.Sub(a).Cross(c.Sub(b)) <= polygonEpsilon {
		return false
	}
	for i := 0; i < remaining; i++ {
		if i == u || i == v || i == w {
			continue
		}
		p := points[ring[i]]
		if samePoint(p, a) || samePoint(p, b) || samePoint(p, c) {
			continue
		}
		if insideTriangle(a, b, c, p) {
			return false
		}
	}
	return true
}

func insideTriangle(a, b, c, p Vector2) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		a.Sub(c).Cross(p.Sub(c)) >= 0
}

func samePoint(a, b Vector2) bool {
	return math.Abs(a.X-b.X) < polygonEpsilon && math.Abs(a.Y-b.Y) < polygonEpsilon
}

func next(i, n int) int {
	return (i + 1) % n
}

func prev(i, n int) int {
	return (i + n - 1) % n
}
