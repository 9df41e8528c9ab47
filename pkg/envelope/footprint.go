package envelope

import (
	"math"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// FloorRotation returns the Euler rotation that lays the footprint shape
// plane (x, z, 0) flat at y = 0.
func FloorRotation() geometry.Vector3 {
	return geometry.NewVector3(math.Pi/2, 0, 0)
}

// FootprintContour traces the route backwards as a closed contour in the
// horizontal plane, using (x, z) as shape coordinates.
func FootprintContour(path []geometry.Vector3) []geometry.Vector2 {
	contour := make([]geometry.Vector2, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		contour = append(contour, geometry.NewVector2(path[i].X, path[i].Z))
	}
	return contour
}

// FootprintPositions triangulates the area enclosed by the route and returns
// it in shape space. Open or straight routes enclose nothing and yield an
// empty buffer.
func FootprintPositions(path []geometry.Vector3) []float32 {
	points, triangles := geometry.TriangulatePolygon(FootprintContour(path))

	positions := make([]float32, 0, len(triangles)*9)
	for _, tri := range triangles {
		for _, idx := range tri {
			p := points[idx]
			positions = append(positions, float32(p.X), float32(p.Y), 0)
		}
	}
	return positions
}
