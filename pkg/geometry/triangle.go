package geometry

import "math"

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// NewFacet creates a triangle with its normal derived from the winding order
func NewFacet(v1, v2, v3 Vector3) Triangle {
	t := Triangle{V1: v1, V2: v2, V3: v3}
	t.Normal = t.CalculateNormal()
	return t
}

// TrianglesFromPositions reads a flat position buffer (9 floats per triangle).
// A trailing partial triangle is ignored.
func TrianglesFromPositions(positions []float32) []Triangle {
	count := len(positions) / 9
	triangles := make([]Triangle, 0, count)
	for i := 0; i < count; i++ {
		p := positions[i*9 : i*9+9]
		triangles = append(triangles, NewFacet(
			NewVector3(float64(p[0]), float64(p[1]), float64(p[2])),
			NewVector3(float64(p[3]), float64(p[4]), float64(p[5])),
			NewVector3(float64(p[6]), float64(p[7]), float64(p[8])),
		))
	}
	return triangles
}

// CalculateNormal computes the normal vector for the triangle
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	cross := edge1.Cross(edge2)
	return cross.Length() / 2.0
}

// IsDegenerate reports whether the triangle has (near) zero area
func (t Triangle) IsDegenerate() bool {
	return t.Area() < 1e-9
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Angles returns the three interior angles in radians
func (t Triangle) Angles() [3]float64 {
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V2)
	e3 := t.V1.Sub(t.V3)

	a1 := angleBetween(e1, e3.Mul(-1))
	a2 := angleBetween(e1.Mul(-1), e2)
	a3 := angleBetween(e2.Mul(-1), e3)

	return [3]float64{a1, a2, a3}
}

// angleBetween clamps the cosine so rounding never yields NaN
func angleBetween(a, b Vector3) float64 {
	return math.Acos(math.Max(-1, math.Min(1, a.Normalize().Dot(b.Normalize()))))
}
