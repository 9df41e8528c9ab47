// Package stl reads and writes STL meshes, the exchange format used to hand
// generated envelopes to slicers and CAD tools.
package stl

import (
	"github.com/philipparndt/envelope/pkg/geometry"
)

// Model is a named triangle soup
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// FromTriangles wraps existing triangles in a model. The slice is not copied.
func FromTriangles(name string, triangles []geometry.Triangle) *Model {
	return &Model{Name: name, Triangles: triangles}
}

// AddTriangle appends a triangle
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox returns the bounds of all triangles
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.ExtendTriangle(triangle)
	}
	return bbox
}

// SurfaceArea sums the triangle areas
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for _, triangle := range m.Triangles {
		total += triangle.Area()
	}
	return total
}
