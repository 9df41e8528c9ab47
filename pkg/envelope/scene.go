package envelope

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// Sub-mesh names assigned by Assemble.
const (
	TopMeshName   = "top"
	WallMeshName  = "wall"
	FloorMeshName = "floor"
)

// Color is a 24-bit RGB color (0xRRGGBB)
type Color uint32

// RGB returns the three 8-bit channels
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// NRGBA returns the color with the given opacity as an image color
func (c Color) NRGBA(opacity float64) color.NRGBA {
	r, g, b := c.RGB()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(opacity)*255 + 0.5)}
}

// String formats the color as #rrggbb
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb"
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

// Side selects which faces of a material are drawn
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material carries the surface appearance of a mesh
type Material struct {
	Color       Color
	Opacity     float64
	Transparent bool
	Side        Side
}

// Clone returns an independent copy of the material
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Geometry is the position data of a mesh as a host scene graph sees it.
// Positions holds 9 floats per triangle and is nil once disposed.
type Geometry interface {
	Positions() []float32
	VertexCount() int
	Dispose()
	Disposed() bool
}

// BufferGeometry is a non-indexed triangle list
type BufferGeometry struct {
	mu        sync.Mutex
	positions []float32
	disposed  bool
}

// NewBufferGeometry wraps a flat position buffer. The geometry takes ownership.
func NewBufferGeometry(positions []float32) *BufferGeometry {
	return &BufferGeometry{positions: positions}
}

// Positions returns the vertex positions
func (g *BufferGeometry) Positions() []float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.positions
}

// VertexCount returns the number of vertices
func (g *BufferGeometry) VertexCount() int {
	return len(g.Positions()) / 3
}

// TriangleCount returns the number of triangles
func (g *BufferGeometry) TriangleCount() int {
	return len(g.Positions()) / 9
}

// Dispose releases the position buffer
func (g *BufferGeometry) Dispose() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.positions = nil
	g.disposed = true
}

// Disposed reports whether Dispose has been called
func (g *BufferGeometry) Disposed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.disposed
}

// Mesh binds a geometry to a material. Rotation holds Euler angles in
// radians applied in X, Y, Z order to reach world space.
type Mesh struct {
	Name     string
	Geometry Geometry
	Material *Material
	Rotation geometry.Vector3
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	if m.Geometry == nil {
		return 0
	}
	return len(m.Geometry.Positions()) / 9
}

// WorldTriangles returns the mesh triangles with the rotation applied
func (m *Mesh) WorldTriangles() []geometry.Triangle {
	if m.Geometry == nil {
		return nil
	}
	triangles := geometry.TrianglesFromPositions(m.Geometry.Positions())
	if m.Rotation == (geometry.Vector3{}) {
		return triangles
	}
	for i, t := range triangles {
		triangles[i] = geometry.NewFacet(m.toWorld(t.V1), m.toWorld(t.V2), m.toWorld(t.V3))
	}
	return triangles
}

func (m *Mesh) toWorld(v geometry.Vector3) geometry.Vector3 {
	return v.RotateX(m.Rotation.X).RotateY(m.Rotation.Y).RotateZ(m.Rotation.Z)
}

// Group is the composite returned by Assemble
type Group struct {
	Children []*Mesh

	disposeOnce sync.Once
	onDispose   func()
}

// Child returns the sub-mesh with the given name, or nil
func (g *Group) Child(name string) *Mesh {
	for _, m := range g.Children {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// IsEmpty reports whether the group has no sub-meshes
func (g *Group) IsEmpty() bool {
	return len(g.Children) == 0
}

// Triangles returns the world-space triangles of all sub-meshes in child order
func (g *Group) Triangles() []geometry.Triangle {
	var triangles []geometry.Triangle
	for _, m := range g.Children {
		triangles = append(triangles, m.WorldTriangles()...)
	}
	return triangles
}

// BoundingBox returns the world-space bounds of all sub-meshes
func (g *Group) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, m := range g.Children {
		for _, t := range m.WorldTriangles() {
			bbox.ExtendTriangle(t)
		}
	}
	return bbox
}

// Dispose releases the buffers owned exclusively by this group.
// Calling it more than once is harmless.
func (g *Group) Dispose() {
	called := false
	g.disposeOnce.Do(func() {
		called = true
		if g.onDispose != nil {
			g.onDispose()
		}
	})
	if !called {
		Logger().Warn("envelope: group disposed more than once")
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
