package envelope

import (
	"sync"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// Light source dimensions in length units.
const (
	DefaultLightWidth  = 10.0
	DefaultLightLength = 64.0
	lightThickness     = 2.0
)

// Base appearance of the envelope layers.
const (
	LightColor = Color(0xFFFFCC)
	TopColor   = Color(0x000000)
	WallColor  = Color(0xFFFFFF)
	FloorColor = Color(0xFFFFFF)

	TopOpacity   = 1.0
	WallOpacity  = 0.8
	FloorOpacity = 0.3
)

// Bundle holds the materials and shared geometry used to dress an envelope
type Bundle struct {
	LightGeometry *BufferGeometry
	LightMaterial *Material
	TopMaterial   *Material
	WallMaterial  *Material
	FloorMaterial *Material
}

// resourceCache lazily builds one process-wide Bundle.
// Keyed on nothing: the first reusing caller fixes the light dimensions.
type resourceCache struct {
	mu     sync.Mutex
	bundle *Bundle
}

func (c *resourceCache) getOrCreate(lightWidth, lightLength float64) *Bundle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bundle == nil {
		c.bundle = newBundle(lightWidth, lightLength)
		Logger().Debug("envelope: resource cache populated",
			"lightWidth", lightWidth, "lightLength", lightLength)
	}
	return c.bundle
}

func (c *resourceCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundle = nil
}

var sharedResources resourceCache

// Resources returns the materials and light geometry for an envelope.
// With reuse set, every call returns the same process-wide instances, which
// callers must treat as read-only. Otherwise a fresh bundle is allocated.
func Resources(lightWidth, lightLength float64, reuse bool) *Bundle {
	if reuse {
		return sharedResources.getOrCreate(lightWidth, lightLength)
	}
	return newBundle(lightWidth, lightLength)
}

// ResetResources drops the process-wide bundle. The next reusing call
// builds a new one; bundles already handed out stay valid.
func ResetResources() {
	sharedResources.reset()
}

func newBundle(lightWidth, lightLength float64) *Bundle {
	return &Bundle{
		LightGeometry: NewBufferGeometry(boxPositions(lightWidth, lightThickness, lightLength)),
		LightMaterial: &Material{Color: LightColor, Opacity: 1, Transparent: true},
		TopMaterial:   &Material{Color: TopColor, Opacity: TopOpacity, Transparent: true},
		WallMaterial:  &Material{Color: WallColor, Opacity: WallOpacity, Transparent: true},
		FloorMaterial: &Material{Color: FloorColor, Opacity: FloorOpacity, Transparent: true, Side: DoubleSide},
	}
}

// boxPositions returns 12 outward-facing triangles of a box centered on the origin
func boxPositions(width, height, depth float64) []float32 {
	hx, hy, hz := width/2, height/2, depth/2
	corner := func(sx, sy, sz float64) geometry.Vector3 {
		return geometry.NewVector3(sx*hx, sy*hy, sz*hz)
	}

	// Each face lists its corners counter-clockwise seen from outside.
	faces := [6][4]geometry.Vector3{
		{corner(1, -1, 1), corner(1, -1, -1), corner(1, 1, -1), corner(1, 1, 1)},     // +x
		{corner(-1, -1, -1), corner(-1, -1, 1), corner(-1, 1, 1), corner(-1, 1, -1)}, // -x
		{corner(-1, 1, 1), corner(1, 1, 1), corner(1, 1, -1), corner(-1, 1, -1)},     // +y
		{corner(-1, -1, -1), corner(1, -1, -1), corner(1, -1, 1), corner(-1, -1, 1)}, // -y
		{corner(-1, -1, 1), corner(1, -1, 1), corner(1, 1, 1), corner(-1, 1, 1)},     // +z
		{corner(1, -1, -1), corner(-1, -1, -1), corner(-1, 1, -1), corner(1, 1, -1)}, // -z
	}

	positions := make([]float32, 0, 6*2*9)
	for _, f := range faces {
		positions = appendQuad(positions, f[0], f[1], f[2], f[3])
	}
	return positions
}

// appendQuad splits a quad a-b-c-d along the a-c diagonal
func appendQuad(buf []float32, a, b, c, d geometry.Vector3) []float32 {
	buf = a.AppendFloat32(buf)
	buf = b.AppendFloat32(buf)
	buf = c.AppendFloat32(buf)
	buf = a.AppendFloat32(buf)
	buf = c.AppendFloat32(buf)
	buf = d.AppendFloat32(buf)
	return buf
}
