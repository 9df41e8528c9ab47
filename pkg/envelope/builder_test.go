package envelope

import (
	"math"
	"testing"

	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertexAt(buf []float32, i int) geometry.Vector3 {
	return geometry.NewVector3(float64(buf[i*3]), float64(buf[i*3+1]), float64(buf[i*3+2]))
}

func assertVertex(t *testing.T, want geometry.Vector3, buf []float32, i int) {
	t.Helper()
	got := vertexAt(buf, i)
	assert.InDelta(t, want.X, got.X, 1e-3, "vertex %d x", i)
	assert.InDelta(t, want.Y, got.Y, 1e-3, "vertex %d y", i)
	assert.InDelta(t, want.Z, got.Z, 1e-3, "vertex %d z", i)
}

func TestBuildTooShort(t *testing.T) {
	assert.Empty(t, Build(nil, 50, 50).Top)
	assert.Empty(t, Build([]geometry.Vector3{{}}, 50, 50).Wall)
}

func TestBuildStraightPath(t *testing.T) {
	path := []geometry.Vector3{{X: 0}, {X: 100}}

	buf := Build(path, 50, 50)

	assert.Len(t, buf.Top, 2*9, "2 top triangles")
	assert.Len(t, buf.Wall, 4*9, "2 wall triangles per side")
}

func TestBuildTriangleCounts(t *testing.T) {
	for n := 3; n <= 7; n++ {
		path := make([]geometry.Vector3, n)
		for i := range path {
			// Zig-zag so every interior point is a bend.
			path[i] = geometry.NewVector3(float64(i)*100, 0, float64(i%2)*80)
		}

		buf := Build(path, 50, 50)

		segments, joints := n-1, n-2
		assert.Equal(t, 2*segments+2*joints, len(buf.Top)/9, "top triangles for %d points", n)
		assert.Equal(t, 4*segments+4*joints, len(buf.Wall)/9, "wall triangles for %d points", n)
	}
}

func TestBuildFlatStraightGeometry(t *testing.T) {
	path := []geometry.Vector3{{X: 0}, {X: 100}}

	buf := Build(path, 50, 50)

	// Walking from (100,0,0) toward the origin puts the left side at +z.
	assertVertex(t, geometry.NewVector3(100, 50, 25), buf.Top, 0)
	assertVertex(t, geometry.NewVector3(100, 50, -25), buf.Top, 1)
	assertVertex(t, geometry.NewVector3(0, 50, 25), buf.Top, 2)

	// Wall bases are 1.4 times wider and sit on the route.
	assertVertex(t, geometry.NewVector3(100, 0, 35), buf.Wall, 0)
	assertVertex(t, geometry.NewVector3(100, 50, 25), buf.Wall, 1)
	assertVertex(t, geometry.NewVector3(0, 0, 35), buf.Wall, 2)
	assertVertex(t, geometry.NewVector3(100, 0, -35), buf.Wall, 7)
}

func TestBuildRampAtTail(t *testing.T) {
	path := []geometry.Vector3{{X: 0}, {X: 200, Y: 70}}

	buf := Build(path, 50, 50)

	// The tail has zero width and sits at the last point's elevation.
	assertVertex(t, geometry.NewVector3(200, 70, 0), buf.Top, 0)
	assertVertex(t, geometry.NewVector3(200, 70, 0), buf.Top, 1)
	// The ramp (about 100 units long) is over before the head of the route.
	assertVertex(t, geometry.NewVector3(0, 50, 25), buf.Top, 2)
	assertVertex(t, geometry.NewVector3(200, 70, 0), buf.Wall, 0)
}

func TestBuildMiterJoint(t *testing.T) {
	path := []geometry.Vector3{{X: 0}, {X: 100}, {X: 100, Z: 100}}

	buf := Build(path, 50, 50)

	// The first band is the segment (100,0,100) -> (100,0,0); the miter
	// joint follows and turns toward the origin.
	assertVertex(t, geometry.NewVector3(75, 50, 0), buf.Top, 6)
	assertVertex(t, geometry.NewVector3(125, 50, 0), buf.Top, 7)
	assertVertex(t, geometry.NewVector3(100, 50, 25), buf.Top, 8)
	assertVertex(t, geometry.NewVector3(100, 50, -25), buf.Top, 10)
}

func TestBuildDoesNotMutatePath(t *testing.T) {
	path := []geometry.Vector3{{X: 0}, {X: 100, Y: 30}}

	Build(path, 50, 50)

	assert.Equal(t, 30.0, path[1].Y)
}

func TestBuildDeterministic(t *testing.T) {
	path := []geometry.Vector3{{X: 0}, {X: 100, Y: 10}, {X: 100, Y: 20, Z: 100}, {X: 0, Y: 40, Z: 150}}

	a := Build(path, 40, 30)
	b := Build(path, 40, 30)

	assert.Equal(t, a, b)
}

func TestBuildDuplicatePointsDegenerate(t *testing.T) {
	path := []geometry.Vector3{{X: 0}, {X: 50}, {X: 50}, {X: 100}}

	buf := Build(path, 50, 50)

	require.Len(t, buf.Top, (3+2)*2*9)
	for _, v := range buf.Top {
		assert.False(t, math.IsNaN(float64(v)))
	}
}

func TestRampTaper(t *testing.T) {
	ramp := NewRamp(100)
	require.InDelta(t, 100/math.Tan(35*math.Pi/180), ramp.Length, 1e-9)

	prevTaper := -1.0
	for d := 0.0; d <= ramp.Length+20; d += ramp.Length / 50 {
		taper, height := ramp.At(d)
		assert.GreaterOrEqual(t, taper, prevTaper, "taper at %v", d)
		assert.GreaterOrEqual(t, height, 0.0)
		if d >= ramp.Length {
			assert.Equal(t, 1.0, taper)
			assert.Equal(t, 0.0, height)
		}
		prevTaper = taper
	}

	taper, height := ramp.At(0)
	assert.Equal(t, 0.0, taper)
	assert.InDelta(t, 100, height, 1e-9)
}

func TestRampFalling(t *testing.T) {
	ramp := NewRamp(-50)

	taper, height := ramp.At(0)
	assert.Equal(t, 0.0, taper)
	assert.InDelta(t, -50, height, 1e-9)

	taper, height = ramp.At(math.Abs(ramp.Length) / 2)
	assert.InDelta(t, 0.5, taper, 1e-9)
	assert.InDelta(t, -25, height, 1e-9)

	taper, height = ramp.At(math.Abs(ramp.Length))
	assert.Equal(t, 1.0, taper)
	assert.Equal(t, 0.0, height)
}

func TestRampZeroRise(t *testing.T) {
	taper, height := NewRamp(0).At(0)

	assert.Equal(t, 1.0, taper)
	assert.Equal(t, 0.0, height)
}

func TestCrossSectionMagnitude(t *testing.T) {
	directions := []geometry.Vector3{
		{X: 1},
		{Z: -3},
		{X: 100, Z: 100},
		{X: -0.001, Y: 5, Z: 0.002},
		{X: 7, Y: -2, Z: -11},
	}

	for _, dir := range directions {
		top, bottom := CrossSection(dir, 50)

		assert.InDelta(t, 25, top.Length(), 1e-9, "direction %v", dir)
		assert.InDelta(t, 1.4*top.Length(), bottom.Length(), 1e-9, "direction %v", dir)
		assert.InDelta(t, 0, top.Dot(dir), 1e-9, "perpendicular to %v", dir)
		assert.Equal(t, 0.0, top.Y)
	}
}

func TestCrossSectionVertical(t *testing.T) {
	top, bottom := CrossSection(geometry.NewVector3(0, 10, 0), 50)

	assert.Equal(t, geometry.Vector3{}, top)
	assert.Equal(t, geometry.Vector3{}, bottom)
}
