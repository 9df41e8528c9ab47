package envelope

import (
	"math"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// Cross-section defaults in length units.
const (
	DefaultWidth  = 50.0
	DefaultHeight = 50.0
)

const (
	// RampAngle is the slope of the on-ramp at the route's tail, in degrees.
	RampAngle = 35.0
	// BottomScale widens the base of the walls relative to the top cap.
	BottomScale = 1.4
)

// Buffers holds the flat position buffers produced by Build
type Buffers struct {
	Top  []float32
	Wall []float32
}

// Ramp describes the on-ramp at the tail of a route
type Ramp struct {
	Rise   float64 // elevation of the last point above the first
	Ratio  float64 // tan(RampAngle)
	Length float64 // horizontal distance covered by the ramp; negative for a falling ramp
}

// NewRamp derives the ramp for the given rise
func NewRamp(rise float64) Ramp {
	ratio := math.Tan(RampAngle * math.Pi / 180)
	return Ramp{Rise: rise, Ratio: ratio, Length: rise / ratio}
}

// At returns the taper factor and ramp height after distance units of travel
// from the tail. The taper grows linearly from 0 to 1 over |Length| and stays
// at 1 beyond it; the ramp height falls linearly from Rise to 0 over the same
// span. A zero-length ramp is fully tapered everywhere.
func (r Ramp) At(distance float64) (taper, height float64) {
	span := math.Abs(r.Length)
	if distance >= span {
		return 1, 0
	}
	sign := 1.0
	if r.Length < 0 {
		sign = -1
	}
	return distance / span, (r.Length - sign*distance) * r.Ratio
}

// CrossSection returns the half-width vector perpendicular to direction and
// the up axis, plus the widened vector used at the base of the walls.
// A direction parallel to the up axis yields zero vectors.
func CrossSection(direction geometry.Vector3, width float64) (top, bottom geometry.Vector3) {
	top = direction.Cross(geometry.Up).Normalize().Mul(width / 2)
	return top, top.Mul(BottomScale)
}

// section is one edge of a band: a point with its cross vectors and lift
type section struct {
	point  geometry.Vector3
	cross  geometry.Vector3
	bottom geometry.Vector3
	taper  float64
	ramp   float64
}

// top returns the upper corner on the given side (-1 left, +1 right)
func (s section) top(side, height float64) geometry.Vector3 {
	return geometry.NewVector3(
		s.point.X+side*s.cross.X*s.taper,
		s.point.Y+height*s.taper+s.ramp,
		s.point.Z+side*s.cross.Z*s.taper,
	)
}

// base returns the lower corner on the given side
func (s section) base(side float64) geometry.Vector3 {
	return geometry.NewVector3(
		s.point.X+side*s.bottom.X*s.taper,
		s.point.Y+s.ramp,
		s.point.Z+side*s.bottom.Z*s.taper,
	)
}

// Build walks the route from its last point toward its first and emits the
// top cap and wall triangles. The route needs at least two points; shorter
// routes yield empty buffers. The route itself is not modified: the last
// point's elevation is snapped to the first point's on an internal copy.
//
// Each segment emits 2 top and 4 wall triangles. Each bend emits a miter
// joint with the same counts.
func Build(path []geometry.Vector3, width, height float64) Buffers {
	n := len(path)
	if n < 2 {
		return Buffers{}
	}

	points := make([]geometry.Vector3, n)
	copy(points, path)
	ramp := NewRamp(points[n-1].Y - points[0].Y)
	points[n-1] = points[n-1].WithY(points[0].Y)

	bands := (n - 1) + (n - 2)
	buf := Buffers{
		Top:  make([]float32, 0, bands*2*9),
		Wall: make([]float32, 0, bands*4*9),
	}

	traveled := 0.0
	for i := n - 1; i > 0; i-- {
		start, end := points[i], points[i-1]
		direction := end.Sub(start)
		length := direction.Length()
		cross, bottom := CrossSection(direction, width)

		startTaper, startRamp := ramp.At(traveled)
		endTaper, endRamp := ramp.At(traveled + length)

		from := section{point: start, cross: cross, bottom: bottom, taper: startTaper, ramp: startRamp}
		to := section{point: end, cross: cross, bottom: bottom, taper: endTaper, ramp: endRamp}
		buf.emitBand(from, to, height)

		if i > 1 {
			nextCross, nextBottom := CrossSection(points[i-2].Sub(end), width)
			joint := section{point: end, cross: nextCross, bottom: nextBottom, taper: endTaper, ramp: endRamp}
			buf.emitBand(to, joint, height)
		}

		traveled += length
	}

	Logger().Debug("envelope: built",
		"points", n,
		"length", traveled,
		"rampLength", ramp.Length,
		"topTriangles", len(buf.Top)/9,
		"wallTriangles", len(buf.Wall)/9)

	return buf
}

// emitBand connects two sections with a top quad and a wall quad per side
func (b *Buffers) emitBand(from, to section, height float64) {
	const left, right = -1.0, 1.0

	b.Top = appendTriangle(b.Top, from.top(left, height), from.top(right, height), to.top(left, height))
	b.Top = appendTriangle(b.Top, from.top(right, height), to.top(right, height), to.top(left, height))

	b.Wall = appendTriangle(b.Wall, from.base(left), from.top(left, height), to.base(left))
	b.Wall = appendTriangle(b.Wall, from.top(left, height), to.top(left, height), to.base(left))

	b.Wall = appendTriangle(b.Wall, from.top(right, height), from.base(right), to.top(right, height))
	b.Wall = appendTriangle(b.Wall, from.base(right), to.base(right), to.top(right, height))
}

func appendTriangle(buf []float32, a, b, c geometry.Vector3) []float32 {
	buf = a.AppendFloat32(buf)
	buf = b.AppendFloat32(buf)
	return c.AppendFloat32(buf)
}
