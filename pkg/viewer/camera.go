package viewer

import (
	"math"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// Default orbit angles: looking down onto the route from the front right.
const (
	DefaultPitch = 0.6
	DefaultYaw   = 0.7
)

const maxPitch = math.Pi/2 - 0.05

// Camera orbits a target point at a fixed distance
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in radians
	Distance float64
	Pitch    float64 // elevation above the horizontal plane
	Yaw      float64 // rotation around the Y axis
}

// NewCamera creates a camera framing the bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	c := &Camera{
		Up:    geometry.Up,
		FOV:   math.Pi / 4,
		Pitch: DefaultPitch,
		Yaw:   DefaultYaw,
	}
	c.Fit(bbox)
	return c
}

// Fit re-targets the camera on the bounding box, keeping the orbit angles
func (c *Camera) Fit(bbox geometry.BoundingBox) {
	c.Target = bbox.Center()
	radius := bbox.Diagonal() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / math.Sin(c.FOV/2) * 1.1
	c.UpdatePosition()
}

// UpdatePosition places the camera on its orbit sphere
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate changes pitch and yaw; pitch stays short of the poles
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+deltaPitch))
	c.Yaw += deltaYaw
	c.UpdatePosition()
}

// Zoom scales the orbit distance by 1 + delta
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(0.1, c.Distance*(1.0+delta))
	c.UpdatePosition()
}

// Forward returns the unit view direction
func (c *Camera) Forward() geometry.Vector3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Project maps a world point to screen coordinates and view depth
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}
