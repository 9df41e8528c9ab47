package envelope

import (
	"github.com/philipparndt/envelope/pkg/geometry"
)

// Options configures a single Assemble call
type Options struct {
	Width  float64 // full cross-section width; zero selects DefaultWidth
	Height float64 // thickness of the top cap; zero selects DefaultHeight

	// Color tints the walls and the floor. The top cap keeps TopColor.
	Color *Color
	// OpacityModifier scales the base opacity of every layer.
	OpacityModifier *float64

	// ReuseResources shares materials with the process-wide cache.
	ReuseResources bool
}

// WithColor returns a copy of o with the tint set
func (o Options) WithColor(c Color) Options {
	o.Color = &c
	return o
}

// WithOpacity returns a copy of o with the opacity modifier set
func (o Options) WithOpacity(m float64) Options {
	o.OpacityModifier = &m
	return o
}

func (o Options) width() float64 {
	if o.Width == 0 {
		return DefaultWidth
	}
	return o.Width
}

func (o Options) height() float64 {
	if o.Height == 0 {
		return DefaultHeight
	}
	return o.Height
}

// Assemble builds the envelope for a route and groups its top, wall and
// floor meshes. Routes with fewer than two points return an empty group.
// The caller owns the result and must call Dispose when done with it;
// disposal releases the top and wall buffers only.
func Assemble(path []geometry.Vector3, opts Options) *Group {
	if len(path) < 2 {
		return &Group{}
	}

	res := Resources(DefaultLightWidth, DefaultLightLength, opts.ReuseResources)
	topMaterial, wallMaterial, floorMaterial := res.TopMaterial, res.WallMaterial, res.FloorMaterial
	if opts.ReuseResources && (opts.Color != nil || opts.OpacityModifier != nil) {
		// Shared materials are never written to.
		topMaterial = topMaterial.Clone()
		wallMaterial = wallMaterial.Clone()
		floorMaterial = floorMaterial.Clone()
	}

	buffers := Build(path, opts.width(), opts.height())
	topGeometry := NewBufferGeometry(buffers.Top)
	wallGeometry := NewBufferGeometry(buffers.Wall)
	floorGeometry := NewBufferGeometry(FootprintPositions(path))

	top := &Mesh{Name: TopMeshName, Geometry: topGeometry, Material: topMaterial}
	wall := &Mesh{Name: WallMeshName, Geometry: wallGeometry, Material: wallMaterial}
	floor := &Mesh{Name: FloorMeshName, Geometry: floorGeometry, Material: floorMaterial, Rotation: FloorRotation()}

	if opts.OpacityModifier != nil {
		m := *opts.OpacityModifier
		top.Material.Opacity *= m
		wall.Material.Opacity *= m
		floor.Material.Opacity *= m
	}

	if opts.Color != nil {
		wall.Material.Color = *opts.Color
		floor.Material.Color = *opts.Color
	}

	return &Group{
		Children: []*Mesh{top, wall, floor},
		onDispose: func() {
			topGeometry.Dispose()
			wallGeometry.Dispose()
			Logger().Debug("envelope: disposed top and wall geometry")
		},
	}
}
