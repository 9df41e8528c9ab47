package envelope

import (
	"math"
	"testing"

	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cornerPath() []geometry.Vector3 {
	return []geometry.Vector3{{X: 0}, {X: 100}, {X: 100, Z: 100}}
}

func TestAssembleTooFewPoints(t *testing.T) {
	for _, path := range [][]geometry.Vector3{nil, {{X: 1, Y: 2, Z: 3}}} {
		group := Assemble(path, Options{})

		assert.True(t, group.IsEmpty())
		assert.NotPanics(t, group.Dispose)
	}
}

func TestAssembleCorner(t *testing.T) {
	group := Assemble(cornerPath(), Options{Width: 50, Height: 50})
	defer group.Dispose()

	require.Len(t, group.Children, 3)
	assert.Equal(t, TopMeshName, group.Children[0].Name)
	assert.Equal(t, WallMeshName, group.Children[1].Name)
	assert.Equal(t, FloorMeshName, group.Children[2].Name)

	top := group.Child(TopMeshName)
	assert.Equal(t, 2*2+2*1, top.TriangleCount())

	floor := group.Child(FloorMeshName)
	require.Equal(t, 1, floor.TriangleCount())
	assert.Equal(t, DoubleSide, floor.Material.Side)

	bbox := geometry.NewBoundingBox()
	for _, tri := range floor.WorldTriangles() {
		bbox.ExtendTriangle(tri)
	}
	assert.InDelta(t, 0, bbox.Min.X, 1e-6)
	assert.InDelta(t, 100, bbox.Max.X, 1e-6)
	assert.InDelta(t, 0, bbox.Min.Y, 1e-6)
	assert.InDelta(t, 0, bbox.Max.Y, 1e-6)
	assert.InDelta(t, 100, bbox.Max.Z, 1e-6)
}

func TestFloorRotationIsNotShared(t *testing.T) {
	first := Assemble(cornerPath(), Options{})
	defer first.Dispose()

	floor := first.Child(FloorMeshName)
	assert.Equal(t, geometry.NewVector3(math.Pi/2, 0, 0), floor.Rotation)

	floor.Rotation = geometry.Vector3{}

	second := Assemble(cornerPath(), Options{})
	defer second.Dispose()
	assert.Equal(t, geometry.NewVector3(math.Pi/2, 0, 0), second.Child(FloorMeshName).Rotation)
	assert.Equal(t, geometry.NewVector3(math.Pi/2, 0, 0), FloorRotation())
}

func TestAssembleDefaults(t *testing.T) {
	explicit := Assemble(cornerPath(), Options{Width: DefaultWidth, Height: DefaultHeight})
	defaults := Assemble(cornerPath(), Options{})

	assert.Equal(t,
		explicit.Child(TopMeshName).Geometry.Positions(),
		defaults.Child(TopMeshName).Geometry.Positions())
}

func TestAssembleBaseMaterials(t *testing.T) {
	group := Assemble(cornerPath(), Options{})

	assert.Equal(t, TopColor, group.Child(TopMeshName).Material.Color)
	assert.Equal(t, TopOpacity, group.Child(TopMeshName).Material.Opacity)
	assert.Equal(t, WallOpacity, group.Child(WallMeshName).Material.Opacity)
	assert.Equal(t, FloorOpacity, group.Child(FloorMeshName).Material.Opacity)
}

func TestAssembleTint(t *testing.T) {
	group := Assemble(cornerPath(), Options{}.WithColor(0xFF8800))

	assert.Equal(t, TopColor, group.Child(TopMeshName).Material.Color, "top keeps its dark color")
	assert.Equal(t, Color(0xFF8800), group.Child(WallMeshName).Material.Color)
	assert.Equal(t, Color(0xFF8800), group.Child(FloorMeshName).Material.Color)
}

func TestAssembleOpacityModifier(t *testing.T) {
	group := Assemble(cornerPath(), Options{}.WithOpacity(0.5))

	assert.InDelta(t, 0.5, group.Child(TopMeshName).Material.Opacity, 1e-12)
	assert.InDelta(t, 0.4, group.Child(WallMeshName).Material.Opacity, 1e-12)
	assert.InDelta(t, 0.15, group.Child(FloorMeshName).Material.Opacity, 1e-12)
}

func TestAssembleDeterministic(t *testing.T) {
	a := Assemble(cornerPath(), Options{Width: 30, Height: 20})
	b := Assemble(cornerPath(), Options{Width: 30, Height: 20})

	for _, name := range []string{TopMeshName, WallMeshName, FloorMeshName} {
		assert.Equal(t, a.Child(name).Geometry.Positions(), b.Child(name).Geometry.Positions(), name)
	}
}

func TestAssembleDisposeReleasesTopAndWallOnly(t *testing.T) {
	group := Assemble(cornerPath(), Options{})

	group.Dispose()

	assert.True(t, group.Child(TopMeshName).Geometry.Disposed())
	assert.Nil(t, group.Child(TopMeshName).Geometry.Positions())
	assert.True(t, group.Child(WallMeshName).Geometry.Disposed())
	assert.False(t, group.Child(FloorMeshName).Geometry.Disposed())
	assert.NotPanics(t, group.Dispose)
}

func TestAssembleReuseLeavesCacheUntouched(t *testing.T) {
	ResetResources()
	t.Cleanup(ResetResources)

	shared := Resources(DefaultLightWidth, DefaultLightLength, true)
	group := Assemble(cornerPath(), Options{ReuseResources: true}.WithColor(0x00FF00).WithOpacity(0.5))

	assert.Equal(t, WallColor, shared.WallMaterial.Color)
	assert.Equal(t, WallOpacity, shared.WallMaterial.Opacity)
	assert.Equal(t, FloorOpacity, shared.FloorMaterial.Opacity)
	assert.NotSame(t, shared.WallMaterial, group.Child(WallMeshName).Material)
	assert.InDelta(t, 0.4, group.Child(WallMeshName).Material.Opacity, 1e-12)

	plain := Assemble(cornerPath(), Options{ReuseResources: true})
	assert.Same(t, shared.WallMaterial, plain.Child(WallMeshName).Material)
}

func TestGroupBoundingBox(t *testing.T) {
	group := Assemble(cornerPath(), Options{Width: 50, Height: 50})

	bbox := group.BoundingBox()

	assert.InDelta(t, 50, bbox.Max.Y, 1e-4)
	assert.InDelta(t, 0, bbox.Min.Y, 1e-4)
	assert.InDelta(t, -35, bbox.Min.Z, 1e-4)
}

func TestGroupTriangles(t *testing.T) {
	group := Assemble(cornerPath(), Options{})
	defer group.Dispose()

	triangles := group.Triangles()
	require.Len(t, triangles, 6+12+1)

	floor := triangles[len(triangles)-1]
	for _, v := range []geometry.Vector3{floor.V1, floor.V2, floor.V3} {
		assert.InDelta(t, 0.0, v.Y, 1e-9, "floor lies in the ground plane")
	}
}
