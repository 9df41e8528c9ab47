package viewer

import (
	"testing"

	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshBuffersCopyUnrotatedPositions(t *testing.T) {
	group := cornerGroup(t, envelope.Options{})
	wall := group.Child(envelope.WallMeshName)

	b := NewMeshBuffers(wall)

	positions := wall.Geometry.Positions()
	require.Equal(t, positions, b.Vertices)
	assert.Equal(t, wall.TriangleCount(), b.TriangleCount())
	assert.Len(t, b.Normals, len(b.Vertices))
	assert.Len(t, b.Colors, b.VertexCount()*4)
	assert.False(t, b.Opaque)

	b.Vertices[0] = -1
	assert.NotEqual(t, float32(-1), positions[0], "buffers do not alias the geometry")
}

func TestMeshBuffersRotateFloor(t *testing.T) {
	group := cornerGroup(t, envelope.Options{})
	floor := group.Child(envelope.FloorMeshName)

	b := NewMeshBuffers(floor)

	require.Equal(t, 9, len(b.Vertices))
	for i := 1; i < len(b.Vertices); i += 3 {
		assert.InDelta(t, 0, b.Vertices[i], 1e-4, "floor lies at y = 0")
	}
	world := floor.WorldTriangles()[0]
	assert.InDelta(t, world.V1.X, b.Vertices[0], 1e-4)
	assert.InDelta(t, world.V1.Z, b.Vertices[2], 1e-4)
	assert.True(t, b.DoubleSided)
}

func TestMeshBuffersBakeMaterial(t *testing.T) {
	group := cornerGroup(t, envelope.Options{}.WithColor(0xFF0000))
	b := NewMeshBuffers(group.Child(envelope.FloorMeshName))

	r, g, bl, a := b.Colors[0], b.Colors[1], b.Colors[2], b.Colors[3]
	assert.Greater(t, r, uint8(0))
	assert.Zero(t, g)
	assert.Zero(t, bl)
	assert.InDelta(t, 0.3*255, float64(a), 1, "floor opacity")
}

func TestGroupBuffersDrawOrder(t *testing.T) {
	group := cornerGroup(t, envelope.Options{})

	buffers := GroupBuffers(group)

	require.Len(t, buffers, 3)
	assert.Equal(t, envelope.TopMeshName, buffers[0].Name)
	assert.True(t, buffers[0].Opaque)
	assert.Equal(t, envelope.WallMeshName, buffers[1].Name)
	assert.Equal(t, envelope.FloorMeshName, buffers[2].Name)
}

func TestGroupBuffersSkipInvisible(t *testing.T) {
	assert.Empty(t, GroupBuffers(cornerGroup(t, envelope.Options{}.WithOpacity(0))))
	assert.Empty(t, GroupBuffers(&envelope.Group{}))
}
