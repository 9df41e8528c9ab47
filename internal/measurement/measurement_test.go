package measurement

import (
	"testing"

	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	origin = geometry.NewVector3(0, 0, 0)
	east   = geometry.NewVector3(3, 0, 0)
	up     = geometry.NewVector3(3, 4, 0)
)

func TestSegmentLabel(t *testing.T) {
	assert.Equal(t, "3.00", Segment{Start: origin, End: east}.Label())
	assert.Equal(t, "4.00 (rise 4.00)", Segment{Start: east, End: up}.Label())
	assert.Equal(t, geometry.NewVector3(1.5, 0, 0), Segment{Start: origin, End: east}.Midpoint())
}

func TestStateChainsPoints(t *testing.T) {
	var s State
	s.AddPoint(origin)
	s.AddPoint(origin)
	assert.Empty(t, s.Current.Segments, "picking the same vertex twice adds nothing")

	s.AddPoint(east)
	s.AddPoint(up)

	require.Len(t, s.Current.Segments, 2)
	assert.Equal(t, []geometry.Vector3{up}, s.SelectedPoints)
	assert.InDelta(t, 7.0, s.Total(), 1e-9)

	s.Finish()
	assert.Empty(t, s.SelectedPoints)
	require.Len(t, s.Lines, 1)
	assert.InDelta(t, 7.0, s.Lines[0].Length(), 1e-9)

	s.AddPoint(origin)
	s.AddPoint(up)
	assert.Len(t, s.Segments(), 3)
	assert.InDelta(t, 12.0, s.Total(), 1e-9)
}

func TestStateUndo(t *testing.T) {
	var s State
	s.AddPoint(origin)
	s.AddPoint(east)

	s.Undo()
	assert.Empty(t, s.Current.Segments)
	assert.Equal(t, []geometry.Vector3{origin}, s.SelectedPoints)

	s.Undo()
	assert.True(t, s.IsEmpty())
}

func TestStatePreview(t *testing.T) {
	var s State
	_, ok := s.Preview()
	assert.False(t, ok)

	s.AddPoint(origin)
	hovered := east
	s.Hovered = &hovered

	preview, ok := s.Preview()
	require.True(t, ok)
	assert.InDelta(t, 3.0, preview.Length(), 1e-9)

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Hovered)
}

func TestRevalidate(t *testing.T) {
	var s State
	s.AddPoint(origin)
	s.AddPoint(east)
	s.Finish()
	s.AddPoint(east)
	s.AddPoint(up)

	invalid := s.Revalidate([]geometry.Vector3{origin, east}, 1e-6)

	assert.Equal(t, 1, invalid)
	assert.True(t, s.Invalid[1])
	assert.False(t, s.Invalid[0])
	assert.Empty(t, s.SelectedPoints, "the open end vanished")

	assert.Zero(t, s.Revalidate([]geometry.Vector3{origin, east, up}, 1e-6))
	assert.Nil(t, s.Invalid)
}

func TestUniqueVertices(t *testing.T) {
	triangles := []geometry.Triangle{
		geometry.NewFacet(origin, east, up),
		geometry.NewFacet(origin, up, geometry.NewVector3(0, 4, 0)),
	}

	assert.Equal(t, []geometry.Vector3{origin, east, up, geometry.NewVector3(0, 4, 0)}, UniqueVertices(triangles))
}

// orthoXY looks down -Z: screen x = world x, screen y = world y, depth = -z
func orthoXY(p geometry.Vector3) (float64, float64, float64, bool) {
	return p.X, p.Y, -p.Z, p.Z < 10
}

func TestPickNearestOnScreen(t *testing.T) {
	vertices := []geometry.Vector3{origin, east, up}

	v, ok := Pick(vertices, orthoXY, 2.5, 0.5, 2)
	require.True(t, ok)
	assert.Equal(t, east, v)

	_, ok = Pick(vertices, orthoXY, 10, 10, 2)
	assert.False(t, ok)
}

func TestPickPrefersFrontVertex(t *testing.T) {
	back := geometry.NewVector3(1, 1, -5)
	front := geometry.NewVector3(1, 1, 5)
	hidden := geometry.NewVector3(1, 1, 20)

	v, ok := Pick([]geometry.Vector3{back, hidden, front}, orthoXY, 1, 1, 2)
	require.True(t, ok)
	assert.Equal(t, front, v)
}

func TestPickEnvelopeCorner(t *testing.T) {
	group := envelope.Assemble([]geometry.Vector3{{X: 0}, {X: 100}, {X: 100, Z: 100}}, envelope.Options{Width: 50, Height: 50})
	defer group.Dispose()

	vertices := UniqueVertices(group.Triangles())
	top := func(p geometry.Vector3) (float64, float64, float64, bool) {
		return p.X, p.Z, -p.Y, true
	}

	v, ok := Pick(vertices, top, 0, 0, 1)
	require.True(t, ok)
	assert.InDelta(t, 0, v.X, 1e-6)
	assert.InDelta(t, 0, v.Z, 1e-6)
	for _, other := range vertices {
		if other.X == v.X && other.Z == v.Z {
			assert.GreaterOrEqual(t, v.Y, other.Y, "the topmost vertex wins when looking down")
		}
	}
}

func TestAverageSpacing(t *testing.T) {
	assert.Equal(t, 1.0, AverageSpacing(nil))
	assert.InDelta(t, 4.0, AverageSpacing([]geometry.Triangle{geometry.NewFacet(origin, east, up)}), 1e-9)
}
