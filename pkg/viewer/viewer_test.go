package viewer

import (
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cornerPath = []geometry.Vector3{{X: 100, Z: 100}, {X: 100}, {}}

func cornerGroup(t *testing.T, opts envelope.Options) *envelope.Group {
	t.Helper()
	group := envelope.Assemble(cornerPath, opts)
	t.Cleanup(group.Dispose)
	return group
}

func TestCameraFramesBoundingBox(t *testing.T) {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(-10, -10, -10))
	bbox.Extend(geometry.NewVector3(10, 10, 10))

	cam := NewCamera(bbox)

	assert.Equal(t, geometry.Vector3{}, cam.Target)
	assert.InDelta(t, cam.Distance, cam.Position.Length(), 1e-9)

	for _, corner := range []geometry.Vector3{bbox.Min, bbox.Max, {X: -10, Y: 10, Z: 10}} {
		x, y, z := cam.Project(corner, 200, 200)
		assert.True(t, x >= 0 && x <= 200 && y >= 0 && y <= 200, "corner %v projected to (%f, %f)", corner, x, y)
		assert.Greater(t, z, 0.0)
	}

	x, y, _ := cam.Project(cam.Target, 200, 100)
	assert.InDelta(t, 100.0, x, 1e-9)
	assert.InDelta(t, 50.0, y, 1e-9)
}

func TestCameraEmptyBoundingBox(t *testing.T) {
	cam := NewCamera(geometry.NewBoundingBox())
	assert.False(t, math.IsNaN(cam.Distance))
	assert.Greater(t, cam.Distance, 0.0)
}

func TestCameraRotateClampsPitch(t *testing.T) {
	cam := NewCamera(geometry.NewBoundingBox())

	cam.Rotate(10, 0)
	assert.Less(t, cam.Pitch, math.Pi/2)
	cam.Rotate(-20, 0)
	assert.Greater(t, cam.Pitch, -math.Pi/2)

	cam.Rotate(0, 1)
	assert.InDelta(t, DefaultYaw+1, cam.Yaw, 1e-9)
	assert.InDelta(t, cam.Distance, cam.Position.Sub(cam.Target).Length(), 1e-9)
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(geometry.NewBoundingBox())
	before := cam.Distance

	cam.Zoom(0.5)
	assert.InDelta(t, before*1.5, cam.Distance, 1e-9)

	cam.Zoom(-10)
	assert.Equal(t, 0.1, cam.Distance)
}

func TestRenderEmptyGroup(t *testing.T) {
	img := Render(&envelope.Group{}, NewCamera(geometry.NewBoundingBox()), RenderOptions{
		Width: 8, Height: 6, Background: 0x102030,
	})

	require.Equal(t, 8, img.Bounds().Dx())
	require.Equal(t, 6, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}, img.RGBAAt(3, 3))
}

func TestRenderDrawsEnvelope(t *testing.T) {
	group := cornerGroup(t, envelope.Options{})
	cam := NewCamera(group.BoundingBox())
	background := envelope.Color(0x0000FF)

	img := Render(group, cam, RenderOptions{Width: 64, Height: 64, Background: background})

	covered := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{B: 0xFF, A: 0xFF}) {
				covered++
			}
		}
	}
	assert.Greater(t, covered, 64*64/20, "envelope should cover part of the frame")
	assert.Less(t, covered, 64*64, "background should remain visible")
}

func TestRenderTranslucentBlends(t *testing.T) {
	// A single translucent quad facing the camera over a black background.
	positions := []float32{
		-1, -1, 0, 1, -1, 0, 1, 1, 0,
		-1, -1, 0, 1, 1, 0, -1, 1, 0,
	}
	group := &envelope.Group{Children: []*envelope.Mesh{{
		Name:     "quad",
		Geometry: envelope.NewBufferGeometry(positions),
		Material: &envelope.Material{Color: 0xFFFFFF, Opacity: 0.5, Transparent: true},
	}}}
	cam := NewCamera(group.BoundingBox())
	cam.Pitch, cam.Yaw = 0, 0
	cam.UpdatePosition()

	img := Render(group, cam, RenderOptions{Width: 32, Height: 32})

	center := img.RGBAAt(16, 16)
	assert.Greater(t, center.R, uint8(0x40))
	assert.Less(t, center.R, uint8(0xC0), "half opacity should not saturate")
}

func TestRenderSupersample(t *testing.T) {
	group := cornerGroup(t, envelope.Options{})
	cam := NewCamera(group.BoundingBox())

	img := Render(group, cam, RenderOptions{Width: 40, Height: 30, Supersample: 3, Route: cornerPath})

	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestRenderZeroSize(t *testing.T) {
	img := Render(&envelope.Group{}, NewCamera(geometry.NewBoundingBox()), RenderOptions{})
	assert.True(t, img.Bounds().Empty())
}

func TestSavePNG(t *testing.T) {
	group := cornerGroup(t, envelope.Options{})
	filename := filepath.Join(t.TempDir(), "preview.png")

	err := SavePNG(filename, group, NewCamera(group.BoundingBox()), RenderOptions{Width: 16, Height: 16})
	require.NoError(t, err)
	assert.FileExists(t, filename)
}

func TestEnvelopeViewInteraction(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	view := NewEnvelopeView(cornerGroup(t, envelope.Options{}), cornerPath)
	window := test.NewWindow(view)
	defer window.Close()
	window.Resize(fyne.NewSize(120, 120))

	before := view.Camera()
	view.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DX: 10, DY: 5}})
	view.DragEnd()
	after := view.Camera()
	assert.InDelta(t, before.Yaw-0.1, after.Yaw, 1e-9)
	assert.InDelta(t, before.Pitch+0.05, after.Pitch, 1e-9)

	view.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -100}})
	assert.InDelta(t, after.Distance*1.1, view.Camera().Distance, 1e-9)

	view.ResetCamera()
	assert.Equal(t, DefaultYaw, view.Camera().Yaw)

	replacement := cornerGroup(t, envelope.Options{Width: 10})
	view.SetGroup(replacement, nil, true)
	assert.Equal(t, replacement.BoundingBox().Center(), view.Camera().Target)
}

func TestRenderCaption(t *testing.T) {
	background := envelope.Color(0x000000)
	opts := RenderOptions{Width: 200, Height: 100, Background: background}
	cam := NewCamera(geometry.NewBoundingBox())

	plain := Render(&envelope.Group{}, cam, opts)
	opts.Caption = "corner: 19 triangles"
	captioned := Render(&envelope.Group{}, cam, opts)

	bright := 0
	for y := 50; y < 100; y++ {
		for x := 0; x < 200; x++ {
			assert.Equal(t, plain.RGBAAt(x, 0), plain.RGBAAt(x, y))
			if captioned.RGBAAt(x, y).R > 0x80 {
				bright++
			}
		}
	}
	assert.Greater(t, bright, 20, "caption text should be drawn")
	assert.Equal(t, plain.RGBAAt(100, 10), captioned.RGBAAt(100, 10), "caption stays at the bottom")
}
