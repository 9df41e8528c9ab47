package viewer

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
)

const (
	dragSpeed   = 0.01
	scrollSpeed = 0.001
)

// EnvelopeView is an interactive fyne widget showing an assembled envelope.
// Drag to orbit, scroll to zoom.
type EnvelopeView struct {
	widget.BaseWidget

	mu          sync.Mutex
	group       *envelope.Group
	route       []geometry.Vector3
	camera      *Camera
	background  envelope.Color
	supersample int

	raster *canvas.Raster
}

// NewEnvelopeView creates a view framing the group
func NewEnvelopeView(group *envelope.Group, route []geometry.Vector3) *EnvelopeView {
	v := &EnvelopeView{
		group:       group,
		route:       route,
		camera:      NewCamera(group.BoundingBox()),
		supersample: 1,
	}
	v.raster = canvas.NewRaster(v.draw)
	v.raster.SetMinSize(fyne.NewSize(400, 400))
	v.ExtendBaseWidget(v)
	return v
}

// SetGroup swaps the displayed envelope. The view does not dispose the
// previous group. With refit set the camera re-targets the new bounds.
func (v *EnvelopeView) SetGroup(group *envelope.Group, route []geometry.Vector3, refit bool) {
	v.mu.Lock()
	v.group = group
	v.route = route
	if refit {
		v.camera.Fit(group.BoundingBox())
	}
	v.mu.Unlock()
	v.Refresh()
}

// SetAppearance sets the background and the supersampling factor
func (v *EnvelopeView) SetAppearance(background envelope.Color, supersample int) {
	v.mu.Lock()
	v.background = background
	v.supersample = supersample
	v.mu.Unlock()
	v.Refresh()
}

// ResetCamera restores the default orbit angles
func (v *EnvelopeView) ResetCamera() {
	v.mu.Lock()
	v.camera.Pitch, v.camera.Yaw = DefaultPitch, DefaultYaw
	v.camera.Fit(v.group.BoundingBox())
	v.mu.Unlock()
	v.Refresh()
}

// Camera returns a copy of the current camera
func (v *EnvelopeView) Camera() Camera {
	v.mu.Lock()
	defer v.mu.Unlock()
	return *v.camera
}

func (v *EnvelopeView) draw(w, h int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Render(v.group, v.camera, RenderOptions{
		Width:       w,
		Height:      h,
		Supersample: v.supersample,
		Background:  v.background,
		Route:       v.route,
	})
}

// CreateRenderer implements fyne.Widget
func (v *EnvelopeView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// Dragged orbits the camera
func (v *EnvelopeView) Dragged(event *fyne.DragEvent) {
	v.mu.Lock()
	v.camera.Rotate(float64(event.Dragged.DY)*dragSpeed, float64(-event.Dragged.DX)*dragSpeed)
	v.mu.Unlock()
	v.raster.Refresh()
}

// DragEnd implements fyne.Draggable
func (v *EnvelopeView) DragEnd() {}

// Scrolled zooms the camera
func (v *EnvelopeView) Scrolled(event *fyne.ScrollEvent) {
	v.mu.Lock()
	v.camera.Zoom(-float64(event.Scrolled.DY) * scrollSpeed)
	v.mu.Unlock()
	v.raster.Refresh()
}
