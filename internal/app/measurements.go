package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/envelope/internal/measurement"
	"github.com/philipparndt/envelope/pkg/geometry"
)

const (
	markerRadius  = 3
	lineThickness = 2
	pickRadius    = 12
	labelFontSize = 16
)

var invalidColor = rl.NewColor(255, 60, 60, 255)

// project maps world points to the screen through the current camera
func (app *App) project(p geometry.Vector3) (x, y, depth float64, visible bool) {
	cam := app.Camera.camera
	pos := toRaylib(p)
	forward := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	depth = float64(rl.Vector3DotProduct(rl.Vector3Subtract(pos, cam.Position), forward))
	if depth <= 0 {
		return 0, 0, depth, false
	}
	screen := rl.GetWorldToScreen(pos, cam)
	return float64(screen.X), float64(screen.Y), depth, true
}

// updateHoverVertex snaps the cursor to the nearest envelope vertex
func (app *App) updateHoverVertex() {
	mouse := rl.GetMousePosition()
	v, ok := measurement.Pick(app.Scene.vertices, app.project, float64(mouse.X), float64(mouse.Y), pickRadius)
	if !ok {
		app.Measurement.Hovered = nil
		return
	}
	app.Measurement.Hovered = &v
}

// selectPoint adds the hovered vertex to the current measurement line
func (app *App) selectPoint() {
	if app.Measurement.Hovered == nil {
		return
	}
	app.Measurement.AddPoint(*app.Measurement.Hovered)
}

func (app *App) toScreen(p geometry.Vector3) rl.Vector2 {
	return rl.GetWorldToScreen(toRaylib(p), app.Camera.camera)
}

func drawMarker(pos rl.Vector2, color rl.Color) {
	rl.DrawCircleLines(int32(pos.X), int32(pos.Y), markerRadius, color)
	rl.DrawCircle(int32(pos.X), int32(pos.Y), markerRadius-1, color)
}

// drawLabel draws text centered on pos over a dark box
func drawLabel(text string, pos rl.Vector2, color rl.Color) {
	const padding = 4
	width := rl.MeasureText(text, labelFontSize)
	x := int32(pos.X) - width/2
	y := int32(pos.Y) - labelFontSize/2
	rl.DrawRectangle(x-padding, y-padding, width+2*padding, labelFontSize+2*padding, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLines(x-padding, y-padding, width+2*padding, labelFontSize+2*padding, color)
	rl.DrawText(text, x, y, labelFontSize, color)
}

// drawMeasurements draws segments, markers and labels in screen space
func (app *App) drawMeasurements() {
	for i, seg := range app.Measurement.Segments() {
		color := rl.Yellow
		if app.Measurement.Invalid[i] {
			color = invalidColor
		}
		start, end := app.toScreen(seg.Start), app.toScreen(seg.End)
		rl.DrawLineEx(start, end, lineThickness, color)
		drawMarker(start, color)
		drawMarker(end, color)
		drawLabel(seg.Label(), app.toScreen(seg.Midpoint()), color)
	}

	if preview, ok := app.Measurement.Preview(); ok {
		start, end := app.toScreen(preview.Start), app.toScreen(preview.End)
		rl.DrawLineEx(start, end, lineThickness, rl.Orange)
		drawLabel(preview.Label(), app.toScreen(preview.Midpoint()), rl.Orange)
	}

	for _, p := range app.Measurement.SelectedPoints {
		drawMarker(app.toScreen(p), rl.Green)
	}

	if app.Measurement.Hovered != nil {
		pos := app.toScreen(*app.Measurement.Hovered)
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), markerRadius+3, rl.SkyBlue)
	}
}
