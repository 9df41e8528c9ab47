package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes mouse and keyboard input
func (app *App) handleInput() {
	// Camera view presets
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		app.setCameraRightView()
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		app.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	}

	// Pan with Shift + drag or the middle button, orbit with a plain drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.doPan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if math.Abs(float64(delta.X)) > 1.0 || math.Abs(float64(delta.Y)) > 1.0 {
			app.Interaction.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			app.rotate(delta)
		}
	}

	// A release close to the press is a click and picks a vertex
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		dragDistance := rl.Vector2Distance(app.Interaction.mouseDownPos, rl.GetMousePosition())
		if !app.Interaction.mouseMoved && !app.Interaction.isPanning && dragDistance < 5.0 {
			app.selectPoint()
		}
		app.Interaction.isPanning = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.zoom(wheel)
	}

	// Update hover highlight (only when not dragging)
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.updateHoverVertex()
	}

	// Keyboard controls
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.View.showRoute = !app.View.showRoute
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyL) {
		app.FileWatch.needsReload.Store(true)
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		app.Measurement.Undo()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		// First Esc ends the current line, a second one clears everything
		if len(app.Measurement.SelectedPoints) > 0 {
			app.Measurement.Finish()
		} else {
			app.Measurement.Clear()
		}
	}
}
