package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/envelope/version"
)

const (
	lineHeight  = 20
	titleSize   = 18
	textSize    = 14
	panelMargin = 10
)

var (
	titleColor = rl.Yellow
	textColor  = rl.RayWhite
	mutedColor = rl.NewColor(150, 150, 150, 255)
)

type textCursor struct {
	x, y int32
}

func (c *textCursor) line(text string, size int32, color rl.Color) {
	rl.DrawText(text, c.x, c.y, size, color)
	c.y += lineHeight
}

func (c *textCursor) gap() {
	c.y += lineHeight / 2
}

// drawUI draws the info panel, measurements, status and help
func (app *App) drawUI() {
	c := &textCursor{x: panelMargin, y: panelMargin}

	c.line(app.Scene.result.Name(), titleSize, titleColor)
	c.line(app.FileWatch.sourceFile, textSize, mutedColor)
	c.gap()

	stats := app.Scene.stats
	c.line("Route:", textSize+2, titleColor)
	c.line(fmt.Sprintf("  Points: %d  Bends: %d", stats.Points, stats.Bends), textSize, textColor)
	c.line(fmt.Sprintf("  Length: %.2f  Rise: %.2f", stats.Length, stats.Rise), textSize, textColor)
	c.line(fmt.Sprintf("  Ramp: %.2f", stats.RampLength), textSize, textColor)
	c.gap()

	c.line("Meshes:", textSize+2, titleColor)
	for _, m := range app.Scene.summaries {
		c.line(fmt.Sprintf("  %-5s %4d triangles  %s  %.2f", m.Name, m.TriangleCount, m.Color, m.Opacity), textSize, textColor)
	}
	c.gap()

	if !app.Measurement.IsEmpty() {
		c.line("Measure:", textSize+2, titleColor)
		for i, seg := range app.Measurement.Segments() {
			color := textColor
			if app.Measurement.Invalid[i] {
				color = invalidColor
			}
			d := seg.Delta()
			c.line(fmt.Sprintf("  #%d %.2f  (dx %.2f, dy %.2f, dz %.2f)", i+1, seg.Length(), d.X, d.Y, d.Z), textSize, color)
		}
		c.line(fmt.Sprintf("  Total: %.2f", app.Measurement.Total()), textSize, rl.Green)
		if app.Measurement.Hovered != nil {
			h := *app.Measurement.Hovered
			c.line(fmt.Sprintf("  Vertex: (%.2f, %.2f, %.2f)", h.X, h.Y, h.Z), textSize, mutedColor)
		}
	}

	app.drawStatus()
	app.drawHelp()
}

// drawStatus shows the reload spinner or the last reload error
func (app *App) drawStatus() {
	screenWidth := int32(rl.GetScreenWidth())

	var text string
	color := titleColor
	switch {
	case app.FileWatch.isLoading:
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		spinner := []string{"|", "/", "-", "\\"}
		text = fmt.Sprintf("%s Loading... (%.1fs)", spinner[int(elapsed*10)%len(spinner)], elapsed)
	case app.FileWatch.lastError != nil:
		text = "Reload failed: " + app.FileWatch.lastError.Error()
		color = invalidColor
	default:
		return
	}

	width := rl.MeasureText(text, titleSize) + 2*panelMargin
	x := screenWidth - width - 20
	rl.DrawRectangle(x, 20, width, 40, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, 20, width, 40, color)
	rl.DrawText(text, x+panelMargin, 20+(40-titleSize)/2, titleSize, color)
}

// drawHelp lists the controls in the bottom left corner
func (app *App) drawHelp() {
	screenHeight := int32(rl.GetScreenHeight())

	lines := []string{"H: help  " + version.GetVersion()}
	if app.View.showHelp {
		lines = []string{
			"Drag: orbit  Shift+drag: pan  Wheel: zoom",
			"Click: pick vertex  Backspace: undo  Esc: end line / clear",
			"Home: reset  T: top  1-4: front/back/left/right",
			"W: wireframe  F: filled  R: route  L: reload",
			"H: hide help  " + version.GetVersion(),
		}
	}

	y := screenHeight - panelMargin - int32(len(lines))*lineHeight
	for _, line := range lines {
		rl.DrawText(line, panelMargin, y, textSize, mutedColor)
		y += lineHeight
	}
}
