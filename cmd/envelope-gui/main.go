package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/config"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/philipparndt/envelope/pkg/stl"
	"github.com/philipparndt/envelope/pkg/viewer"
	"github.com/philipparndt/envelope/pkg/watcher"
)

type App struct {
	window fyne.Window
	cfg    *config.Config

	source  string
	result  *pipeline.Result
	view    *viewer.EnvelopeView
	watcher *watcher.FileWatcher

	controls *Controls
	info     *widget.Label
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	envelope.SetLogger(logger)

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("Envelope Viewer")

	appInstance := &App{
		window: w,
		cfg:    cfg,
	}
	defer appInstance.close()

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Envelope Viewer")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open a route file (.yaml, .yml or .json) to generate its envelope")

	openButton := widget.NewButton("Open Route File", a.showFileDialog)

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

// loadFile generates the envelope with config and route file settings only,
// then hands the resolved options to the controls.
func (a *App) loadFile(filename string) {
	result, err := pipeline.Generate(filename, a.cfg.Options(), nil)
	if err != nil {
		if a.view == nil {
			a.showWelcomeScreen()
		}
		dialog.ShowError(fmt.Errorf("failed to load route file: %w", err), a.window)
		return
	}

	a.source = filename
	a.watch(filename)

	if a.view == nil {
		a.setupMainUI(result)
	}
	a.controls.load(result.Options)
	a.show(result, true)
}

func (a *App) watch(filename string) {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, slog.Default())
	if err != nil {
		slog.Warn("file watching disabled", "error", err)
		return
	}
	err = fw.Watch([]string{filename}, func(string) {
		fyne.Do(a.reload)
	})
	if err != nil {
		fw.Close()
		slog.Warn("file watching disabled", "error", err)
		return
	}
	fw.Start(context.Background())
	a.watcher = fw
}

func (a *App) setupMainUI(result *pipeline.Result) {
	a.view = viewer.NewEnvelopeView(result.Group, nil)
	a.view.SetAppearance(a.cfg.BackgroundColor(), a.cfg.Preview.Supersample)
	a.info = widget.NewLabel("")

	a.controls = newControls(a.regenerate, a.showRoute)

	resetButton := widget.NewButton("Reset View", a.view.ResetCamera)
	openButton := widget.NewButton("Open File", a.showFileDialog)
	exportButton := widget.NewButton("Export STL", a.exportSTL)
	previewButton := widget.NewButton("Save PNG", a.savePNG)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Edits to the route file reload automatically",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Envelope Information:"),
		widget.NewSeparator(),
		a.info,
		widget.NewSeparator(),
		widget.NewLabel("Options:"),
		a.controls.form(),
		a.controls.showRoute,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		resetButton,
		exportButton,
		previewButton,
		openButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(nil, nil, nil, infoScroll, a.view)
	a.window.SetContent(content)
}

// reload regenerates from the route file alone, discarding control edits
func (a *App) reload() {
	result, err := pipeline.Generate(a.source, a.cfg.Options(), nil)
	if err != nil {
		// Keep the last good envelope on screen while the file is being edited.
		a.info.SetText(fmt.Sprintf("Reload failed:\n%v", err))
		return
	}
	a.controls.load(result.Options)
	a.show(result, false)
}

// regenerate rebuilds the envelope from the route file with the control values
func (a *App) regenerate() {
	if a.source == "" || a.controls.updating {
		return
	}

	override, err := a.controls.override()
	if err != nil {
		a.info.SetText(err.Error())
		return
	}

	result, err := pipeline.Generate(a.source, a.cfg.Options(), override)
	if err != nil {
		// Keep the last good envelope on screen while the file is being edited.
		a.info.SetText(fmt.Sprintf("Reload failed:\n%v", err))
		return
	}
	a.show(result, false)
}

// show swaps in a new result and disposes the previous one
func (a *App) show(result *pipeline.Result, refit bool) {
	previous := a.result
	a.result = result

	a.view.SetGroup(result.Group, a.routeOverlay(), refit)
	a.info.SetText(describe(result))
	a.window.SetTitle(fmt.Sprintf("Envelope Viewer - %s", result.Name()))

	if previous != nil {
		previous.Close()
	}
}

func (a *App) showRoute(bool) {
	if a.result != nil {
		a.view.SetGroup(a.result.Group, a.routeOverlay(), false)
	}
}

func (a *App) routeOverlay() []geometry.Vector3 {
	if a.result == nil || !a.controls.showRoute.Checked {
		return nil
	}
	return a.result.Path
}

func (a *App) exportSTL() {
	if a.result == nil {
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		format := stl.Binary
		if a.cfg.Envelope.ASCII {
			format = stl.ASCII
		}
		if err := stl.Write(writer, a.result.Model(), format); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export STL: %w", err), a.window)
		}
	}, a.window)
}

func (a *App) savePNG() {
	if a.result == nil {
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		writer.Close()

		cam := a.view.Camera()
		opts := viewer.RenderOptions{
			Width:       a.cfg.Preview.Width,
			Height:      a.cfg.Preview.Height,
			Supersample: a.cfg.Preview.Supersample,
			Background:  a.cfg.BackgroundColor(),
			Route:       a.routeOverlay(),
			Caption:     a.result.Name(),
		}
		if err := a.result.Preview(writer.URI().Path(), &cam, opts); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

func (a *App) close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.result != nil {
		a.result.Close()
	}
}

func describe(result *pipeline.Result) string {
	stats, meshes := result.Summary()

	var b strings.Builder
	fmt.Fprintf(&b, "Route: %s\n", result.Name())
	fmt.Fprintf(&b, "Points: %d  Bends: %d\n", stats.Points, stats.Bends)
	fmt.Fprintf(&b, "Length: %.2f\n", stats.Length)
	fmt.Fprintf(&b, "Rise: %.2f  Ramp: %.2f\n", stats.Rise, stats.RampLength)
	for _, m := range meshes {
		fmt.Fprintf(&b, "\n%s: %d triangles\n", m.Name, m.TriangleCount)
		fmt.Fprintf(&b, "  %s @ %.2f\n", m.Color, m.Opacity)
		fmt.Fprintf(&b, "  Area: %.2f\n", m.SurfaceArea)
	}
	if result.Group.IsEmpty() {
		b.WriteString("\nRoute needs at least two points.")
	}
	return b.String()
}
