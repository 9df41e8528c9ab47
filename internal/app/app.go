// Package app is the raylib envelope viewer: it generates the envelope of a
// route file, draws its meshes with their materials, reloads when the file
// changes and measures distances between envelope vertices.
package app

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/envelope/pkg/envelope"
)

// Options configures the viewer
type Options struct {
	// Base holds the assembly options the route file is layered onto.
	Base       envelope.Options
	Background envelope.Color
	Width      int32
	Height     int32
}

type App struct {
	Camera      CameraState
	Scene       SceneData
	View        ViewSettings
	Measurement MeasurementState
	Interaction InteractionState
	FileWatch   FileWatchState

	options  Options
	material rl.Material
}

// Run opens a window on the envelope of the route file and blocks until it
// is closed
func Run(source string, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1400, 900
	}

	app := &App{
		View: ViewSettings{
			showFilled:    true,
			showWireframe: true,
			showRoute:     true,
		},
		options: opts,
	}
	app.FileWatch.sourceFile = source
	app.FileWatch.loaded = make(chan loadResult, 1)

	// Generate before opening the window so a broken file fails fast
	scene, err := app.loadScene()
	if err != nil {
		return fmt.Errorf("failed to load route file: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := app.setupFileWatcher(ctx); err != nil {
		slog.Warn("auto-reload disabled", "error", err)
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(opts.Width, opts.Height, "Envelope - "+scene.result.Name())
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyNull)

	app.material = rl.LoadMaterialDefault()
	app.applyScene(scene)
	defer app.unloadScene()
	app.fitCamera()

	r, g, b := opts.Background.RGB()
	background := rl.NewColor(r, g, b, 255)

	for !rl.WindowShouldClose() {
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && (rl.IsKeyPressed(rl.KeyC) || rl.IsKeyPressed(rl.KeyQ)) {
			break
		}

		if app.FileWatch.needsReload.Load() && !app.FileWatch.isLoading {
			app.FileWatch.needsReload.Store(false)
			app.reloadModel()
		}
		app.applyLoadedModel()

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(background)

		rl.BeginMode3D(app.Camera.camera)
		app.drawScene()
		rl.EndMode3D()

		app.drawMeasurements()
		app.drawUI()

		rl.EndDrawing()
	}

	return nil
}
