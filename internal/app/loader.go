package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/watcher"
)

// loadResult is a finished background reload
type loadResult struct {
	scene *preparedScene
	err   error
}

// loadScene generates the envelope and prepares it for upload
func (app *App) loadScene() (*preparedScene, error) {
	result, err := pipeline.Generate(app.FileWatch.sourceFile, app.options.Base, nil)
	if err != nil {
		return nil, err
	}
	return prepareScene(result), nil
}

// setupFileWatcher reloads the envelope whenever the route file changes
func (app *App) setupFileWatcher(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(changedFile string) {
		slog.Info("route file changed", "file", changedFile)
		app.FileWatch.needsReload.Store(true)
	}

	if err := fw.Watch([]string{app.FileWatch.sourceFile}, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start(ctx)
	app.FileWatch.fileWatcher = fw
	slog.Info("watching route file for changes", "file", app.FileWatch.sourceFile)
	return nil
}

// reloadModel regenerates the envelope in the background. The upload
// happens in applyLoadedModel on the main thread.
func (app *App) reloadModel() {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	slog.Info("reloading envelope", "file", app.FileWatch.sourceFile)

	go func() {
		scene, err := app.loadScene()
		app.FileWatch.loaded <- loadResult{scene: scene, err: err}
	}()
}

// applyLoadedModel swaps in a finished reload, keeping the camera where the
// user left it. Must be called on the main thread.
func (app *App) applyLoadedModel() {
	var loaded loadResult
	select {
	case loaded = <-app.FileWatch.loaded:
	default:
		return
	}
	app.FileWatch.isLoading = false

	if loaded.err != nil {
		app.FileWatch.lastError = loaded.err
		slog.Error("reload failed", "file", app.FileWatch.sourceFile, "error", loaded.err)
		return
	}
	app.FileWatch.lastError = nil

	oldCenter := app.Scene.center
	app.applyScene(loaded.scene)

	// Follow the envelope if its center moved.
	app.Camera.target.X += app.Scene.center.X - oldCenter.X
	app.Camera.target.Y += app.Scene.center.Y - oldCenter.Y
	app.Camera.target.Z += app.Scene.center.Z - oldCenter.Z

	tolerance := float64(app.Scene.spacing) * 1e-3
	if invalid := app.Measurement.Revalidate(app.Scene.vertices, tolerance); invalid > 0 {
		slog.Warn("measurements no longer on the envelope", "segments", invalid)
	}

	slog.Info("envelope reloaded",
		"file", app.FileWatch.sourceFile,
		"elapsed", time.Since(app.FileWatch.loadingStartTime).Round(time.Millisecond))
}
