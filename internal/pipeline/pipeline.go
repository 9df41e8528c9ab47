// Package pipeline turns a route file into an assembled envelope and writes
// it out. It is shared by the command line tool and the viewer.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/philipparndt/envelope/pkg/analysis"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/philipparndt/envelope/pkg/pathfile"
	"github.com/philipparndt/envelope/pkg/stl"
	"github.com/philipparndt/envelope/pkg/viewer"
)

// Override adjusts the merged options after the route file was applied
type Override func(envelope.Options) envelope.Options

// Result is one generated envelope. Close releases its geometry.
type Result struct {
	Source  string
	Route   *pathfile.Route
	Path    []geometry.Vector3
	Options envelope.Options
	Group   *envelope.Group
}

// IsRouteFile reports whether the extension names a route file
func IsRouteFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Generate loads a route file and assembles its envelope. Options are
// layered: base first, then the route file, then override.
func Generate(filename string, base envelope.Options, override Override) (*Result, error) {
	if !IsRouteFile(filename) {
		return nil, fmt.Errorf("unsupported file type: %s (expected .yaml, .yml or .json)", filepath.Ext(filename))
	}

	route, err := pathfile.Load(filename)
	if err != nil {
		return nil, err
	}

	opts := route.Apply(base)
	if override != nil {
		opts = override(opts)
	}

	path := route.Path()
	group := envelope.Assemble(path, opts)
	if group.IsEmpty() {
		slog.Warn("route too short, envelope is empty", "file", filename, "points", len(path))
	}
	slog.Debug("envelope generated", "file", filename, "points", len(path), "width", opts.Width, "height", opts.Height)

	return &Result{
		Source:  filename,
		Route:   route,
		Path:    path,
		Options: opts,
		Group:   group,
	}, nil
}

// Name returns the route name, falling back to the file name
func (r *Result) Name() string {
	if r.Route.Name != "" {
		return r.Route.Name
	}
	return strings.TrimSuffix(filepath.Base(r.Source), filepath.Ext(r.Source))
}

// Model returns the world-space triangles of the envelope as an STL model
func (r *Result) Model() *stl.Model {
	return stl.FromTriangles(r.Name(), r.Group.Triangles())
}

// Triangles returns the world-space triangles of one sub-mesh, or of the
// whole envelope when mesh is empty
func (r *Result) Triangles(mesh string) ([]geometry.Triangle, error) {
	if mesh == "" {
		return r.Group.Triangles(), nil
	}
	child := r.Group.Child(mesh)
	if child == nil {
		return nil, fmt.Errorf("unknown mesh %q (expected %s, %s or %s)",
			mesh, envelope.TopMeshName, envelope.WallMeshName, envelope.FloorMeshName)
	}
	return child.WorldTriangles(), nil
}

// Export writes the envelope as STL
func (r *Result) Export(filename string, format stl.Format) error {
	model := r.Model()
	if err := stl.Save(filename, model, format); err != nil {
		return err
	}
	slog.Info("envelope exported", "file", filename, "triangles", model.TriangleCount())
	return nil
}

// Preview renders the envelope into a PNG file from the default viewpoint
func (r *Result) Preview(filename string, cam *viewer.Camera, opts viewer.RenderOptions) error {
	if cam == nil {
		cam = viewer.NewCamera(r.Group.BoundingBox())
	}
	if err := viewer.SavePNG(filename, r.Group, cam, opts); err != nil {
		return err
	}
	slog.Info("preview written", "file", filename, "width", opts.Width, "height", opts.Height)
	return nil
}

// Summary measures the route and every sub-mesh
func (r *Result) Summary() (analysis.RouteStats, []analysis.MeshSummary) {
	return analysis.AnalyzeRoute(r.Path), analysis.SummarizeGroup(r.Group)
}

// Close disposes the envelope
func (r *Result) Close() {
	r.Group.Dispose()
}
