package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/envelope/internal/measurement"
	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/philipparndt/envelope/pkg/viewer"
)

// preparedScene is everything a reload can compute off the main thread
type preparedScene struct {
	result  *pipeline.Result
	buffers []viewer.MeshBuffers
	data    SceneData
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// prepareScene flattens the envelope and measures it. It does not touch
// the GPU.
func prepareScene(result *pipeline.Result) *preparedScene {
	triangles := result.Group.Triangles()

	data := SceneData{
		result:   result,
		vertices: measurement.UniqueVertices(triangles),
		spacing:  float32(measurement.AverageSpacing(triangles)),
	}
	data.stats, data.summaries = result.Summary()

	bbox := result.Group.BoundingBox()
	if !bbox.IsEmpty() {
		size := bbox.Size()
		data.center = toRaylib(bbox.Center())
		data.size = float32(math.Max(size.X, math.Max(size.Y, size.Z)))
	}

	type edgeKey [2]geometry.Vector3
	seen := make(map[edgeKey]bool, len(triangles)*3)
	for _, t := range triangles {
		for _, e := range [3]edgeKey{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
			if seen[e] || seen[edgeKey{e[1], e[0]}] {
				continue
			}
			seen[e] = true
			data.edges = append(data.edges, [2]rl.Vector3{toRaylib(e[0]), toRaylib(e[1])})
		}
	}

	for _, p := range result.Path {
		data.route = append(data.route, toRaylib(p))
	}

	return &preparedScene{
		result:  result,
		buffers: viewer.GroupBuffers(result.Group),
		data:    data,
	}
}

// uploadMesh hands the flattened buffers to raylib. The positions keep the
// flat x, y, z layout the envelope builder emits.
func uploadMesh(b viewer.MeshBuffers) rl.Mesh {
	mesh := rl.Mesh{
		VertexCount:   int32(b.VertexCount()),
		TriangleCount: int32(b.TriangleCount()),
	}
	if b.VertexCount() == 0 {
		return mesh
	}

	texcoords := make([]float32, b.VertexCount()*2)
	mesh.Vertices = &b.Vertices[0]
	mesh.Normals = &b.Normals[0]
	mesh.Colors = &b.Colors[0]
	mesh.Texcoords = &texcoords[0]

	rl.UploadMesh(&mesh, false)
	return mesh
}

// applyScene uploads a prepared scene and swaps it in. Must run on the main
// thread.
func (app *App) applyScene(p *preparedScene) {
	meshes := make([]sceneMesh, 0, len(p.buffers))
	for _, b := range p.buffers {
		meshes = append(meshes, sceneMesh{
			name:      b.Name,
			mesh:      uploadMesh(b),
			opaque:    b.Opaque,
			triangles: b.TriangleCount(),
		})
	}

	app.unloadScene()
	app.Scene = p.data
	app.Scene.meshes = meshes
}

// unloadScene frees the GPU meshes and disposes the envelope
func (app *App) unloadScene() {
	for i := range app.Scene.meshes {
		if app.Scene.meshes[i].triangles > 0 {
			rl.UnloadMesh(&app.Scene.meshes[i].mesh)
		}
	}
	app.Scene.meshes = nil
	if app.Scene.result != nil {
		app.Scene.result.Close()
		app.Scene.result = nil
	}
}

// drawScene draws opaque meshes first, then translucent ones without depth
// writes so the walls and the floor stay see-through. Both faces are drawn.
func (app *App) drawScene() {
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()

	if app.View.showFilled {
		for _, m := range app.Scene.meshes {
			if m.opaque {
				rl.DrawMesh(m.mesh, app.material, rl.MatrixIdentity())
			}
		}

		rl.BeginBlendMode(rl.BlendAlpha)
		rl.DisableDepthMask()
		for _, m := range app.Scene.meshes {
			if !m.opaque {
				rl.DrawMesh(m.mesh, app.material, rl.MatrixIdentity())
			}
		}
		rl.EnableDepthMask()
		rl.EndBlendMode()
	}

	if app.View.showWireframe {
		app.drawWireframe()
	}
	if app.View.showRoute {
		app.drawRoute()
	}
}

// drawWireframe draws every triangle edge once
func (app *App) drawWireframe() {
	wireframeColor := rl.NewColor(100, 100, 100, 200)
	for _, e := range app.Scene.edges {
		rl.DrawLine3D(e[0], e[1], wireframeColor)
	}
}

// drawRoute overlays the route polyline with a marker per point
func (app *App) drawRoute() {
	c := viewer.RouteColor
	routeColor := rl.NewColor(c.R, c.G, c.B, c.A)
	radius := app.Scene.spacing * 0.05
	if radius <= 0 {
		radius = 1
	}

	for i, p := range app.Scene.route {
		if i > 0 {
			rl.DrawLine3D(app.Scene.route[i-1], p, routeColor)
		}
		rl.DrawSphere(p, radius, routeColor)
	}
}
