package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/envelope/internal/measurement"
	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/analysis"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/philipparndt/envelope/pkg/watcher"
)

// CameraState holds the orbit camera
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32 // pitch
	angleY        float32 // yaw
	target        rl.Vector3
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// sceneMesh is one uploaded sub-mesh
type sceneMesh struct {
	name      string
	mesh      rl.Mesh
	opaque    bool
	triangles int
}

// SceneData holds the envelope currently on screen
type SceneData struct {
	result    *pipeline.Result
	meshes    []sceneMesh
	edges     [][2]rl.Vector3
	vertices  []geometry.Vector3
	route     []rl.Vector3
	center    rl.Vector3
	size      float32 // largest bounding box dimension
	spacing   float32 // average vertex spacing
	stats     analysis.RouteStats
	summaries []analysis.MeshSummary
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showRoute     bool
	showHelp      bool
}

// InteractionState holds mouse state between frames
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
}

// FileWatchState holds file watching and reload state. The watcher callback
// runs on its own goroutine and only sets needsReload; everything else is
// touched on the main thread.
type FileWatchState struct {
	sourceFile       string
	fileWatcher      *watcher.FileWatcher
	needsReload      atomic.Bool
	isLoading        bool
	loadingStartTime time.Time
	loaded           chan loadResult
	lastError        error
}

// MeasurementState is an alias for measurement.State
type MeasurementState = measurement.State
