package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/envelope/pkg/viewer"
)

const maxPitch = 1.5

// fitCamera frames the scene and makes the framing the reset view
func (app *App) fitCamera() {
	distance := app.Scene.size * 2
	if distance <= 0 {
		distance = 100
	}

	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = viewer.DefaultPitch
	app.Camera.defaultAngleY = viewer.DefaultYaw
	app.resetCameraView()

	app.Camera.camera = rl.Camera3D{
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.updateCamera()
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Scene.center
}

// setCameraTopView looks straight down on the footprint
func (app *App) setCameraTopView() {
	app.Camera.angleX = maxPitch
	app.Camera.angleY = 0
	app.Camera.target = app.Scene.center
}

// setCameraFrontView looks along -Z
func (app *App) setCameraFrontView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
	app.Camera.target = app.Scene.center
}

// setCameraBackView looks along +Z
func (app *App) setCameraBackView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi
	app.Camera.target = app.Scene.center
}

// setCameraLeftView looks along +X
func (app *App) setCameraLeftView() {
	app.Camera.angleX = 0
	app.Camera.angleY = -math.Pi / 2
	app.Camera.target = app.Scene.center
}

// setCameraRightView looks along -X
func (app *App) setCameraRightView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi / 2
	app.Camera.target = app.Scene.center
}

// rotate orbits the camera, keeping the pitch short of the poles
func (app *App) rotate(delta rl.Vector2) {
	app.Camera.angleY += delta.X * 0.01
	app.Camera.angleX -= delta.Y * 0.01
	app.Camera.angleX = float32(math.Max(-maxPitch, math.Min(maxPitch, float64(app.Camera.angleX))))
}

// zoom scales the orbit distance by the wheel movement
func (app *App) zoom(wheel float32) {
	app.Camera.distance *= 1.0 - wheel*0.05
	if app.Camera.distance < 1.0 {
		app.Camera.distance = 1.0
	}
}

// updateCamera places the camera on its orbit around the target
func (app *App) updateCamera() {
	x := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Sin(float64(app.Camera.angleY)))
	y := app.Camera.distance * float32(math.Sin(float64(app.Camera.angleX)))
	z := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Cos(float64(app.Camera.angleY)))

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + x,
		Y: app.Camera.target.Y + y,
		Z: app.Camera.target.Z + z,
	}
	app.Camera.camera.Target = app.Camera.target
}

// doPan moves the target in the view plane by the mouse delta
func (app *App) doPan(delta rl.Vector2) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	panSpeed := app.Camera.distance * 0.001

	app.Camera.target = rl.Vector3Add(app.Camera.target, rl.Vector3Scale(right, -delta.X*panSpeed))
	app.Camera.target = rl.Vector3Add(app.Camera.target, rl.Vector3Scale(up, delta.Y*panSpeed))
}
