// Package premade holds ready-made engine packages that games can compose with engine.WithPackage.
package premade

import (
	"github.com/Carmen-Shannon/scion-go/engine"
	"github.com/Carmen-Shannon/scion-go/engine/camera"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// CameraPackage spawns a camera covering the window, keeps it sized to the window and pans it
// with the arrow keys.
type CameraPackage struct {
	options []camera.ControllerOption
	entity  ecs.Entity
	spawned bool
}

// NewCameraPackage creates the package.
//
// Parameters:
//   - options: options for the camera.ControllerConfig resource
//
// Returns:
//   - *CameraPackage: the package to pass to engine.WithPackage
func NewCameraPackage(options ...camera.ControllerOption) *CameraPackage {
	return &CameraPackage{options: options}
}

// Prepare inserts the controller resource and spawns the camera at the origin, unless the world
// already has a camera.
func (p *CameraPackage) Prepare(data *gamedata.GameData) {
	ecs.InsertResource(data.Resources, camera.NewControllerConfig(p.options...))

	found := false
	ecs.Each1(data.World, func(_ ecs.Entity, _ *camera.Camera) { found = true })
	if found {
		return
	}
	w := data.Window()
	p.entity = data.World.Spawn(
		camera.NewCamera(float32(w.Width()), float32(w.Height()), camera.WithDPI(w.DPI())),
		component.FromXY(0, 0),
	)
	p.spawned = true
}

// Load registers the window fitting and controller systems.
func (p *CameraPackage) Load() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{
		engine.WithSystems(camera.FitWindowSystem, camera.ControllerSystem),
	}
}

// Entity returns the camera spawned by Prepare, if any.
func (p *CameraPackage) Entity() (ecs.Entity, bool) {
	return p.entity, p.spawned
}
