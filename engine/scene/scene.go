// Package scene drives the lifecycle of the active scene. One scene is active at a time and
// switching is abrupt: the outgoing scene receives no teardown callback.
package scene

import (
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// Scene is a lifecycle-scoped bundle of setup and update logic. The scene value itself holds
// the scene state. Embed BaseScene to get empty defaults for everything but OnStart.
type Scene interface {
	// OnStart is called once when the scene becomes active, before any other callback of
	// the same pass.
	OnStart(data *gamedata.GameData)

	// OnUpdate is called every variable tick before the systems run.
	OnUpdate(data *gamedata.GameData)

	// OnLateUpdate is called every variable tick after the systems ran.
	OnLateUpdate(data *gamedata.GameData)

	// OnFixedUpdate is called every fixed tick.
	OnFixedUpdate(data *gamedata.GameData)

	// OnEndFrame is called every variable tick after render preparation.
	OnEndFrame(data *gamedata.GameData)
}

// BaseScene provides empty lifecycle callbacks.
type BaseScene struct{}

func (BaseScene) OnUpdate(*gamedata.GameData)      {}
func (BaseScene) OnLateUpdate(*gamedata.GameData)  {}
func (BaseScene) OnFixedUpdate(*gamedata.GameData) {}
func (BaseScene) OnEndFrame(*gamedata.GameData)    {}

// Controller is the resource through which game code requests a scene switch. The switch is
// applied by the machine at the start of its next action.
type Controller struct {
	pending Scene
}

// SwitchTo queues next as the active scene, replacing any earlier request.
func (c *Controller) SwitchTo(next Scene) {
	c.pending = next
}

// Pending reports whether a switch is queued.
func (c *Controller) Pending() bool { return c.pending != nil }

func (c *Controller) take() Scene {
	next := c.pending
	c.pending = nil
	return next
}
