// Package gamedata bundles the world and its resource registry into the single handle passed
// to systems and scenes.
package gamedata

import (
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/resources"
)

// GameData is the mutable simulation state of one engine instance.
type GameData struct {
	World     *ecs.World
	Resources *ecs.Resources
}

// New creates an empty world with the engine's default resources registered.
//
// Parameters:
//   - width: initial window width in pixels
//   - height: initial window height in pixels
//   - dpi: initial scale factor
//
// Returns:
//   - *GameData: the new simulation state
func New(width, height int, dpi float64) *GameData {
	data := &GameData{World: ecs.NewWorld(), Resources: ecs.NewResources()}
	ecs.InsertResource(data.Resources, resources.NewTimers())
	ecs.InsertResource(data.Resources, resources.NewInputs())
	ecs.InsertResource(data.Resources, resources.NewWindow(width, height, dpi))
	ecs.InsertResource(data.Resources, resources.NewEvents())
	ecs.InsertResource(data.Resources, resources.NewGameState())
	ecs.InsertResource(data.Resources, resources.NewAssetManager())
	ecs.InsertResource(data.Resources, resources.NewFontAtlas())
	ecs.InsertResource(data.Resources, resources.NewCommandBuffer())
	ecs.InsertResource(data.Resources, resources.NewAudio(nil))
	return data
}

// Time returns the tick clock. It is registered by the runner before the first tick.
func (d *GameData) Time() *resources.Time { return ecs.MustGetResource[resources.Time](d.Resources) }

func (d *GameData) Timers() *resources.Timers {
	return ecs.MustGetResource[resources.Timers](d.Resources)
}

func (d *GameData) Inputs() *resources.Inputs {
	return ecs.MustGetResource[resources.Inputs](d.Resources)
}

func (d *GameData) Window() *resources.Window {
	return ecs.MustGetResource[resources.Window](d.Resources)
}

func (d *GameData) Events() *resources.Events {
	return ecs.MustGetResource[resources.Events](d.Resources)
}

func (d *GameData) GameState() *resources.GameState {
	return ecs.MustGetResource[resources.GameState](d.Resources)
}

func (d *GameData) Assets() *resources.AssetManager {
	return ecs.MustGetResource[resources.AssetManager](d.Resources)
}

func (d *GameData) FontAtlas() *resources.FontAtlas {
	return ecs.MustGetResource[resources.FontAtlas](d.Resources)
}

func (d *GameData) Audio() *resources.Audio {
	return ecs.MustGetResource[resources.Audio](d.Resources)
}

func (d *GameData) Commands() *resources.CommandBuffer {
	return ecs.MustGetResource[resources.CommandBuffer](d.Resources)
}
