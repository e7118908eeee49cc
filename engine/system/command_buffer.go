// Package system contains the built-in systems the engine registers ahead of game systems,
// plus the world-level tilemap operations.
package system

import (
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
	"github.com/Carmen-Shannon/scion-go/engine/gamedata"
)

// CommandBufferSystem applies the transform commands queued during the previous tick.
// Commands targeting entities that were despawned or lost their transform are dropped.
func CommandBufferSystem(data *gamedata.GameData) {
	for _, cmd := range data.Commands().Drain() {
		t, ok := ecs.Get[component.Transform](data.World, cmd.Entity)
		if !ok {
			continue
		}
		cmd.Command.Apply(t)
	}
}
