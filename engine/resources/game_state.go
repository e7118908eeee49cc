package resources

import "github.com/Carmen-Shannon/scion-go/engine/ecs"

// GameState holds engine-wide flags shared between game code and the runner.
type GameState struct {
	pickingEnabled bool
	pickingUpdate  *bool
	pickedEntity   *ecs.Entity
	flags          map[string]bool
}

// NewGameState creates the state with color picking disabled.
func NewGameState() *GameState {
	return &GameState{flags: make(map[string]bool)}
}

// SetColorPicking enables or disables cursor color picking. A change is queued for the runner
// to forward to the rendering thread.
func (g *GameState) SetColorPicking(enabled bool) {
	if g.pickingEnabled == enabled {
		return
	}
	g.pickingEnabled = enabled
	g.pickingUpdate = &enabled
	if !enabled {
		g.pickedEntity = nil
	}
}

// ColorPickingEnabled reports whether picking is on.
func (g *GameState) ColorPickingEnabled() bool { return g.pickingEnabled }

// TakePickingUpdate returns and clears the queued picking status change.
//
// Returns:
//   - bool: the new status
//   - bool: whether a change was queued
func (g *GameState) TakePickingUpdate() (bool, bool) {
	if g.pickingUpdate == nil {
		return false, false
	}
	v := *g.pickingUpdate
	g.pickingUpdate = nil
	return v, true
}

// SetPickedEntity stores the entity under the cursor, nil when none.
func (g *GameState) SetPickedEntity(e *ecs.Entity) {
	g.pickedEntity = e
}

// PickedEntity returns the entity under the cursor.
func (g *GameState) PickedEntity() (ecs.Entity, bool) {
	if g.pickedEntity == nil {
		return ecs.Entity{}, false
	}
	return *g.pickedEntity, true
}

// SetFlag stores a named game flag.
func (g *GameState) SetFlag(name string, v bool) {
	g.flags[name] = v
}

// Flag returns a named game flag, false when unset.
func (g *GameState) Flag(name string) bool {
	return g.flags[name]
}
