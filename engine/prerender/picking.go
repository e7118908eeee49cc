package prerender

import (
	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
)

// maxPickingID is the largest id representable by the 24 bit color encoding.
const maxPickingID = 1<<24 - 1

// ColorPicking maps entities to opaque picking colors and back. Ids start at 1 so black never
// resolves to an entity; ids of removed entities are reused oldest first.
type ColorPicking struct {
	byEntity map[ecs.Entity]uint32
	byID     map[uint32]ecs.Entity
	free     []uint32
	next     uint32
}

// NewColorPicking creates an empty registry.
func NewColorPicking() *ColorPicking {
	return &ColorPicking{
		byEntity: make(map[ecs.Entity]uint32),
		byID:     make(map[uint32]ecs.Entity),
		next:     1,
	}
}

// CreatePicking returns the picking color of e, assigning one on first use. It panics when every
// id is in use.
//
// Parameters:
//   - e: the entity to pick
//
// Returns:
//   - common.Color: the opaque color identifying e
func (c *ColorPicking) CreatePicking(e ecs.Entity) common.Color {
	if id, ok := c.byEntity[e]; ok {
		return common.ColorFromPickingID(id)
	}

	var id uint32
	if len(c.free) > 0 {
		id = c.free[0]
		c.free = c.free[1:]
	} else {
		if c.next > maxPickingID {
			panic("color picking ids exhausted")
		}
		id = c.next
		c.next++
	}
	c.byEntity[e] = id
	c.byID[id] = e
	return common.ColorFromPickingID(id)
}

// Color returns the picking color of e if one was assigned.
func (c *ColorPicking) Color(e ecs.Entity) (common.Color, bool) {
	id, ok := c.byEntity[e]
	if !ok {
		return common.Color{}, false
	}
	return common.ColorFromPickingID(id), true
}

// Remove reclaims the id of e.
func (c *ColorPicking) Remove(e ecs.Entity) {
	id, ok := c.byEntity[e]
	if !ok {
		return
	}
	delete(c.byEntity, e)
	delete(c.byID, id)
	c.free = append(c.free, id)
}

// EntityFromColor resolves a color read back from the picking pass.
func (c *ColorPicking) EntityFromColor(color common.Color) (ecs.Entity, bool) {
	e, ok := c.byID[color.PickingID()]
	return e, ok
}

// Len returns the number of assigned ids.
func (c *ColorPicking) Len() int { return len(c.byEntity) }
