package resources

import (
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
)

// TransformCommand accumulates transform changes for one entity. Appends add up and sets
// overwrite; sets are applied before appends.
type TransformCommand struct {
	setX, setY  *float32
	setZ        *int
	setAngle    *float32
	setScale    *float32
	appendX     float32
	appendY     float32
	appendAngle float32
}

func (c *TransformCommand) SetX(x float32) *TransformCommand {
	c.setX = &x
	return c
}

func (c *TransformCommand) SetY(y float32) *TransformCommand {
	c.setY = &y
	return c
}

func (c *TransformCommand) SetZ(z int) *TransformCommand {
	c.setZ = &z
	return c
}

func (c *TransformCommand) AppendX(x float32) *TransformCommand {
	c.appendX += x
	return c
}

func (c *TransformCommand) AppendY(y float32) *TransformCommand {
	c.appendY += y
	return c
}

func (c *TransformCommand) AppendTranslation(x, y float32) *TransformCommand {
	c.appendX += x
	c.appendY += y
	return c
}

func (c *TransformCommand) AppendVector(v component.Vector) *TransformCommand {
	return c.AppendTranslation(v.X, v.Y)
}

func (c *TransformCommand) AppendAngle(angle float32) *TransformCommand {
	c.appendAngle += angle
	return c
}

func (c *TransformCommand) SetAngle(angle float32) *TransformCommand {
	c.setAngle = &angle
	return c
}

func (c *TransformCommand) SetScale(scale float32) *TransformCommand {
	c.setScale = &scale
	return c
}

// Apply writes the accumulated changes into t.
func (c *TransformCommand) Apply(t *component.Transform) {
	if c.setX != nil {
		t.SetX(*c.setX)
	}
	if c.setY != nil {
		t.SetY(*c.setY)
	}
	if c.setZ != nil {
		t.SetZ(*c.setZ)
	}
	if c.setAngle != nil {
		t.SetAngle(*c.setAngle)
	}
	if c.setScale != nil {
		t.SetScale(*c.setScale)
	}
	if c.appendX != 0 || c.appendY != 0 {
		t.AppendTranslation(c.appendX, c.appendY)
	}
	if c.appendAngle != 0 {
		t.AppendAngle(c.appendAngle)
	}
}

// EntityCommand pairs an entity with its merged transform command.
type EntityCommand struct {
	Entity  ecs.Entity
	Command *TransformCommand
}

// CommandBuffer queues transform changes issued during a tick, merged per entity.
type CommandBuffer struct {
	transforms map[ecs.Entity]*TransformCommand
	order      []ecs.Entity
}

// NewCommandBuffer creates an empty buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{transforms: make(map[ecs.Entity]*TransformCommand)}
}

// Transform returns the pending command of e, creating it on first use.
func (b *CommandBuffer) Transform(e ecs.Entity) *TransformCommand {
	c, ok := b.transforms[e]
	if !ok {
		c = &TransformCommand{}
		b.transforms[e] = c
		b.order = append(b.order, e)
	}
	return c
}

// Drain returns the pending commands in first-issued order and empties the buffer.
func (b *CommandBuffer) Drain() []EntityCommand {
	out := make([]EntityCommand, 0, len(b.order))
	for _, e := range b.order {
		out = append(out, EntityCommand{Entity: e, Command: b.transforms[e]})
	}
	clear(b.transforms)
	b.order = b.order[:0]
	return out
}
