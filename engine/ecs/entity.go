package ecs

import "fmt"

// Entity is an opaque generational identifier. The index is recycled after a despawn, the
// generation is bumped so stale handles never resolve to the new occupant.
type Entity struct {
	index      uint32
	generation uint32
}

// Index returns the slot index of the entity.
func (e Entity) Index() uint32 {
	return e.index
}

// Generation returns the generation of the entity slot at the time the handle was created.
func (e Entity) Generation() uint32 {
	return e.generation
}

// IsZero reports whether e is the zero handle, which never names a live entity.
func (e Entity) IsZero() bool {
	return e.generation == 0
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.index, e.generation)
}
