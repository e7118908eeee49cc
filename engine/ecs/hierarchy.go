package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

var (
	parentType   = reflect.TypeFor[Parent]()
	childrenType = reflect.TypeFor[Children]()
)

// Parent links an entity to its parent. The world maintains the matching Children list.
type Parent struct {
	Entity Entity
}

// Children is the derived forward index of a parent. It only changes through Parent
// components and never holds duplicates or despawned entities.
type Children struct {
	entities []Entity
}

// Entities returns a copy of the child list.
func (c *Children) Entities() []Entity {
	return slices.Clone(c.entities)
}

// Len returns the number of children.
func (c *Children) Len() int {
	return len(c.entities)
}

// Contains reports whether e is a child.
func (c *Children) Contains(e Entity) bool {
	return slices.Contains(c.entities, e)
}

func (w *World) linkParent(child Entity, p *Parent) {
	if !w.Contains(p.Entity) {
		panic(fmt.Sprintf("parent entity %v referenced by %v does not exist", p.Entity, child))
	}
	if p.Entity == child {
		panic(fmt.Sprintf("entity %v cannot be its own parent", child))
	}
	for cur := p.Entity; ; {
		next, ok := Get[Parent](w, cur)
		if !ok {
			break
		}
		if next.Entity == child {
			panic(fmt.Sprintf("parent %v of %v would create a hierarchy cycle", p.Entity, child))
		}
		cur = next.Entity
	}

	if old, ok := Get[Parent](w, child); ok {
		if old.Entity == p.Entity {
			return
		}
		w.unlinkChild(old.Entity, child)
	}
	w.relinked = append(w.relinked, child)

	s := w.store(childrenType)
	c, ok := s.get(p.Entity)
	if !ok {
		c = &Children{}
		s.set(p.Entity, c)
	}
	children := c.(*Children)
	if !slices.Contains(children.entities, child) {
		children.entities = append(children.entities, child)
	}
}

func (w *World) unlinkChild(parent, child Entity) {
	s, ok := w.stores[childrenType]
	if !ok {
		return
	}
	c, ok := s.get(parent)
	if !ok {
		return
	}
	children := c.(*Children)
	children.entities = slices.DeleteFunc(children.entities, func(e Entity) bool { return e == child })
}
