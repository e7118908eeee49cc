// Package ecs holds the entity-component world: generational entities, per-type sparse-set
// component stores, typed queries, the Parent/Children relation and the type-keyed resource registry.
package ecs

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/rotisserie/eris"
)

// ErrEntityNotFound is returned when an operation targets a despawned or unknown entity.
var ErrEntityNotFound = eris.New("entity not found")

// World owns every entity and component of one simulation instance.
// It is not safe for concurrent use; the runner owns it on a single goroutine.
type World struct {
	generations []uint32
	alive       []bool
	free        []uint32
	living      int

	stores    map[reflect.Type]*componentStore
	despawned []Entity
	relinked  []Entity
}

// NewWorld creates an empty world.
//
// Returns:
//   - *World: the new world
func NewWorld() *World {
	return &World{
		generations: make([]uint32, 0, 256),
		alive:       make([]bool, 0, 256),
		stores:      make(map[reflect.Type]*componentStore),
	}
}

// Spawn creates an entity carrying the given components. Components may be passed by value
// or by pointer; a pointer is stored as-is and a value is copied into a fresh allocation.
//
// Parameters:
//   - components: the initial components of the entity, at most one per type
//
// Returns:
//   - Entity: the new entity
func (w *World) Spawn(components ...any) Entity {
	e := w.allocate()
	for _, c := range components {
		w.insert(e, c)
	}
	return e
}

// SpawnBatch spawns one entity per bundle and returns them in bundle order.
//
// Parameters:
//   - bundles: component sets, one per entity
//
// Returns:
//   - []Entity: the spawned entities
func (w *World) SpawnBatch(bundles ...[]any) []Entity {
	out := make([]Entity, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, w.Spawn(b...))
	}
	return out
}

// AddComponents attaches components to an existing entity, replacing components of the same type.
//
// Parameters:
//   - e: the target entity
//   - components: the components to attach
//
// Returns:
//   - error: ErrEntityNotFound if e is not alive
func (w *World) AddComponents(e Entity, components ...any) error {
	if !w.Contains(e) {
		return eris.Wrapf(ErrEntityNotFound, "cannot add components to %v", e)
	}
	for _, c := range components {
		w.insert(e, c)
	}
	return nil
}

// Despawn destroys an entity and every component attached to it. Its children lose their
// Parent component and it is removed from its own parent's children list.
//
// Parameters:
//   - e: the entity to destroy
//
// Returns:
//   - error: ErrEntityNotFound if e is not alive
func (w *World) Despawn(e Entity) error {
	if !w.Contains(e) {
		return eris.Wrapf(ErrEntityNotFound, "cannot despawn %v", e)
	}

	if p, ok := Get[Parent](w, e); ok {
		w.unlinkChild(p.Entity, e)
	}
	if c, ok := Get[Children](w, e); ok {
		for _, child := range c.entities {
			if s, ok := w.stores[parentType]; ok {
				s.remove(child)
			}
			w.relinked = append(w.relinked, child)
		}
	}

	for _, s := range w.stores {
		s.remove(e)
	}

	w.alive[e.index] = false
	w.generations[e.index]++
	w.free = append(w.free, e.index)
	w.living--
	w.despawned = append(w.despawned, e)
	return nil
}

// Contains reports whether e is alive.
func (w *World) Contains(e Entity) bool {
	return int(e.index) < len(w.alive) && w.alive[e.index] && w.generations[e.index] == e.generation
}

// EntityCount returns the number of living entities.
func (w *World) EntityCount() int {
	return w.living
}

// TakeDespawned returns the entities despawned since the last call and clears the list.
//
// Returns:
//   - []Entity: despawned entities in despawn order, nil when none
func (w *World) TakeDespawned() []Entity {
	if len(w.despawned) == 0 {
		return nil
	}
	out := w.despawned
	w.despawned = nil
	return out
}

// TakeRelinked returns the entities whose Parent was attached, replaced or removed since the
// last call and clears the list. Entities may appear more than once or be despawned already.
//
// Returns:
//   - []Entity: relinked entities in change order, nil when none
func (w *World) TakeRelinked() []Entity {
	if len(w.relinked) == 0 {
		return nil
	}
	out := w.relinked
	w.relinked = nil
	return out
}

// ComponentNames returns the sorted type names of the components attached to e. Used for diagnostics.
func (w *World) ComponentNames(e Entity) []string {
	var names []string
	for typ, s := range w.stores {
		if s.has(e) {
			names = append(names, typ.String())
		}
	}
	sort.Strings(names)
	return names
}

func (w *World) allocate() Entity {
	w.living++
	if n := len(w.free); n > 0 {
		idx := w.free[0]
		w.free = w.free[1:]
		w.alive[idx] = true
		return Entity{index: idx, generation: w.generations[idx]}
	}
	idx := uint32(len(w.generations))
	w.generations = append(w.generations, 1)
	w.alive = append(w.alive, true)
	return Entity{index: idx, generation: 1}
}

func (w *World) store(typ reflect.Type) *componentStore {
	s, ok := w.stores[typ]
	if !ok {
		s = newComponentStore(typ)
		w.stores[typ] = s
	}
	return s
}

// insert normalizes c to a pointer, stores it and keeps the Parent/Children relation in sync.
func (w *World) insert(e Entity, c any) {
	if c == nil {
		panic(fmt.Sprintf("nil component attached to entity %v", e))
	}
	v := reflect.ValueOf(c)
	var ptr any
	var typ reflect.Type
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			panic(fmt.Sprintf("nil component pointer attached to entity %v", e))
		}
		typ = v.Type().Elem()
		ptr = c
	} else {
		typ = v.Type()
		p := reflect.New(typ)
		p.Elem().Set(v)
		ptr = p.Interface()
	}

	switch typ {
	case parentType:
		w.linkParent(e, ptr.(*Parent))
	case childrenType:
		panic(fmt.Sprintf("children of entity %v are derived from Parent components and cannot be set", e))
	}
	w.store(typ).set(e, ptr)
}

// Add attaches a typed component to e.
//
// Parameters:
//   - w: the world
//   - e: the target entity
//   - c: the component value
//
// Returns:
//   - error: ErrEntityNotFound if e is not alive
func Add[T any](w *World, e Entity, c T) error {
	return w.AddComponents(e, &c)
}

// Get returns the component of type T attached to e.
//
// Parameters:
//   - w: the world
//   - e: the entity
//
// Returns:
//   - *T: the component, nil when absent
//   - bool: whether the component is present
func Get[T any](w *World, e Entity) (*T, bool) {
	s, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	c, ok := s.get(e)
	if !ok {
		return nil, false
	}
	return c.(*T), true
}

// MustGet returns the component of type T attached to e and panics when it is absent.
func MustGet[T any](w *World, e Entity) *T {
	c, ok := Get[T](w, e)
	if !ok {
		panic(fmt.Sprintf("entity %v is missing required component %s", e, reflect.TypeFor[T]()))
	}
	return c
}

// Has reports whether e carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	s, ok := w.stores[reflect.TypeFor[T]()]
	return ok && s.has(e)
}

// Remove detaches the component of type T from e.
//
// Parameters:
//   - w: the world
//   - e: the entity
//
// Returns:
//   - bool: true if a component was removed
func Remove[T any](w *World, e Entity) bool {
	typ := reflect.TypeFor[T]()
	s, ok := w.stores[typ]
	if !ok {
		return false
	}
	c, ok := s.get(e)
	if !ok {
		return false
	}

	switch typ {
	case parentType:
		w.unlinkChild(c.(*Parent).Entity, e)
		w.relinked = append(w.relinked, e)
	case childrenType:
		for _, child := range c.(*Children).entities {
			if ps, ok := w.stores[parentType]; ok {
				ps.remove(child)
			}
			w.relinked = append(w.relinked, child)
		}
	}
	s.remove(e)
	return true
}
