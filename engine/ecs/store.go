package ecs

import "reflect"

// componentStore is a sparse set holding every component of one type. Components are kept by
// pointer so a handle returned by Get stays valid until the component is removed.
type componentStore struct {
	typ      reflect.Type
	dense    []any
	entities []Entity
	sparse   map[uint32]int
}

func newComponentStore(typ reflect.Type) *componentStore {
	return &componentStore{
		typ:      typ,
		dense:    make([]any, 0, 64),
		entities: make([]Entity, 0, 64),
		sparse:   make(map[uint32]int),
	}
}

// set inserts or replaces the component of e. ptr must be a pointer to a value of s.typ.
func (s *componentStore) set(e Entity, ptr any) {
	if i, ok := s.sparse[e.index]; ok {
		s.dense[i] = ptr
		s.entities[i] = e
		return
	}
	s.sparse[e.index] = len(s.dense)
	s.dense = append(s.dense, ptr)
	s.entities = append(s.entities, e)
}

func (s *componentStore) get(e Entity) (any, bool) {
	i, ok := s.sparse[e.index]
	if !ok || s.entities[i] != e {
		return nil, false
	}
	return s.dense[i], true
}

func (s *componentStore) has(e Entity) bool {
	i, ok := s.sparse[e.index]
	return ok && s.entities[i] == e
}

// remove swap-removes the component of e and returns it.
func (s *componentStore) remove(e Entity) (any, bool) {
	i, ok := s.sparse[e.index]
	if !ok || s.entities[i] != e {
		return nil, false
	}
	removed := s.dense[i]
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.entities[i] = s.entities[last]
		s.sparse[s.entities[i].index] = i
	}
	s.dense[last] = nil
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	delete(s.sparse, e.index)
	return removed, true
}

func (s *componentStore) count() int {
	return len(s.entities)
}

func (s *componentStore) snapshot() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}
