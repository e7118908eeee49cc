package ecs

import (
	"reflect"
	"slices"
)

// QueryOption narrows a query by component presence or absence.
type QueryOption func(*queryFilter)

type queryFilter struct {
	with    []reflect.Type
	without []reflect.Type
}

// With requires the entity to carry a component of type T without fetching it.
func With[T any]() QueryOption {
	return func(f *queryFilter) {
		f.with = append(f.with, reflect.TypeFor[T]())
	}
}

// Without excludes entities carrying a component of type T.
func Without[T any]() QueryOption {
	return func(f *queryFilter) {
		f.without = append(f.without, reflect.TypeFor[T]())
	}
}

// Query returns the entities matching every With and no Without option, ordered by entity index.
// A query without any With option matches nothing.
//
// Parameters:
//   - w: the world
//   - opts: the filters
//
// Returns:
//   - []Entity: the matching entities
func Query(w *World, opts ...QueryOption) []Entity {
	f := &queryFilter{}
	for _, opt := range opts {
		opt(f)
	}
	return w.candidates(f)
}

// Each1 calls fn for every entity carrying A.
func Each1[A any](w *World, fn func(Entity, *A), opts ...QueryOption) {
	for _, e := range w.candidates(newFilter(opts, reflect.TypeFor[A]())) {
		a, ok := Get[A](w, e)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// Each2 calls fn for every entity carrying A and B.
func Each2[A, B any](w *World, fn func(Entity, *A, *B), opts ...QueryOption) {
	for _, e := range w.candidates(newFilter(opts, reflect.TypeFor[A](), reflect.TypeFor[B]())) {
		a, okA := Get[A](w, e)
		b, okB := Get[B](w, e)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

// Each3 calls fn for every entity carrying A, B and C.
func Each3[A, B, C any](w *World, fn func(Entity, *A, *B, *C), opts ...QueryOption) {
	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
	for _, e := range w.candidates(newFilter(opts, types...)) {
		a, okA := Get[A](w, e)
		b, okB := Get[B](w, e)
		c, okC := Get[C](w, e)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

// Each4 calls fn for every entity carrying A, B, C and D.
func Each4[A, B, C, D any](w *World, fn func(Entity, *A, *B, *C, *D), opts ...QueryOption) {
	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
	for _, e := range w.candidates(newFilter(opts, types...)) {
		a, okA := Get[A](w, e)
		b, okB := Get[B](w, e)
		c, okC := Get[C](w, e)
		d, okD := Get[D](w, e)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}

func newFilter(opts []QueryOption, fetched ...reflect.Type) *queryFilter {
	f := &queryFilter{with: fetched}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// candidates intersects the required stores starting from the smallest one. The result is a
// snapshot, so callers may spawn, despawn or mutate components while walking it.
func (w *World) candidates(f *queryFilter) []Entity {
	if len(f.with) == 0 {
		return nil
	}

	stores := make([]*componentStore, 0, len(f.with))
	for _, typ := range f.with {
		s, ok := w.stores[typ]
		if !ok || s.count() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	slices.SortFunc(stores, func(a, b *componentStore) int { return a.count() - b.count() })

	result := stores[0].snapshot()
	for _, s := range stores[1:] {
		result = slices.DeleteFunc(result, func(e Entity) bool { return !s.has(e) })
	}
	for _, typ := range f.without {
		if s, ok := w.stores[typ]; ok {
			result = slices.DeleteFunc(result, s.has)
		}
	}

	slices.SortFunc(result, func(a, b Entity) int { return int(a.index) - int(b.index) })
	return result
}
