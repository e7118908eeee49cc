package ecs

import (
	"fmt"
	"reflect"
	"sync"
)

// Resources is a type-keyed registry of singleton state scoped to one simulation instance.
// Access is checked at runtime: one exclusive borrow or any number of shared borrows.
type Resources struct {
	mu    sync.Mutex
	cells map[reflect.Type]*resourceCell
}

type resourceCell struct {
	value     any
	shared    int
	exclusive bool
}

// NewResources creates an empty registry.
func NewResources() *Resources {
	return &Resources{cells: make(map[reflect.Type]*resourceCell)}
}

// InsertResource registers or replaces the resource of type T.
// Replacing a borrowed resource panics.
func InsertResource[T any](r *Resources, value *T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	typ := reflect.TypeFor[T]()
	if c, ok := r.cells[typ]; ok && (c.exclusive || c.shared > 0) {
		panic(fmt.Sprintf("cannot replace resource %s while it is borrowed", typ))
	}
	r.cells[typ] = &resourceCell{value: value}
}

// GetResource returns the resource of type T without registering a borrow.
// It panics if the resource is currently borrowed exclusively.
//
// Returns:
//   - *T: the resource, nil when absent
//   - bool: whether the resource is registered
func GetResource[T any](r *Resources) (*T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	typ := reflect.TypeFor[T]()
	c, ok := r.cells[typ]
	if !ok {
		return nil, false
	}
	if c.exclusive {
		panic(fmt.Sprintf("resource %s is already mutably borrowed", typ))
	}
	return c.value.(*T), true
}

// MustGetResource returns the resource of type T and panics when it is missing.
func MustGetResource[T any](r *Resources) *T {
	v, ok := GetResource[T](r)
	if !ok {
		panic("required resource not found: " + reflect.TypeFor[T]().String())
	}
	return v
}

// HasResource reports whether a resource of type T is registered.
func HasResource[T any](r *Resources) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.cells[reflect.TypeFor[T]()]
	return ok
}

// RemoveResource unregisters the resource of type T and returns it.
// Removing a borrowed resource panics.
func RemoveResource[T any](r *Resources) (*T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	typ := reflect.TypeFor[T]()
	c, ok := r.cells[typ]
	if !ok {
		return nil, false
	}
	if c.exclusive || c.shared > 0 {
		panic(fmt.Sprintf("cannot remove resource %s while it is borrowed", typ))
	}
	delete(r.cells, typ)
	return c.value.(*T), true
}

// BorrowResource takes the exclusive borrow of the resource of type T. The returned release
// function ends the borrow; calling it more than once is a no-op. Borrowing a resource that is
// already borrowed, or that does not exist, panics.
//
// Returns:
//   - *T: the resource
//   - func(): releases the borrow
func BorrowResource[T any](r *Resources) (*T, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	typ := reflect.TypeFor[T]()
	c := r.mustCell(typ)
	if c.exclusive {
		panic(fmt.Sprintf("resource %s is already mutably borrowed", typ))
	}
	if c.shared > 0 {
		panic(fmt.Sprintf("resource %s is already borrowed", typ))
	}
	c.exclusive = true

	var once sync.Once
	return c.value.(*T), func() {
		once.Do(func() {
			r.mu.Lock()
			c.exclusive = false
			r.mu.Unlock()
		})
	}
}

// BorrowResourceShared takes a shared borrow of the resource of type T. It panics while the
// resource is borrowed exclusively.
//
// Returns:
//   - *T: the resource
//   - func(): releases the borrow
func BorrowResourceShared[T any](r *Resources) (*T, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	typ := reflect.TypeFor[T]()
	c := r.mustCell(typ)
	if c.exclusive {
		panic(fmt.Sprintf("resource %s is already mutably borrowed", typ))
	}
	c.shared++

	var once sync.Once
	return c.value.(*T), func() {
		once.Do(func() {
			r.mu.Lock()
			c.shared--
			r.mu.Unlock()
		})
	}
}

func (r *Resources) mustCell(typ reflect.Type) *resourceCell {
	c, ok := r.cells[typ]
	if !ok {
		panic("required resource not found: " + typ.String())
	}
	return c
}
