package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ N int }

func TestResourceInsertGetRemove(t *testing.T) {
	r := NewResources()
	_, ok := GetResource[counter](r)
	assert.False(t, ok)
	assert.Panics(t, func() { MustGetResource[counter](r) })

	InsertResource(r, &counter{N: 1})
	assert.True(t, HasResource[counter](r))
	MustGetResource[counter](r).N++
	assert.Equal(t, 2, MustGetResource[counter](r).N)

	c, ok := RemoveResource[counter](r)
	require.True(t, ok)
	assert.Equal(t, 2, c.N)
	assert.False(t, HasResource[counter](r))
}

func TestExclusiveBorrowRejectsOtherBorrows(t *testing.T) {
	r := NewResources()
	InsertResource(r, &counter{})

	c, release := BorrowResource[counter](r)
	c.N = 5
	assert.Panics(t, func() { BorrowResource[counter](r) })
	assert.Panics(t, func() { BorrowResourceShared[counter](r) })
	assert.Panics(t, func() { GetResource[counter](r) })
	release()
	release()

	got, releaseShared := BorrowResourceShared[counter](r)
	assert.Equal(t, 5, got.N)
	releaseShared()
}

func TestSharedBorrowsCoexist(t *testing.T) {
	r := NewResources()
	InsertResource(r, &counter{})

	_, r1 := BorrowResourceShared[counter](r)
	_, r2 := BorrowResourceShared[counter](r)
	assert.Panics(t, func() { BorrowResource[counter](r) })
	assert.Panics(t, func() { RemoveResource[counter](r) })
	r1()
	r2()

	_, release := BorrowResource[counter](r)
	release()
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := NewResources(), NewResources()
	InsertResource(a, &counter{N: 1})
	assert.False(t, HasResource[counter](b))
}
