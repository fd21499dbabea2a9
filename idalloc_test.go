package uthread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDAllocator_AllocatesSmallestFree(t *testing.T) {
	a := newIDAllocator(4)

	for want := 0; want < 4; want++ {
		id, ok := a.allocate()
		assert.True(t, ok)
		assert.Equal(t, want, id)
	}

	_, ok := a.allocate()
	assert.False(t, ok, "allocator at capacity should refuse further allocations")
}

func TestIDAllocator_ReleaseMakesIDAvailableAgain(t *testing.T) {
	a := newIDAllocator(3)

	id0, _ := a.allocate()
	id1, _ := a.allocate()
	_, _ = a.allocate()

	a.release(id1)
	a.release(id0)

	// smallest-free ordering must hold after release, not just at init.
	next, ok := a.allocate()
	assert.True(t, ok)
	assert.Equal(t, id0, next)
}

func TestIDAllocator_ZeroCapacity(t *testing.T) {
	a := newIDAllocator(0)
	_, ok := a.allocate()
	assert.False(t, ok)
}
