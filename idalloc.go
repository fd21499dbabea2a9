package uthread

import "container/heap"

// idAllocator hands out the smallest currently-unused id in [0, max),
// the "monotonic-smallest-free allocator" of spec §3. It is backed by a
// container/heap min-heap of free ids rather than a scan or a sorted
// set, the way other_examples' barn scheduler keeps its own task queue
// ordered with container/heap instead of hand-rolled comparisons.
type idAllocator struct {
	free freeIDHeap
	max  int
}

// newIDAllocator returns an allocator with every id in [0, max) free.
func newIDAllocator(max int) *idAllocator {
	a := &idAllocator{max: max}
	a.free = make(freeIDHeap, max)
	for i := 0; i < max; i++ {
		a.free[i] = i
	}
	heap.Init(&a.free)
	return a
}

// allocate removes and returns the smallest free id, or (-1, false) if
// none remain.
func (a *idAllocator) allocate() (int, bool) {
	if a.free.Len() == 0 {
		return -1, false
	}
	id := heap.Pop(&a.free).(int)
	return id, true
}

// release returns id to the free set. Releasing an id that is already
// free is a caller bug; it is not guarded against here because the
// scheduler never does it (every release is paired 1:1 with a prior
// allocate for a still-live TCB).
func (a *idAllocator) release(id int) {
	heap.Push(&a.free, id)
}

// freeIDHeap is a min-heap of ints implementing container/heap.Interface.
type freeIDHeap []int

func (h freeIDHeap) Len() int            { return len(h) }
func (h freeIDHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h freeIDHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *freeIDHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *freeIDHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
