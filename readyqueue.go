package uthread

import "container/list"

// readyQueue is a strict FIFO of ready, awake TCBs (spec §3 invariant 2,
// §5 "ordering guarantees"). It is a plain container/list, not a
// lock-free structure: every mutation happens inside the signal-mask
// guard, which already serializes the handler against every API caller,
// so there is exactly one owner at a time and nothing to race.
type readyQueue struct {
	l *list.List
}

func newReadyQueue() *readyQueue {
	return &readyQueue{l: list.New()}
}

// pushBack enqueues t at the tail, the position a yielding or newly
// spawned thread takes (spec §4.4, §5).
func (q *readyQueue) pushBack(t *tcb) {
	q.l.PushBack(t)
}

// popFront dequeues and returns the head of the queue, or nil if empty.
func (q *readyQueue) popFront() *tcb {
	e := q.l.Front()
	if e == nil {
		return nil
	}
	q.l.Remove(e)
	return e.Value.(*tcb)
}

// remove deletes every occurrence of t from the queue, used when a
// thread transitions to Blocked or is terminated while still enqueued.
func (q *readyQueue) remove(t *tcb) {
	for e := q.l.Front(); e != nil; {
		next := e.Next()
		if e.Value.(*tcb) == t {
			q.l.Remove(e)
		}
		e = next
	}
}

func (q *readyQueue) len() int {
	return q.l.Len()
}
