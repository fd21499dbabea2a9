package uthread

import "runtime"

// Spawn allocates the smallest free id, prepares a goroutine to start at
// entry, marks it READY, and enqueues it. Returns the new id, or an
// error wrapping ErrInput if entry is nil or the scheduler is at
// capacity (spec §6).
func Spawn(entry func()) (int, error) {
	return defaultScheduler.spawn(entry)
}

func (s *Scheduler) spawn(entry func()) (int, error) {
	if entry == nil {
		return -1, reportInput("entry point is NULL")
	}
	if s.liveCount >= s.cfg.MaxThreads {
		return -1, reportInput("maximum number of threads reached")
	}

	if err := s.guard.lock(); err != nil {
		return -1, err
	}
	id, ok := s.ids.allocate()
	if !ok {
		_ = s.guard.unlock()
		return -1, reportInput("maximum number of threads reached")
	}
	t := &tcb{id: id, state: Ready, entry: entry}
	s.table[id] = t
	s.ready.pushBack(t)
	s.liveCount++
	if err := s.guard.unlock(); err != nil {
		return -1, err
	}
	return id, nil
}

// Terminate removes tid from the table, freeing its id. tid==0 tears
// down the whole process and exits 0, regardless of caller. tid==self
// frees resources and hands control to the next ready thread; the call
// never returns to its caller (spec §6).
func Terminate(tid int) error {
	return defaultScheduler.terminate(tid)
}

func (s *Scheduler) terminate(tid int) error {
	if err := s.guard.lock(); err != nil {
		return err
	}
	t, ok := s.table[tid]
	if !ok {
		_ = s.guard.unlock()
		return reportInput("thread ID does not exist")
	}

	if tid == 0 {
		// teardown exits the process; it never returns.
		s.teardown(0)
		return nil
	}

	self := t == s.current
	s.removeFromTable(t)
	if !self {
		return s.guard.unlock()
	}

	// dispatch takes ownership of the guard held above and releases it
	// before this goroutine's final runtime.Goexit, so the whole
	// remove-then-hand-off sequence runs under one critical section
	// (spec §4.3/§4.5): nothing else can observe s.table or s.ready
	// mid-handoff.
	s.dispatch(t, true)
	runtime.Goexit() // the spec requires this call not return to its caller
	return nil
}

// terminateSelf is called by runSpawned when an entry function returns
// without having called Terminate explicitly, so a forgotten self-
// terminate can't leak a live TCB.
func (s *Scheduler) terminateSelf(t *tcb) {
	if err := s.guard.lock(); err != nil {
		s.fatal(err)
		return
	}
	s.removeFromTable(t)
	s.dispatch(t, true) // dispatch releases the guard
}

// removeFromTable releases the table entry, id, live-count slot, and
// ready-queue membership for t. Caller must hold the guard.
func (s *Scheduler) removeFromTable(t *tcb) {
	s.ready.remove(t)
	delete(s.table, t.id)
	s.ids.release(t.id)
	s.liveCount--
}

// Block moves tid to BLOCKED, removing it from the ready queue. Blocking
// an already-blocked thread is a no-op success. Blocking self triggers
// immediate dispatch (spec §6).
func Block(tid int) error {
	return defaultScheduler.block(tid)
}

func (s *Scheduler) block(tid int) error {
	if err := s.guard.lock(); err != nil {
		return err
	}
	t, ok := s.table[tid]
	if !ok {
		_ = s.guard.unlock()
		return reportInput("thread ID does not exist")
	}
	if tid == 0 {
		_ = s.guard.unlock()
		return reportInput("trying to block the main thread")
	}

	self := t == s.current
	if t.state != Blocked {
		t.state = Blocked
		s.ready.remove(t)
	}

	if self {
		// dispatch releases the guard held above; the state mutation
		// and the hand-off to the next thread happen as one critical
		// section, so nothing can observe t marked BLOCKED but still
		// scheduled.
		s.dispatch(t, false)
		return nil
	}
	return s.guard.unlock()
}

// Resume moves tid from BLOCKED to READY, enqueuing it unless it is
// sleeping. A no-op success if tid is not blocked (spec §9 Open
// Question 2: silent success, matching the original's public boundary).
func Resume(tid int) error {
	return defaultScheduler.resume(tid)
}

func (s *Scheduler) resume(tid int) error {
	if err := s.guard.lock(); err != nil {
		return err
	}
	t, ok := s.table[tid]
	if !ok {
		_ = s.guard.unlock()
		return reportInput("thread ID does not exist")
	}
	if t.state == Blocked {
		t.state = Ready
		if !t.sleeping {
			s.ready.pushBack(t)
		}
	}
	return s.guard.unlock()
}

// Sleep puts the calling thread to sleep for n quanta. n must be at
// least 1 and the caller must not be the main thread (spec §6).
func Sleep(n int) error {
	return defaultScheduler.sleep(n)
}

func (s *Scheduler) sleep(n int) error {
	if err := s.guard.lock(); err != nil {
		return err
	}
	if n <= 0 {
		_ = s.guard.unlock()
		return reportInput("quantum count must be a positive number")
	}
	cur := s.current
	if cur.id == 0 {
		_ = s.guard.unlock()
		return reportInput("main thread can't sleep")
	}
	cur.sleeping = true
	cur.sleepRemaining = n
	cur.state = Ready
	s.dispatch(cur, false) // dispatch releases the guard held above
	return nil
}

// GetTid returns the id of the currently running thread.
func GetTid() int {
	return defaultScheduler.current.id
}

// GetTotalQuantums returns the global dispatch-tick counter.
func GetTotalQuantums() int {
	return defaultScheduler.totalQuanta
}

// GetQuantums returns the number of quanta during which tid has been
// RUNNING. Returns an error wrapping ErrInput if tid is not live.
func GetQuantums(tid int) (int, error) {
	t, ok := defaultScheduler.table[tid]
	if !ok {
		return -1, reportInput("thread ID does not exist")
	}
	return t.quantaRun, nil
}
