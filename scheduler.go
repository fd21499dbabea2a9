package uthread

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Scheduler is the single, process-wide scheduler object: the thread
// table, ready queue, id allocator, timer, signal-mask guard,
// current-thread pointer, and total-quanta counter, encapsulated the way
// spec §9's Design Notes recommend ("a clean implementation can
// encapsulate them in a single scheduler object constructed at init and
// destroyed at teardown"). defaultScheduler is the file-scope pointer
// the spec explicitly sanctions given the single-instance contract.
type Scheduler struct {
	cfg   Config
	guard *sigGuard
	timer *preemptionTimer

	table map[int]*tcb
	ids   *idAllocator
	ready *readyQueue

	current     *tcb
	totalQuanta int
	liveCount   int

	preemptPending int32 // set by the handler goroutine, consumed by Checkpoint

	stopCh chan struct{}
	log    zerolog.Logger
}

var defaultScheduler *Scheduler

// Init creates the main thread (id 0, RUNNING), arms the preemption
// timer, and installs the signal-relaying handler goroutine. Must be
// called exactly once, before any other operation (spec §6).
func Init(quantumUsecs int, opts ...Option) error {
	if quantumUsecs <= 0 {
		return reportInput("quantum_usecs must be a positive number")
	}
	cfg := resolveConfig(opts)

	ids := newIDAllocator(cfg.MaxThreads)
	mainID, _ := ids.allocate() // always 0: a fresh allocator's minimum is 0

	main := &tcb{id: mainID, state: Running, quantaRun: 1, started: true}

	s := &Scheduler{
		cfg:         cfg,
		guard:       newSigGuard(),
		timer:       newPreemptionTimer(),
		table:       map[int]*tcb{mainID: main},
		ids:         ids,
		ready:       newReadyQueue(),
		current:     main,
		totalQuanta: 1,
		liveCount:   1,
		stopCh:      make(chan struct{}),
		log:         cfg.logger,
	}

	if err := s.timer.arm(quantumUsecs); err != nil {
		return err
	}

	go s.handlerLoop()
	defaultScheduler = s
	return nil
}

// handlerLoop plays the role of spec §4.2's signal handler. It cannot
// forcibly suspend whatever goroutine happens to be running when
// SIGVTALRM arrives — Go gives user code no portable way to interrupt an
// arbitrary instruction stream — so it only raises a flag. The actual
// state mutation (steps 3–5 of §4.2) happens the next time the running
// thread reaches a cooperative point: an explicit Checkpoint call, or
// any of the other suspension points (Sleep, self-Block, self-Terminate)
// which all funnel through the same dispatch path. This is the one
// necessary Go-native adaptation of the spec's otherwise-literal
// asynchronous preemption (see DESIGN.md).
func (s *Scheduler) handlerLoop() {
	for {
		select {
		case <-s.timer.sigCh:
			atomic.StoreInt32(&s.preemptPending, 1)
			s.log.Debug().Msg("preemption signal observed")
		case <-s.stopCh:
			return
		}
	}
}

// Checkpoint gives the calling thread's code a chance to be preempted.
// Entry functions that do not otherwise call Sleep/Block/Terminate
// should call this periodically — the same role runtime.Gosched() plays
// in the teacher's own top-of-file guidance for cooperative scheduling
// in Go. A Checkpoint call with no pending preemption is a cheap no-op.
func Checkpoint() {
	defaultScheduler.checkpoint()
}

func (s *Scheduler) checkpoint() {
	if !atomic.CompareAndSwapInt32(&s.preemptPending, 1, 0) {
		return
	}
	if err := s.guard.lock(); err != nil {
		s.fatal(err)
		return
	}
	cur := s.current
	if cur.state == Running && !cur.sleeping {
		cur.state = Ready
		s.ready.pushBack(cur)
	}
	s.dispatch(cur, false) // dispatch releases the guard held above
}

// popNextReady implements §4.5 step 1: pop the front of the ready queue,
// skipping any stale entries that should not normally be present.
func (s *Scheduler) popNextReady() *tcb {
	for {
		t := s.ready.popFront()
		if t == nil {
			return nil
		}
		if t.readyAndAwake() {
			return t
		}
	}
}

// dispatch implements §4.5 in full, given that the caller has already
// positioned outgoing's state correctly (Ready+enqueued, Blocked,
// sleeping, or removed from the table entirely for termination).
//
// Precondition: the caller must already hold s.guard (locked) on entry,
// with outgoing's state mutation done under that same lock. dispatch
// always releases the guard before returning — callers must not unlock
// it themselves. This keeps choose-next/mark-running/total_quanta++/
// sleep-accounting/quanta_run++ (§4.5 steps 2-5) inside one critical
// section with whatever outgoing already did to its own state, so no
// other goroutine can observe s.table or s.ready mid-handoff: by the
// time next's goroutine is woken or started, the guard has already been
// released and every shared-state mutation for this dispatch is done.
//
// If the chosen thread differs from outgoing, outgoing's goroutine parks
// (or, if terminating, simply returns and lets its goroutine exit) while
// the chosen thread's goroutine is started or woken. If dispatch chooses
// outgoing itself (nothing else ready, and outgoing is still Running),
// it returns immediately with no context switch at all.
func (s *Scheduler) dispatch(outgoing *tcb, terminating bool) {
	next := s.popNextReady()
	if next == nil {
		if !terminating && outgoing.state == Running {
			next = outgoing
		} else {
			next = s.table[0] // main thread, the last resort (spec §4.5, §9 invariant 6)
		}
	}

	next.state = Running
	s.current = next
	s.totalQuanta++
	s.applySleepAccounting()
	next.quantaRun++

	if !terminating {
		// Record outgoing's goroutine before next can run, so a later
		// dispatch back to outgoing (the main thread included) has a g
		// to wake.
		outgoing.gp = getg()
	}

	s.log.Debug().Int("chosen", next.id).Int("total_quanta", s.totalQuanta).Msg("dispatch")

	sameThread := next == outgoing
	if err := s.guard.unlock(); err != nil {
		s.fatal(err)
		return
	}

	if sameThread {
		return
	}

	if next.started {
		wake(next.gp)
	} else {
		next.started = true
		go s.runSpawned(next)
	}

	if terminating {
		return
	}

	gp := parkSelf()
	outgoing.gp = gp
}

// applySleepAccounting runs sleep bookkeeping over every live TCB. dispatch
// calls it after choosing the next thread and incrementing total_quanta,
// per the ordering of spec §4.4/§9.3: a thread whose sleep expires here
// is enqueued for a later dispatch, never the one that just chose.
func (s *Scheduler) applySleepAccounting() {
	for _, t := range s.table {
		if !t.sleeping {
			continue
		}
		t.sleepRemaining--
		if t.sleepRemaining == 0 {
			t.sleeping = false
			if t.state == Ready {
				s.ready.pushBack(t)
			}
		}
	}
}

// runSpawned is the goroutine body for a freshly dispatched spawned
// thread's first run. If the entry function returns normally (the spec
// leaves this case to undefined C behavior), the thread self-terminates
// rather than leaking a live TCB.
func (s *Scheduler) runSpawned(t *tcb) {
	t.gp = getg()
	t.entry()
	s.terminateSelf(t)
}

// fatal reports a system error and tears the process down, per §7/§4.7.
func (s *Scheduler) fatal(err error) {
	s.log.Error().Err(err).Msg("unrecoverable system error, tearing down")
	s.teardown(1)
}

// teardown releases every live TCB, stops the timer and handler
// goroutine, and exits the process (spec §4.7).
func (s *Scheduler) teardown(exitCode int) {
	s.timer.disarm()
	s.timer.stop()
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.table = make(map[int]*tcb)
	os.Exit(exitCode)
}

// BlockedIDs returns the ids currently in the Blocked state, a derived
// read-only view (spec §9 Open Question 1 resolution: no separate
// mirrored set is maintained — this is computed on demand).
func (s *Scheduler) BlockedIDs() []int {
	var ids []int
	for id, t := range s.table {
		if t.state == Blocked {
			ids = append(ids, id)
		}
	}
	return ids
}

// LiveCount returns the number of currently live TCBs (spec §3 invariant 5).
func (s *Scheduler) LiveCount() int { return s.liveCount }

// State returns the state of a live thread, and false if tid is not live.
func (s *Scheduler) State(tid int) (State, bool) {
	t, ok := s.table[tid]
	if !ok {
		return 0, false
	}
	return t.state, true
}

// IsSleeping reports whether tid is currently in a timed sleep.
func (s *Scheduler) IsSleeping(tid int) (bool, bool) {
	t, ok := s.table[tid]
	if !ok {
		return false, false
	}
	return t.sleeping, true
}
