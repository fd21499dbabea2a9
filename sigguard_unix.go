//go:build unix

package uthread

import (
	"runtime"
	"sync"

	"golang.org/x/sys/unix"
)

// sigGuard realizes spec §4.3: every API operation and every non-
// handler scheduler step blocks the preemption signal on entry and
// unblocks it on exit, giving mutual exclusion between API callers and
// the handler.
//
// Go's runtime already funnels all signal delivery through one internal
// goroutine before anything reaches an os/signal channel, so blocking
// SIGVTALRM at the OS level is necessary-but-not-sufficient on its own
// to keep the handler goroutine from interleaving with an API caller;
// the in-process mutex below is what actually provides the exclusion
// guarantee. The OS-level pthread_sigmask call is kept anyway because it
// is the literal mechanism spec §4.3 names, it is real and meaningful
// (it keeps the OS from even queuing a SIGVTALRM against this thread
// while a critical section that must not be interrupted is in flight),
// and it mirrors gVisor systrap's use of the same primitive to keep a
// pinned OS thread's signal disposition authoritative.
type sigGuard struct {
	mu   sync.Mutex
	mask unix.Sigset_t
	once sync.Once
}

func newSigGuard() *sigGuard {
	g := &sigGuard{}
	g.once.Do(func() {
		runtime.LockOSThread()
		_ = unix.SigaddSet(&g.mask, int(preemptSignal))
	})
	return g
}

// lock blocks SIGVTALRM at the OS level and takes the in-process mutex.
// Returns a system error (spec §7) if the OS call fails.
func (g *sigGuard) lock() error {
	g.mu.Lock()
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &g.mask, nil); err != nil {
		g.mu.Unlock()
		return reportSystem("failed to block SIGVTALRM: %v", err)
	}
	return nil
}

// unlock unblocks SIGVTALRM and releases the in-process mutex.
func (g *sigGuard) unlock() error {
	defer g.mu.Unlock()
	if err := unix.PthreadSigmask(unix.SIG_UNBLOCK, &g.mask, nil); err != nil {
		return reportSystem("failed to unblock SIGVTALRM: %v", err)
	}
	return nil
}
