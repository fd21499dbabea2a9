//go:build unix

package uthread

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// preemptSignal is the real OS signal driving preemption (spec §4.2,
// §6): SIGVTALRM, delivered only while the process consumes virtual
// (user-mode) CPU time, exactly the "virtual time" semantics §4.2
// requires.
const preemptSignal = syscall.SIGVTALRM

// preemptionTimer owns the virtual-time interval timer and the channel
// fed by os/signal for SIGVTALRM delivery. Grounded in golang.org/x/sys/unix
// usage for signal/timer control, the same package gVisor's systrap
// subprocess uses to manage a pinned OS thread's signal state.
type preemptionTimer struct {
	sigCh chan os.Signal
}

func newPreemptionTimer() *preemptionTimer {
	t := &preemptionTimer{sigCh: make(chan os.Signal, 1)}
	signal.Notify(t.sigCh, preemptSignal)
	return t
}

// arm configures both the initial and periodic interval to quantumUsecs,
// per spec §4.2. Returns a system error (spec §7) on failure.
func (t *preemptionTimer) arm(quantumUsecs int) error {
	sec := int64(quantumUsecs / 1_000_000)
	usec := int64(quantumUsecs % 1_000_000)
	val := unix.Timeval{Sec: sec, Usec: usec}
	it := &unix.Itimerval{Value: val, Interval: val}
	if err := unix.Setitimer(unix.ITIMER_VIRTUAL, it, nil); err != nil {
		return reportSystem("failed setitimer system call: %v", err)
	}
	return nil
}

// disarm stops the timer (used during teardown so a stray SIGVTALRM
// cannot fire against a torn-down scheduler).
func (t *preemptionTimer) disarm() {
	var zero unix.Itimerval
	_ = unix.Setitimer(unix.ITIMER_VIRTUAL, &zero, nil)
}

// stop releases the signal.Notify registration.
func (t *preemptionTimer) stop() {
	signal.Stop(t.sigCh)
}
