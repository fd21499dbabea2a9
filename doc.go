// Package uthread implements a user-level cooperative/preemptive thread
// library on a single OS thread.
//
// It gives application code many independent threads of control, each
// with its own goroutine standing in for a stack and program counter,
// multiplexed by a virtual-time round-robin scheduler. At most one
// thread is meant to be progressing application logic at a time, the
// rest parked, the same way a classic setjmp/longjmp uthread library
// would arrange it, except the "context" being saved and restored is a
// parked goroutine rather than a raw stack pointer and program counter.
//
// A real ITIMER_VIRTUAL interval timer delivers a real SIGVTALRM to
// signal that a thread's quantum has expired, but Go gives no portable
// way to forcibly suspend an arbitrary goroutine's instruction stream
// from outside it. So the signal only raises a flag; the actual demote-
// enqueue-dispatch sequence runs later, cooperatively, the next time the
// running thread calls Checkpoint, Sleep, a self-Block, or a
// self-Terminate. A thread that never calls back into the library is
// never preempted by this implementation and keeps running — including
// after another thread has called Block on it — until it does. Callers
// that want real preemption must call Checkpoint periodically in any
// compute loop that doesn't otherwise call into the library.
//
// The library does not provide inter-thread synchronization beyond
// block/resume/sleep, does not schedule across multiple CPUs, and does
// not adjust quantum length, priority, or fairness beyond strict FIFO
// round-robin. See Config for the two knobs named as compile-time
// constants in the original C-style API: MaxThreads (live, enforced)
// and StackSize (retained for interface fidelity only; Go goroutine
// stacks are runtime-managed and this value is never read).
package uthread
