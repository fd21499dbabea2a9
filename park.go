package uthread

import (
	"unsafe"
)

// This file realizes the spec's context primitive (§4.1): a way to save
// the currently executing thread's control flow and later resume it
// exactly where it left off, with the resuming call never "returning" in
// the ordinary sense. The teacher (alphadose/zenq) solves an adjacent
// problem — parking and waking goroutines without going through the
// normal channel/mutex scheduling path — by linking directly into the
// runtime's own goroutine-parking primitives. We reuse that technique
// here for the same reason it earns its keep in zenq: gopark/goready is
// the cheapest way in Go to suspend and resume a specific goroutine
// without an intermediate channel send/receive pair waking the Go
// scheduler twice.
//
// Unlike zenq's thread_parker.go, which queues arbitrarily many parked
// goroutines behind a lock-free list (because many producers/consumers
// contend on a ring buffer slot concurrently), this scheduler only ever
// has the signal-mask guard granting one goroutine at a time the right
// to park or wake another — there is never a thundering herd to avoid,
// so the extra spinning/backoff machinery in zenq's Park/Ready is
// dropped entirely.

// getg returns the current goroutine's runtime.g, the same way zenq's
// GetG() does.
//
//go:linkname getg runtime.getg
func getg() unsafe.Pointer

//go:linkname goparkRuntime runtime.gopark
func goparkRuntime(unlockf func(unsafe.Pointer, unsafe.Pointer) bool, lock unsafe.Pointer, reason uint8, traceEv byte, traceskip int)

//go:linkname goreadyRuntime runtime.goready
func goreadyRuntime(gp unsafe.Pointer, traceskip int)

// waitReasonPreempted mirrors the runtime's own internal enum entry for
// "this goroutine stopped itself for scheduling reasons" closely enough
// for trace/debug purposes; its numeric value is never inspected by our
// own code, only threaded through to the runtime.
const waitReasonPreempted uint8 = 9

// traceEvGoBlock mirrors the runtime's trace event byte for a goroutine
// blocking; kept only because goparkRuntime's signature requires one.
const traceEvGoBlock = 20

// parkSelf suspends the calling goroutine until a matching call to
// wake(gp) targets it. It returns getg(), the value the TCB stores as
// its saved context for all future wakeups. Call this only from within
// the thread's own goroutine.
func parkSelf() unsafe.Pointer {
	gp := getg()
	goparkRuntime(nil, nil, waitReasonPreempted, traceEvGoBlock, 0)
	return gp
}

// wake resumes the goroutine previously suspended via parkSelf, whose
// identity was captured in gp. It is the "restore_context" half of the
// primitive: control logically transfers to gp's resumption point, and
// the caller of wake should treat this call as not returning control to
// the dispatcher in any useful sense (the woken goroutine now races the
// caller's own continuation, so the caller must not touch scheduler
// state afterward without the signal-mask guard held).
func wake(gp unsafe.Pointer) {
	goreadyRuntime(gp, 0)
}
