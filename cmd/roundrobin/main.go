// Command roundrobin demonstrates fair round-robin scheduling across
// three user threads (spec §8 scenario S1): each increments its own
// counter, calls Checkpoint once to give the timer a chance to preempt
// it, then sleeps for one quantum, twenty times over. After enough quanta, the
// three counters stay within one increment of each other.
package main

import (
	"fmt"
	"os"

	"github.com/alphadose/uthread"
)

func counterThread(name string, counter *int) func() {
	return func() {
		for i := 0; i < 20; i++ {
			*counter++
			uthread.Checkpoint()
			if err := uthread.Sleep(1); err != nil {
				fmt.Fprintf(os.Stderr, "%s: sleep failed: %v\n", name, err)
				return
			}
		}
	}
}

func main() {
	if err := uthread.Init(100_000); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}

	var a, b, c int
	for _, spec := range []struct {
		name string
		fn   func()
	}{
		{"A", counterThread("A", &a)},
		{"B", counterThread("B", &b)},
		{"C", counterThread("C", &c)},
	} {
		if _, err := uthread.Spawn(spec.fn); err != nil {
			fmt.Fprintln(os.Stderr, "spawn failed:", err)
			os.Exit(1)
		}
	}

	for uthread.GetTotalQuantums() < 80 {
		uthread.Checkpoint()
	}

	fmt.Printf("counters after %d quanta: a=%d b=%d c=%d\n", uthread.GetTotalQuantums(), a, b, c)
	_ = uthread.Terminate(0)
}
