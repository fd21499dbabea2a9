// Command blockresume demonstrates spec §8 scenario S3: thread A spins
// incrementing a counter; thread B blocks A, spins for a while with A
// frozen, then resumes A and spins again.
package main

import (
	"fmt"
	"os"

	"github.com/alphadose/uthread"
)

func main() {
	if err := uthread.Init(50_000); err != nil {
		fmt.Fprintln(os.Stderr, "init failed:", err)
		os.Exit(1)
	}

	var a int
	aID, err := uthread.Spawn(func() {
		for {
			a++
			uthread.Checkpoint()
		}
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "spawn A failed:", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	_, err = uthread.Spawn(func() {
		defer close(done)
		spin := func(quanta int) {
			target := uthread.GetTotalQuantums() + quanta
			for uthread.GetTotalQuantums() < target {
				uthread.Checkpoint()
			}
		}

		spin(5)
		before := a
		if err := uthread.Block(aID); err != nil {
			fmt.Fprintln(os.Stderr, "block A failed:", err)
			return
		}
		spin(5)
		frozen := a == before
		if err := uthread.Resume(aID); err != nil {
			fmt.Fprintln(os.Stderr, "resume A failed:", err)
			return
		}
		spin(5)
		grew := a > before

		fmt.Printf("A frozen while blocked: %v, A grew after resume: %v\n", frozen, grew)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "spawn B failed:", err)
		os.Exit(1)
	}

	for {
		uthread.Checkpoint()
		select {
		case <-done:
			_ = uthread.Terminate(0)
			return
		default:
		}
	}
}
