package uthread

import (
	"errors"
	"fmt"
	"os"
)

// ErrInput marks a caller-contract violation (spec §7): invalid
// argument, unknown id, capacity exceeded, forbidden operation on the
// main thread. The operation returns an error wrapping ErrInput (Spawn
// and GetQuantums also return -1) and no state changes.
var ErrInput = errors.New("invalid input")

// ErrSystem marks a host-facility failure (spec §7): signal masking,
// signal-handler install, or timer arm failed. A failure inside
// Checkpoint, dispatch, or a spawned thread's implicit self-termination
// tears the process down and exits 1; Init, Spawn, Terminate, Block,
// Resume and Sleep return the error to their caller without tearing down.
var ErrSystem = errors.New("system call failed")

const (
	inputErrorPrefix  = "thread library error: "
	systemErrorPrefix = "system error: "
)

// reportInput writes the mandated input-error diagnostic line and
// returns an error wrapping ErrInput, suitable for the Go-native API.
func reportInput(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, inputErrorPrefix+msg)
	return fmt.Errorf("%s: %w", msg, ErrInput)
}

// reportSystem writes the mandated system-error diagnostic line and
// returns an error wrapping ErrSystem. It does not tear down or exit
// itself; only Scheduler.fatal does (see ErrSystem).
func reportSystem(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, systemErrorPrefix+msg)
	return fmt.Errorf("%s: %w", msg, ErrSystem)
}
