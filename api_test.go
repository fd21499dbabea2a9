package uthread

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForQuanta busy-waits, calling Checkpoint so the caller can itself be
// preempted, until either the global quantum counter reaches target or
// deadline elapses.
func waitForQuanta(t *testing.T, target int, deadline time.Duration) {
	t.Helper()
	start := time.Now()
	for GetTotalQuantums() < target {
		Checkpoint()
		if time.Since(start) > deadline {
			t.Fatalf("timed out waiting for %d total quanta (reached %d)", target, GetTotalQuantums())
		}
	}
}

func TestSpawnCheckpoint_RoundRobinFairness(t *testing.T) {
	require.NoError(t, Init(10_000))

	var a, b, c int
	counter := func(p *int) func() {
		return func() {
			for i := 0; i < 30; i++ {
				*p++
				Checkpoint()
			}
		}
	}
	_, err := Spawn(counter(&a))
	require.NoError(t, err)
	_, err = Spawn(counter(&b))
	require.NoError(t, err)
	_, err = Spawn(counter(&c))
	require.NoError(t, err)

	waitForQuanta(t, GetTotalQuantums()+90, 5*time.Second)

	assert.Equal(t, 30, a)
	assert.Equal(t, 30, b)
	assert.Equal(t, 30, c)
}

func TestBlock_FreezesTargetUntilResumed(t *testing.T) {
	require.NoError(t, Init(10_000))

	var a int
	aID, err := Spawn(func() {
		for {
			a++
			Checkpoint()
		}
	})
	require.NoError(t, err)

	done := make(chan struct{})
	_, err = Spawn(func() {
		defer close(done)

		spinQuanta := func(n int) {
			target := GetTotalQuantums() + n
			for GetTotalQuantums() < target {
				Checkpoint()
			}
		}

		spinQuanta(5)
		require.NoError(t, Block(aID))
		before := a
		spinQuanta(5)
		assert.Equal(t, before, a, "A must not progress while blocked")

		require.NoError(t, Resume(aID))
		spinQuanta(5)
		assert.Greater(t, a, before, "A must resume progressing once unblocked")
	})
	require.NoError(t, err)

	// The main thread must itself reach Checkpoint for A and B to be
	// dispatched at all.
	deadline := time.After(5 * time.Second)
	for {
		Checkpoint()
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("block/resume scenario did not complete in time")
		default:
		}
	}
}

func TestSpawn_RejectsNilEntry(t *testing.T) {
	require.NoError(t, Init(10_000))
	_, err := Spawn(nil)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestSpawn_RejectsAtCapacity(t *testing.T) {
	require.NoError(t, Init(10_000, WithMaxThreads(1)))
	// capacity 1 is consumed entirely by the main thread (id 0).
	_, err := Spawn(func() {})
	assert.True(t, errors.Is(err, ErrInput))
}

func TestSleep_RejectsNonPositiveQuanta(t *testing.T) {
	require.NoError(t, Init(10_000))
	err := Sleep(0)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestSleep_RejectsMainThread(t *testing.T) {
	require.NoError(t, Init(10_000))
	err := Sleep(3)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestBlock_RejectsMainThread(t *testing.T) {
	require.NoError(t, Init(10_000))
	err := Block(0)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestBlock_UnknownID(t *testing.T) {
	require.NoError(t, Init(10_000))
	err := Block(42)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestResume_UnknownIDIsInputError(t *testing.T) {
	require.NoError(t, Init(10_000))
	err := Resume(42)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestResume_NotBlockedIsSilentSuccess(t *testing.T) {
	require.NoError(t, Init(10_000))
	id, err := Spawn(func() {
		for {
			Checkpoint()
		}
	})
	require.NoError(t, err)

	// id is READY, not BLOCKED: resume must succeed without complaint.
	assert.NoError(t, Resume(id))
}

func TestGetQuantums_UnknownID(t *testing.T) {
	require.NoError(t, Init(10_000))
	_, err := GetQuantums(42)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestTerminate_UnknownID(t *testing.T) {
	require.NoError(t, Init(10_000))
	err := Terminate(42)
	assert.True(t, errors.Is(err, ErrInput))
}
