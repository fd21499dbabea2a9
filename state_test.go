package uthread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "READY", Ready.String())
	assert.Equal(t, "RUNNING", Running.String())
	assert.Equal(t, "BLOCKED", Blocked.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
}

func TestTCB_ReadyAndAwake(t *testing.T) {
	t1 := &tcb{state: Ready}
	assert.True(t, t1.readyAndAwake())

	t1.sleeping = true
	assert.False(t, t1.readyAndAwake())

	t1.sleeping = false
	t1.state = Blocked
	assert.False(t, t1.readyAndAwake())

	t1.state = Running
	assert.False(t, t1.readyAndAwake())
}
