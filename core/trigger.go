package core

import "sync/atomic"

// Trigger is a wait-free one-shot: the control side calls Fire, the audio
// side consumes it with TestAndClear on the next sample or block. Used by
// envelopes for manual retrigger.
type Trigger struct {
	flag atomic.Bool
}

// NewTrigger returns an unset Trigger.
func NewTrigger() *Trigger {
	return &Trigger{}
}

// Fire sets the trigger. Safe to call from any thread.
func (t *Trigger) Fire() {
	t.flag.Store(true)
}

// TestAndClear reports whether the trigger was set, clearing it atomically.
// Intended to be called once per sample from the audio side.
func (t *Trigger) TestAndClear() bool {
	return t.flag.CompareAndSwap(true, false)
}
