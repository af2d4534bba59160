// Package core implements the processor contract, parameter/modulation
// engine, and graph composition primitives shared by every DSP node:
// Parameter, AudioParam, the Processor interface, channel adapters,
// the dynamic and static chains, the dry/wet and summing mixers, and the
// overlap-add spectral framer.
package core

import "sync/atomic"

// Parameter is a lock-free scalar shared between a control thread and the
// audio thread. Get and Set are relaxed loads/stores of an f32 bit pattern;
// there is no cross-field atomicity, matching the audio-path concurrency
// contract. A Parameter is cheap to copy by pointer and shared freely
// between a graph's nodes and the code that drives it.
type Parameter struct {
	bits atomic.Uint32
}

// NewParameter creates a Parameter holding the given initial value.
func NewParameter(value float32) *Parameter {
	p := &Parameter{}
	p.Set(value)
	return p
}

// Get performs a relaxed atomic load and returns the current value.
func (p *Parameter) Get() float32 {
	return float32FromBits(p.bits.Load())
}

// Set performs a relaxed atomic store of the new value.
func (p *Parameter) Set(v float32) {
	p.bits.Store(float32Bits(v))
}
