package util

import "github.com/kestrelaudio/dspcore/core"

// Add sums two AudioParam sources sample-by-sample into the output buffer,
// overwriting whatever was there. Acts as a two-input mixer when both
// inputs are sources; if you want to add onto the existing signal, drive
// Offset with a Dynamic AudioParam instead.
type Add struct {
	a, b       core.AudioParam
	bufA, bufB []float32
}

// NewAdd creates an Add combining the two given sources.
func NewAdd(a, b core.AudioParam) *Add {
	return &Add{a: a, b: b}
}

// Process writes a+b into buf.
func (p *Add) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(p.bufA) < n {
		p.bufA = make([]float32, n)
	}
	if len(p.bufB) < n {
		p.bufB = make([]float32, n)
	}
	p.a.Sample(p.bufA[:n], sampleIndex)
	p.b.Sample(p.bufB[:n], sampleIndex)
	for i := range buf {
		buf[i] = p.bufA[i] + p.bufB[i]
	}
}

// SetSampleRate forwards to both inputs.
func (p *Add) SetSampleRate(sr float32) {
	p.a.SetSampleRate(sr)
	p.b.SetSampleRate(sr)
}

// Reset forwards to both inputs.
func (p *Add) Reset() {
	p.a.Reset()
	p.b.Reset()
}

// LatencySamples is always 0.
func (p *Add) LatencySamples() uint32 { return 0 }

// Multiply multiplies two AudioParam sources sample-by-sample into the
// output buffer, overwriting whatever was there. Functionally similar to
// Gain with a Dynamic parameter, but reads clearer as ring modulation.
type Multiply struct {
	a, b       core.AudioParam
	bufA, bufB []float32
}

// NewMultiply creates a Multiply combining the two given sources.
func NewMultiply(a, b core.AudioParam) *Multiply {
	return &Multiply{a: a, b: b}
}

// Process writes a*b into buf.
func (p *Multiply) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(p.bufA) < n {
		p.bufA = make([]float32, n)
	}
	if len(p.bufB) < n {
		p.bufB = make([]float32, n)
	}
	p.a.Sample(p.bufA[:n], sampleIndex)
	p.b.Sample(p.bufB[:n], sampleIndex)
	for i := range buf {
		buf[i] = p.bufA[i] * p.bufB[i]
	}
}

// SetSampleRate forwards to both inputs.
func (p *Multiply) SetSampleRate(sr float32) {
	p.a.SetSampleRate(sr)
	p.b.SetSampleRate(sr)
}

// Reset forwards to both inputs.
func (p *Multiply) Reset() {
	p.a.Reset()
	p.b.Reset()
}

// LatencySamples is always 0.
func (p *Multiply) LatencySamples() uint32 { return 0 }
