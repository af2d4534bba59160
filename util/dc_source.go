package util

import "github.com/kestrelaudio/dspcore/core"

// DcSource generates a constant (or AudioParam-driven) DC signal. Useful as
// a control signal or a test fixture.
type DcSource struct {
	value   core.AudioParam
	scratch []float32
}

// NewDcSource creates a DcSource.
func NewDcSource(value core.AudioParam) *DcSource {
	return &DcSource{value: value}
}

// Process writes the current value into every sample of buf.
func (d *DcSource) Process(buf []float32, sampleIndex uint64) {
	if len(d.scratch) < len(buf) {
		d.scratch = make([]float32, len(buf))
	}
	d.value.Sample(d.scratch[:len(buf)], sampleIndex)
	copy(buf, d.scratch[:len(buf)])
}

// SetSampleRate forwards to the value AudioParam.
func (d *DcSource) SetSampleRate(sr float32) { d.value.SetSampleRate(sr) }

// Reset forwards to the value AudioParam.
func (d *DcSource) Reset() { d.value.Reset() }

// LatencySamples is always 0.
func (d *DcSource) LatencySamples() uint32 { return 0 }
