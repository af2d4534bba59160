package util

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// StereoPanner pans an interleaved stereo signal between left and right
// using a constant-power law.
type StereoPanner struct {
	pan    core.AudioParam
	panBuf []float32
}

// NewStereoPanner creates a StereoPanner. pan ranges -1 (left) to 1 (right).
func NewStereoPanner(pan core.AudioParam) *StereoPanner {
	return &StereoPanner{pan: pan}
}

// SetPan replaces the pan AudioParam.
func (p *StereoPanner) SetPan(pan core.AudioParam) { p.pan = pan }

// Process pans buf (interleaved L,R,L,R,...) in place.
func (p *StereoPanner) Process(buf []float32, sampleIndex uint64) {
	frames := len(buf) / 2
	if len(p.panBuf) < frames {
		p.panBuf = make([]float32, frames)
	}
	panSlice := p.panBuf[:frames]
	p.pan.Sample(panSlice, sampleIndex)

	for i := 0; i < frames; i++ {
		pan := panSlice[i]
		if pan < -1 {
			pan = -1
		} else if pan > 1 {
			pan = 1
		}
		angle := float64(pan+1) * math.Pi / 4.0
		gainL := float32(math.Cos(angle))
		gainR := float32(math.Sin(angle))

		buf[2*i] *= gainL
		buf[2*i+1] *= gainR
	}
}

// SetSampleRate forwards to the pan AudioParam.
func (p *StereoPanner) SetSampleRate(sr float32) { p.pan.SetSampleRate(sr) }

// Reset forwards to the pan AudioParam.
func (p *StereoPanner) Reset() { p.pan.Reset() }

// LatencySamples is always 0.
func (p *StereoPanner) LatencySamples() uint32 { return 0 }
