// Package util provides small single-purpose utility nodes: gain, offset,
// arithmetic combinators, range mapping, stereo imaging, and timed gates.
package util

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// Gain multiplies every channel of each frame by a per-frame gain value.
type Gain struct {
	gain    core.AudioParam
	gainBuf []float32
}

// NewGain creates a Gain driven by an arbitrary AudioParam.
func NewGain(gain core.AudioParam) *Gain {
	return &Gain{gain: gain}
}

// NewFixedGain creates a Gain with a constant linear factor.
func NewFixedGain(gain float32) *Gain {
	return &Gain{gain: core.StaticParam(gain)}
}

// NewGainDB creates a Gain with a constant level given in decibels.
func NewGainDB(db float32) *Gain {
	return &Gain{gain: core.StaticParam(float32(math.Pow(10, float64(db)/20.0)))}
}

// Process multiplies buf (interleaved, `channels` channels per frame) by
// the per-frame gain.
func (g *Gain) Process(buf []float32, channels int, sampleIndex uint64) {
	frames := len(buf) / channels
	if len(g.gainBuf) < frames {
		g.gainBuf = make([]float32, frames)
	}
	gainSlice := g.gainBuf[:frames]
	g.gain.Sample(gainSlice, sampleIndex)

	for i := range buf {
		buf[i] *= gainSlice[i/channels]
	}
}

// SetSampleRate forwards to the gain AudioParam.
func (g *Gain) SetSampleRate(sr float32) { g.gain.SetSampleRate(sr) }

// Reset forwards to the gain AudioParam.
func (g *Gain) Reset() { g.gain.Reset() }

// LatencySamples is always 0.
func (g *Gain) LatencySamples() uint32 { return 0 }

// MonoGain adapts Gain to core.Processor for mono (1 channel/frame) use.
type MonoGain struct{ *Gain }

// NewMonoGain wraps a Gain for mono signals.
func NewMonoGain(gain core.AudioParam) MonoGain { return MonoGain{NewGain(gain)} }

func (g MonoGain) Process(buf []float32, sampleIndex uint64) { g.Gain.Process(buf, 1, sampleIndex) }

// StereoGain adapts Gain to core.Processor for interleaved stereo use.
type StereoGain struct{ *Gain }

// NewStereoGain wraps a Gain for interleaved stereo signals.
func NewStereoGain(gain core.AudioParam) StereoGain { return StereoGain{NewGain(gain)} }

func (g StereoGain) Process(buf []float32, sampleIndex uint64) { g.Gain.Process(buf, 2, sampleIndex) }
