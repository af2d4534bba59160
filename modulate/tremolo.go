package modulate

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// Tremolo modulates the signal's amplitude with a sine LFO.
type Tremolo struct {
	phase, inc  float32
	depth, rate core.AudioParam
	sampleRate  float32

	depthBuf, rateBuf []float32
}

// NewTremolo creates a Tremolo. rate is the LFO rate in Hz, depth the
// modulation depth in [0, 1].
func NewTremolo(rate, depth core.AudioParam) *Tremolo {
	return &Tremolo{
		depth:      depth,
		rate:       rate,
		sampleRate: 44100.0,
	}
}

// SetDepth replaces the depth AudioParam.
func (t *Tremolo) SetDepth(depth core.AudioParam) { t.depth = depth }

// SetRate replaces the rate AudioParam.
func (t *Tremolo) SetRate(rate core.AudioParam) { t.rate = rate }

// Process multiplies buf by a sine-LFO-driven gain in [1-depth, 1].
func (t *Tremolo) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(t.depthBuf) < n {
		t.depthBuf = make([]float32, n)
	}
	if len(t.rateBuf) < n {
		t.rateBuf = make([]float32, n)
	}

	t.depth.Sample(t.depthBuf[:n], sampleIndex)
	t.rate.Sample(t.rateBuf[:n], sampleIndex)

	for i := range buf {
		depth := t.depthBuf[i]
		rate := t.rateBuf[i]

		t.inc = 2 * math.Pi * rate / t.sampleRate

		currentPhase := t.phase

		t.phase += t.inc
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}

		lfo := (float32(math.Sin(float64(currentPhase))) + 1) * 0.5
		gain := 1 - depth*lfo

		buf[i] *= gain
	}
}

// SetSampleRate forwards to the depth/rate params.
func (t *Tremolo) SetSampleRate(sr float32) {
	t.sampleRate = sr
	t.depth.SetSampleRate(sr)
	t.rate.SetSampleRate(sr)
}

// Reset clears the LFO phase.
func (t *Tremolo) Reset() {
	t.phase = 0
	t.depth.Reset()
	t.rate.Reset()
}

// LatencySamples is always 0.
func (t *Tremolo) LatencySamples() uint32 { return 0 }
