package modulate

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// phaserAllpass is a single first-order allpass stage used in the phaser
// chain.
type phaserAllpass struct {
	zm1 float32
}

func (a *phaserAllpass) process(input, a1 float32) float32 {
	y := input*-a1 + a.zm1
	a.zm1 = input + y*a1
	return y
}

// Phaser is a 6-stage phaser: sweeping notch filters made by mixing the
// input with a phase-shifted version of itself.
type Phaser struct {
	filters                [6]phaserAllpass
	lfoPhase, lfoInc       float32
	minFreq, maxFreq       core.AudioParam
	feedback, mix          core.AudioParam
	sampleRate, lastSample float32

	minFreqBuf, maxFreqBuf, fbBuf, mixBuf []float32
}

// NewPhaser creates a Phaser sweeping between minFreq and maxFreq (Hz).
func NewPhaser(minFreq, maxFreq, feedback, mix core.AudioParam) *Phaser {
	sampleRate := float32(44100.0)
	return &Phaser{
		lfoInc:     2 * math.Pi * 0.5 / sampleRate,
		minFreq:    minFreq,
		maxFreq:    maxFreq,
		feedback:   feedback,
		mix:        mix,
		sampleRate: sampleRate,
	}
}

// SetMinFreq replaces the sweep floor AudioParam.
func (p *Phaser) SetMinFreq(minFreq core.AudioParam) { p.minFreq = minFreq }

// SetMaxFreq replaces the sweep ceiling AudioParam.
func (p *Phaser) SetMaxFreq(maxFreq core.AudioParam) { p.maxFreq = maxFreq }

// SetFeedback replaces the feedback AudioParam.
func (p *Phaser) SetFeedback(feedback core.AudioParam) { p.feedback = feedback }

// SetMix replaces the mix AudioParam.
func (p *Phaser) SetMix(mix core.AudioParam) { p.mix = mix }

// Process sweeps a six-stage allpass chain's corner frequency with a sine
// LFO between minFreq and maxFreq, feeds back the chain's own output, and
// blends dry/wet into buf.
func (p *Phaser) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(p.minFreqBuf) < n {
		p.minFreqBuf = make([]float32, n)
	}
	if len(p.maxFreqBuf) < n {
		p.maxFreqBuf = make([]float32, n)
	}
	if len(p.fbBuf) < n {
		p.fbBuf = make([]float32, n)
	}
	if len(p.mixBuf) < n {
		p.mixBuf = make([]float32, n)
	}

	p.minFreq.Sample(p.minFreqBuf[:n], sampleIndex)
	p.maxFreq.Sample(p.maxFreqBuf[:n], sampleIndex)
	p.feedback.Sample(p.fbBuf[:n], sampleIndex)
	p.mix.Sample(p.mixBuf[:n], sampleIndex)

	for i := range buf {
		minFreq := p.minFreqBuf[i]
		maxFreq := p.maxFreqBuf[i]
		fb := p.fbBuf[i]
		mix := p.mixBuf[i]

		input := buf[i] + p.lastSample*fb

		p.lfoPhase += p.lfoInc
		if p.lfoPhase > 2*math.Pi {
			p.lfoPhase -= 2 * math.Pi
		}

		lfo := (float32(math.Sin(float64(p.lfoPhase))) + 1) * 0.5
		freq := minFreq + lfo*(maxFreq-minFreq)

		w := 2 * math.Pi * float64(freq) / float64(p.sampleRate)
		tan := float32(math.Tan(w * 0.5))

		a1 := (1 - tan) / (1 + tan)

		out := input
		for stage := range p.filters {
			out = p.filters[stage].process(out, a1)
		}

		p.lastSample = out
		buf[i] = buf[i]*(1-mix) + out*mix
	}
}

// SetSampleRate rescales the LFO rate and forwards to the sweep params.
func (p *Phaser) SetSampleRate(sr float32) {
	oldSR := p.sampleRate
	p.sampleRate = sr
	p.minFreq.SetSampleRate(sr)
	p.maxFreq.SetSampleRate(sr)
	p.feedback.SetSampleRate(sr)
	p.mix.SetSampleRate(sr)
	p.lfoInc = p.lfoInc * oldSR / sr
}

// Reset clears every allpass stage's state, the LFO phase, and the
// feedback history sample.
func (p *Phaser) Reset() {
	for i := range p.filters {
		p.filters[i].zm1 = 0
	}
	p.lfoPhase = 0
	p.lastSample = 0
	p.minFreq.Reset()
	p.maxFreq.Reset()
	p.feedback.Reset()
	p.mix.Reset()
}

// LatencySamples is always 0.
func (p *Phaser) LatencySamples() uint32 { return 0 }
