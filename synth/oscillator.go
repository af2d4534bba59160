// Package synth provides signal sources: band-limited oscillators, a
// modulation LFO, and an ADSR envelope generator.
package synth

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// Waveform selects the shape an Oscillator generates.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Saw
	Square
	WhiteNoise
)

// Oscillator is a phase-accumulator oscillator with PolyBLEP anti-aliasing
// on Saw and Square, and a linear-congruential noise source for WhiteNoise.
type Oscillator struct {
	phase      float32
	frequency  core.AudioParam
	waveform   Waveform
	sampleRate float32
	freqBuf    []float32
	rngState   uint32
}

// NewOscillator creates an Oscillator at the given frequency and waveform.
func NewOscillator(frequency core.AudioParam, waveform Waveform) *Oscillator {
	return &Oscillator{
		frequency:  frequency,
		waveform:   waveform,
		sampleRate: 44100.0,
		rngState:   12345,
	}
}

func polyBlep(t, dt float32) float32 {
	if t < dt {
		t = t / dt
		return t + t - t*t - 1.0
	} else if t > 1.0-dt {
		t = (t - 1.0) / dt
		return t*t + t + t + 1.0
	}
	return 0.0
}

func nextRandom(state *uint32) float32 {
	*state = *state*1103515245 + 12345
	val := (*state >> 16) & 0x7FFF
	return (float32(val)/32768.0)*2.0 - 1.0
}

// Process generates one block of the configured waveform into buf.
func (o *Oscillator) Process(buf []float32, sampleIndex uint64) {
	if len(o.freqBuf) != len(buf) {
		o.freqBuf = make([]float32, len(buf))
	}
	o.frequency.Sample(o.freqBuf, sampleIndex)

	rngState := o.rngState

	for i := range buf {
		freq := o.freqBuf[i]
		inc := freq / o.sampleRate

		currentPhase := o.phase
		o.phase += inc
		if o.phase >= 1.0 {
			o.phase -= 1.0
		} else if o.phase < 0.0 {
			o.phase += 1.0
		}

		var val float32
		switch o.waveform {
		case Sine:
			val = float32(math.Sin(float64(currentPhase) * 2 * math.Pi))
		case Triangle:
			if currentPhase < 0.5 {
				val = 4.0*currentPhase - 1.0
			} else {
				val = 4.0*(1.0-currentPhase) - 1.0
			}
		case Saw:
			naive := 2.0*currentPhase - 1.0
			val = naive - polyBlep(currentPhase, float32(math.Abs(float64(inc))))
		case Square:
			var naive float32 = -1.0
			if currentPhase < 0.5 {
				naive = 1.0
			}
			absInc := float32(math.Abs(float64(inc)))
			corr := polyBlep(currentPhase, absInc) - polyBlep(float32(math.Mod(float64(currentPhase+0.5), 1.0)), absInc)
			val = naive + corr
		case WhiteNoise:
			val = nextRandom(&rngState)
		}

		buf[i] = val
	}

	o.rngState = rngState
}

// SetSampleRate updates the phase increment's time base.
func (o *Oscillator) SetSampleRate(sr float32) {
	o.sampleRate = sr
	o.frequency.SetSampleRate(sr)
}

// Reset returns the oscillator to phase 0. The noise generator's internal
// state is left running, matching a free-running LCG rather than a seeded one.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// LatencySamples is always 0: an oscillator introduces no delay.
func (o *Oscillator) LatencySamples() uint32 { return 0 }
