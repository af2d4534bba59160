package modulate

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// RingMod multiplies the input by a sine carrier, a classic ring
// modulation effect.
type RingMod struct {
	phase, inc float32
	freq, mix  core.AudioParam
	sampleRate float32

	freqBuf, mixBuf []float32
}

// NewRingMod creates a RingMod. freq is the carrier frequency in Hz.
func NewRingMod(freq, mix core.AudioParam) *RingMod {
	return &RingMod{
		freq:       freq,
		mix:        mix,
		sampleRate: 44100.0,
	}
}

// SetFreq replaces the carrier-frequency AudioParam.
func (r *RingMod) SetFreq(freq core.AudioParam) { r.freq = freq }

// SetMix replaces the mix AudioParam.
func (r *RingMod) SetMix(mix core.AudioParam) { r.mix = mix }

// Process multiplies buf by a sine carrier and blends dry/wet.
func (r *RingMod) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(r.freqBuf) < n {
		r.freqBuf = make([]float32, n)
	}
	if len(r.mixBuf) < n {
		r.mixBuf = make([]float32, n)
	}

	r.freq.Sample(r.freqBuf[:n], sampleIndex)
	r.mix.Sample(r.mixBuf[:n], sampleIndex)

	for i := range buf {
		freq := r.freqBuf[i]
		mix := r.mixBuf[i]

		r.inc = 2 * math.Pi * freq / r.sampleRate

		currentPhase := r.phase

		r.phase += r.inc
		if r.phase > 2*math.Pi {
			r.phase -= 2 * math.Pi
		}

		carrier := float32(math.Sin(float64(currentPhase)))
		wet := buf[i] * carrier

		buf[i] = buf[i]*(1-mix) + wet*mix
	}
}

// SetSampleRate forwards to the freq/mix params.
func (r *RingMod) SetSampleRate(sr float32) {
	r.sampleRate = sr
	r.freq.SetSampleRate(sr)
	r.mix.SetSampleRate(sr)
}

// Reset clears the carrier's phase.
func (r *RingMod) Reset() {
	r.phase = 0
	r.freq.Reset()
	r.mix.Reset()
}

// LatencySamples is always 0.
func (r *RingMod) LatencySamples() uint32 { return 0 }
