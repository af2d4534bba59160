package filter

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// SvfType selects which simultaneous output a StateVariable filter reports.
type SvfType int

const (
	SvfLowPass SvfType = iota
	SvfHighPass
	SvfBandPass
	SvfNotch
	SvfPeak
)

// StateVariable is a TPT (topology-preserving transform) / ZDF (zero-delay
// feedback) state-variable filter. Stable and versatile across its
// frequency range; computes low-pass, high-pass, band-pass, notch, and peak
// simultaneously each sample and returns whichever SvfType is selected.
type StateVariable struct {
	filterType SvfType
	cutoff     core.AudioParam
	resonance  core.AudioParam
	sampleRate float32

	s1, s2 float32

	cutoffBuf, resBuf []float32
}

// NewStateVariable creates a StateVariable filter.
func NewStateVariable(filterType SvfType, cutoff, resonance core.AudioParam) *StateVariable {
	return &StateVariable{
		filterType: filterType,
		cutoff:     cutoff,
		resonance:  resonance,
		sampleRate: 44100.0,
	}
}

// SetType changes which output the filter reports.
func (f *StateVariable) SetType(t SvfType) { f.filterType = t }

// Process filters buf in place.
func (f *StateVariable) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(f.cutoffBuf) < n {
		f.cutoffBuf = make([]float32, n)
	}
	if len(f.resBuf) < n {
		f.resBuf = make([]float32, n)
	}
	f.cutoff.Sample(f.cutoffBuf[:n], sampleIndex)
	f.resonance.Sample(f.resBuf[:n], sampleIndex)

	piSr := math.Pi / float64(f.sampleRate)

	for i, x := range buf {
		cutoffHz := f.cutoffBuf[i]
		res := f.resBuf[i]

		clamped := clampF32(cutoffHz, 10.0, f.sampleRate*0.49)
		g := float32(math.Tan(piSr * float64(clamped)))
		k := 1.0 / maxF32(res, 0.01)

		denom := 1.0 / (1.0 + g*(g+k))

		hp := (x - f.s1*(g+k) - f.s2) * denom
		bp := g*hp + f.s1
		lp := g*bp + f.s2

		f.s1 += 2 * g * hp
		f.s2 += 2 * g * bp

		var out float32
		switch f.filterType {
		case SvfLowPass:
			out = lp
		case SvfHighPass:
			out = hp
		case SvfBandPass:
			out = bp
		case SvfNotch:
			out = hp + lp
		case SvfPeak:
			out = lp - hp
		}

		buf[i] = out
	}
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// SetSampleRate forwards to the cutoff and resonance AudioParams.
func (f *StateVariable) SetSampleRate(sr float32) {
	f.sampleRate = sr
	f.cutoff.SetSampleRate(sr)
	f.resonance.SetSampleRate(sr)
}

// Reset clears the filter's integrator state.
func (f *StateVariable) Reset() {
	f.s1, f.s2 = 0, 0
}

// LatencySamples is always 0.
func (f *StateVariable) LatencySamples() uint32 { return 0 }
