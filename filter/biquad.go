// Package filter provides second-order and ladder-style resonant filters.
package filter

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// BiquadType selects the filter response Biquad computes.
type BiquadType int

const (
	LowPass BiquadType = iota
	HighPass
	BandPass
	Notch
)

// Biquad is a direct-form-I second-order filter whose coefficients are
// recomputed every sample from the current frequency and Q parameters.
type Biquad struct {
	filterType BiquadType
	frequency  core.AudioParam
	q          core.AudioParam
	sampleRate float32

	a1, a2     float32
	b0, b1, b2 float32

	x1, x2 float32
	y1, y2 float32

	freqBuf, qBuf []float32
}

// NewBiquad creates a Biquad with the given type, cutoff/center frequency,
// and Q.
func NewBiquad(filterType BiquadType, frequency, q core.AudioParam) *Biquad {
	return &Biquad{
		filterType: filterType,
		frequency:  frequency,
		q:          q,
		sampleRate: 44100.0,
	}
}

// NewLowPass creates a LowPass Biquad.
func NewLowPass(frequency, q core.AudioParam) *Biquad {
	return NewBiquad(LowPass, frequency, q)
}

// SetQ replaces the Q AudioParam.
func (b *Biquad) SetQ(q core.AudioParam) { b.q = q }

func (b *Biquad) recalc(freq, q float32) {
	w0 := 2 * math.Pi * float64(freq) / float64(b.sampleRate)
	sinW0, cosW0 := math.Sincos(w0)
	alpha := sinW0 / (2 * float64(q))

	var a0 float64
	switch b.filterType {
	case LowPass:
		b.b0 = float32((1 - cosW0) / 2)
		b.b1 = float32(1 - cosW0)
		b.b2 = float32((1 - cosW0) / 2)
		a0 = 1 + alpha
		b.a1 = float32(-2 * cosW0)
		b.a2 = float32(1 - alpha)
	case HighPass:
		b.b0 = float32((1 + cosW0) / 2)
		b.b1 = float32(-(1 + cosW0))
		b.b2 = float32((1 + cosW0) / 2)
		a0 = 1 + alpha
		b.a1 = float32(-2 * cosW0)
		b.a2 = float32(1 - alpha)
	case BandPass:
		b.b0 = float32(alpha)
		b.b1 = 0
		b.b2 = float32(-alpha)
		a0 = 1 + alpha
		b.a1 = float32(-2 * cosW0)
		b.a2 = float32(1 - alpha)
	case Notch:
		b.b0 = 1
		b.b1 = float32(-2 * cosW0)
		b.b2 = 1
		a0 = 1 + alpha
		b.a1 = float32(-2 * cosW0)
		b.a2 = float32(1 - alpha)
	}

	invA0 := float32(1.0 / a0)
	b.b0 *= invA0
	b.b1 *= invA0
	b.b2 *= invA0
	b.a1 *= invA0
	b.a2 *= invA0
}

// Process filters buf in place.
func (b *Biquad) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(b.freqBuf) < n {
		b.freqBuf = make([]float32, n)
	}
	if len(b.qBuf) < n {
		b.qBuf = make([]float32, n)
	}
	b.frequency.Sample(b.freqBuf[:n], sampleIndex)
	b.q.Sample(b.qBuf[:n], sampleIndex)

	for i := range buf {
		b.recalc(b.freqBuf[i], b.qBuf[i])

		x := buf[i]
		y := b.b0*x + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

		b.x2 = b.x1
		b.x1 = x
		b.y2 = b.y1
		b.y1 = y

		buf[i] = y
	}
}

// SetSampleRate forwards to the frequency and Q AudioParams.
func (b *Biquad) SetSampleRate(sr float32) {
	b.sampleRate = sr
	b.frequency.SetSampleRate(sr)
	b.q.SetSampleRate(sr)
}

// Reset clears the filter's state history.
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

// LatencySamples is always 0.
func (b *Biquad) LatencySamples() uint32 { return 0 }
