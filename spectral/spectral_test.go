package spectral

import (
	"math"
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestFftPitchShiftIdentityAtZeroSemitonesPreservesBins(t *testing.T) {
	ps := NewFftPitchShift(256, core.StaticParam(0.0))
	bins := make([]complex64, 256)
	bins[10] = complex(float32(1.0), float32(0.5))
	original := append([]complex64(nil), bins...)

	ps.ProcessSpectral(bins, 0)

	assert.InDelta(t, real(original[10]), real(bins[10]), 1e-5)
	assert.InDelta(t, imag(original[10]), imag(bins[10]), 1e-5)
}

func TestFftPitchShiftRejectsWrongBinCount(t *testing.T) {
	ps := NewFftPitchShift(256, core.StaticParam(12.0))
	bins := make([]complex64, 128)
	bins[0] = complex(float32(1.0), float32(0.0))
	ps.ProcessSpectral(bins, 0)

	assert.Equal(t, complex64(complex(float32(1.0), float32(0.0))), bins[0])
}

func TestFftPitchShiftViaOlaStaysFinite(t *testing.T) {
	ps := NewFftPitchShift(256, core.Linear(7.0))
	ola, err := core.NewOla(256, ps)
	assert.NoError(t, err)
	ola.SetSampleRate(44100)

	buf := make([]float32, 2048)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i) * 0.1))
	}
	ola.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestGranularPitchShiftAtZeroSemitonesStaysFinite(t *testing.T) {
	g := NewGranularPitchShift(50, core.StaticParam(0.0))
	g.SetSampleRate(1000)

	buf := make([]float32, 10)
	for i := range buf {
		buf[i] = float32(i) * 0.1
	}
	g.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
	}
}

func TestGranularPitchShiftStaysFiniteUnderPitchChange(t *testing.T) {
	g := NewGranularPitchShift(30, core.Linear(-12.0))
	g.SetSampleRate(8000)

	buf := make([]float32, 4000)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i) * 0.05))
	}
	g.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestGranularPitchShiftResetClearsRing(t *testing.T) {
	g := NewGranularPitchShift(50, core.Linear(5.0))
	g.SetSampleRate(1000)

	buf := make([]float32, 100)
	buf[0] = 1.0
	g.Process(buf, 0)
	g.Reset()

	for _, v := range g.buffer {
		assert.Equal(t, float32(0), v)
	}
	assert.Equal(t, 0, g.writePtr)
	assert.Equal(t, float32(0), g.phasor)
}
