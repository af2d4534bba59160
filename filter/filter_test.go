package filter

import (
	"math"
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestBiquadLowPassImpulseStaysFinite(t *testing.T) {
	b := NewLowPass(core.Hz(200), core.Linear(0.707))
	b.SetSampleRate(44100)
	buf := make([]float32, 64)
	buf[0] = 1.0
	b.Process(buf, 0)
	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestBiquadResetClearsHistory(t *testing.T) {
	b := NewLowPass(core.Hz(1000), core.Linear(1.0))
	b.SetSampleRate(44100)
	buf := []float32{1, 1, 1, 1}
	b.Process(buf, 0)
	b.Reset()
	assert.Equal(t, float32(0), b.x1)
	assert.Equal(t, float32(0), b.y1)
}

func TestStateVariableLowPassStaysFiniteOnImpulse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cutoff := rapid.Float32Range(20, 15000).Draw(t, "cutoff")
		res := rapid.Float32Range(0.01, 2.0).Draw(t, "res")

		svf := NewStateVariable(SvfLowPass, core.Hz(cutoff), core.Linear(res))
		svf.SetSampleRate(44100)
		buf := make([]float32, 128)
		buf[0] = 1.0
		svf.Process(buf, 0)
		for _, v := range buf {
			assert.False(t, math.IsNaN(float64(v)))
			assert.False(t, math.IsInf(float64(v), 0))
		}
	})
}

// Ladder impulse stability — spec.md §8's universal invariant: a finite
// impulse through a high-resonance ladder must stay bounded and finite.
func TestLadderImpulseStaysStableAtHighResonance(t *testing.T) {
	l := NewLadder(core.Hz(1000), core.Linear(0.95))
	l.SetSampleRate(44100)
	buf := make([]float32, 4096)
	buf[0] = 1.0
	l.Process(buf, 0)
	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
		assert.Less(t, float64(v), 10.0)
		assert.Greater(t, float64(v), -10.0)
	}
}

func TestPredictiveLadderImpulseStaysStable(t *testing.T) {
	p := NewPredictiveLadder(core.Hz(1000), core.Linear(0.95))
	p.SetSampleRate(44100)
	buf := make([]float32, 4096)
	buf[0] = 1.0
	p.Process(buf, 0)
	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestLadderResetClearsState(t *testing.T) {
	l := NewLadder(core.Hz(500), core.Linear(0.5))
	l.SetSampleRate(44100)
	buf := make([]float32, 16)
	buf[0] = 1.0
	l.Process(buf, 0)
	l.Reset()
	assert.Equal(t, [4]float32{}, l.s)
}
