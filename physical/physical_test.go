package physical

import (
	"math"
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestKarplusStrongDecaysAfterPluck(t *testing.T) {
	gate := core.NewParameter(0.0)
	k := NewKarplusStrong(core.Hz(220), core.LinkedParam(gate), core.Linear(0.5), core.Linear(0.5))
	k.SetSampleRate(8000)

	buf := make([]float32, 2000)
	gate.Set(1.0)
	k.Process(buf[:1], 0)
	gate.Set(0.0)
	k.Process(buf[1:], 1)

	var earlyEnergy, lateEnergy float64
	for _, v := range buf[:200] {
		earlyEnergy += math.Abs(float64(v))
	}
	for _, v := range buf[1800:] {
		lateEnergy += math.Abs(float64(v))
	}

	assert.Greater(t, earlyEnergy, lateEnergy)
}

func TestKarplusStrongStaysFinite(t *testing.T) {
	gate := core.NewParameter(1.0)
	k := NewKarplusStrong(core.Hz(440), core.LinkedParam(gate), core.Linear(0.1), core.Linear(0.2))
	k.SetSampleRate(8000)

	buf := make([]float32, 4000)
	k.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestKarplusStrongResetClearsString(t *testing.T) {
	gate := core.NewParameter(1.0)
	k := NewKarplusStrong(core.Hz(440), core.LinkedParam(gate), core.Linear(0.1), core.Linear(0.2))
	k.SetSampleRate(1000)

	buf := make([]float32, 200)
	k.Process(buf, 0)
	k.Reset()

	for _, v := range k.delayLine {
		assert.Equal(t, float32(0), v)
	}
	assert.Equal(t, 0, k.writePtr)
}

func TestBrassModelStaysFiniteUnderSteadyBlow(t *testing.T) {
	b := NewBrassModel(core.Hz(220), core.Linear(0.8), core.Linear(0.3))
	b.SetSampleRate(8000)

	buf := make([]float32, 8000)
	b.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestBrassModelSilentWithNoBreath(t *testing.T) {
	b := NewBrassModel(core.Hz(220), core.Linear(0.0), core.Linear(0.3))
	b.SetSampleRate(8000)

	buf := make([]float32, 4000)
	b.Process(buf, 0)

	for _, v := range buf {
		assert.InDelta(t, 0, float64(v), 1e-3)
	}
}

func TestBrassModelResetClearsBore(t *testing.T) {
	b := NewBrassModel(core.Hz(220), core.Linear(0.8), core.Linear(0.3))
	b.SetSampleRate(1000)

	buf := make([]float32, 200)
	b.Process(buf, 0)
	b.Reset()

	for _, v := range b.delayLine {
		assert.Equal(t, float32(0), v)
	}
	assert.Equal(t, float32(0), b.lastOut)
}
