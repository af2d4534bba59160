package modulate

import (
	"math"
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestChorusStaysFiniteOnConstantInput(t *testing.T) {
	c := NewChorus()
	c.SetSampleRate(8000)

	buf := make([]float32, 2000)
	for i := range buf {
		buf[i] = 1.0
	}
	c.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestFlangerModulatesOverTime(t *testing.T) {
	f := NewFlanger()
	f.SetSampleRate(8000)

	buf := make([]float32, 4000)
	for i := range buf {
		buf[i] = 1.0
	}
	f.Process(buf, 0)

	assert.NotEqual(t, buf[10], buf[3000])
}

func TestPhaserShiftsAStaticSignal(t *testing.T) {
	p := NewPhaser(core.Hz(200), core.Hz(2000), core.Linear(0.5), core.Linear(0.5))

	buf := make([]float32, 100)
	for i := range buf {
		buf[i] = 1.0
	}
	p.Process(buf, 0)

	assert.True(t, !math.IsNaN(float64(buf[0])))
	assert.Greater(t, math.Abs(float64(buf[99]-1.0)), 0.0001)
}

func TestTremoloSweepsFullDepth(t *testing.T) {
	trem := NewTremolo(core.Hz(10), core.Linear(1.0))
	trem.SetSampleRate(100)

	buf := make([]float32, 10)
	for i := range buf {
		buf[i] = 1.0
	}
	trem.Process(buf, 0)

	min, max := buf[0], buf[0]
	for _, v := range buf {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	assert.Less(t, float64(min), 0.1)
	assert.Greater(t, float64(max), 0.9)
}

func TestRingModProducesBipolarOutput(t *testing.T) {
	rm := NewRingMod(core.Hz(10), core.Linear(1.0))
	rm.SetSampleRate(100)

	buf := make([]float32, 10)
	for i := range buf {
		buf[i] = 1.0
	}
	rm.Process(buf, 0)

	min, max := buf[0], buf[0]
	for _, v := range buf {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	assert.Less(t, float64(min), -0.5)
	assert.Greater(t, float64(max), 0.5)
}

func TestModulatedDelayResetClearsRing(t *testing.T) {
	c := NewChorus()
	c.SetSampleRate(1000)

	buf := make([]float32, 100)
	buf[0] = 1.0
	c.Process(buf, 0)
	c.Reset()

	for _, v := range c.buffer {
		assert.Equal(t, float32(0), v)
	}
	assert.Equal(t, 0, c.writePtr)
}
