package lowmem

import (
	"math"
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestDelayLowMemStaysFiniteOnImpulse(t *testing.T) {
	d := NewDelayLowMem(1.0, core.Seconds(0.01), core.Linear(0.5), core.Linear(0.7))
	d.SetSampleRate(8000)

	buf := make([]float32, 2000)
	buf[0] = 1.0
	d.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestDelayLowMemMixZeroIsDrySignal(t *testing.T) {
	d := NewDelayLowMem(1.0, core.Seconds(0.01), core.Linear(0.0), core.Linear(0.0))
	d.SetSampleRate(1000)

	buf := []float32{0.3, -0.7, 0.9, 0.1}
	original := append([]float32(nil), buf...)
	d.Process(buf, 0)
	assert.Equal(t, original, buf)
}

func TestDelayLowMemResetClearsRing(t *testing.T) {
	d := NewDelayLowMem(1.0, core.Seconds(0.01), core.Linear(0.5), core.Linear(0.5))
	d.SetSampleRate(1000)

	buf := make([]float32, 200)
	buf[0] = 1.0
	d.Process(buf, 0)
	d.Reset()

	for _, v := range d.buffer {
		assert.Equal(t, int16(0), v)
	}
	assert.Equal(t, 0, d.writePtr)
	assert.Equal(t, 0, d.phase)
}

func TestReverbLowMemStaysFiniteOnImpulse(t *testing.T) {
	r := NewReverbLowMem()
	r.SetSampleRate(44100)

	buf := make([]float32, 2*4096)
	buf[0] = 1.0
	buf[1] = 1.0
	r.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestReverbLowMemSilenceConverges(t *testing.T) {
	r := NewReverbLowMemWithParams(core.Linear(0.1), core.Linear(0.3), 0)
	r.SetSampleRate(44100)

	warmup := make([]float32, 2*64)
	warmup[0] = 1.0
	warmup[1] = 1.0
	r.Process(warmup, 0)

	const silentBlocks = 3000
	for i := 0; i < silentBlocks; i++ {
		buf := make([]float32, 2*64)
		r.Process(buf, uint64(i+1)*64)
	}

	buf := make([]float32, 2*4096)
	r.Process(buf, uint64(silentBlocks+1)*64)

	var sum float64
	for _, v := range buf {
		sum += math.Abs(float64(v))
	}
	mean := sum / float64(len(buf))
	assert.Less(t, mean, 1e-6)
}

func TestReverbLowMemResetClearsState(t *testing.T) {
	r := NewReverbLowMem()
	r.SetSampleRate(1000)

	buf := make([]float32, 2*100)
	buf[0] = 1.0
	r.Process(buf, 0)
	r.Reset()

	for _, c := range r.combsL {
		for _, v := range c.buffer {
			assert.Equal(t, int16(0), v)
		}
	}
	assert.Equal(t, float32(0), r.lastOutL)
	assert.Equal(t, float32(0), r.lastOutR)
}
