package dynamics

import (
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestHardClipDistortsKnownValues(t *testing.T) {
	d := NewDistortion(core.Linear(2.0), core.Linear(1.0), HardClip, 0)
	buf := []float32{0.4, 0.6, -0.6}
	d.Process(buf, 0)

	assert.InDelta(t, 0.8, float64(buf[0]), 1e-6)
	assert.InDelta(t, 1.0, float64(buf[1]), 1e-6)
	assert.InDelta(t, -1.0, float64(buf[2]), 1e-6)
}

func TestSoftClipStaysWithinUnitRange(t *testing.T) {
	d := NewDistortion(core.Linear(5.0), core.Linear(1.0), SoftClip, 0)
	buf := []float32{2.0, -2.0, 0.5}
	d.Process(buf, 0)

	for _, v := range buf {
		assert.LessOrEqual(t, v, float32(1.0))
		assert.GreaterOrEqual(t, v, float32(-1.0))
	}
}

func TestBitCrushQuantizesToSteps(t *testing.T) {
	d := NewDistortion(core.Linear(1.0), core.Linear(1.0), BitCrush, 2.0)
	buf := []float32{0.2, 0.45}
	d.Process(buf, 0)

	for _, v := range buf {
		scaled := v * 4.0
		assert.InDelta(t, scaled, float32(int(scaled+0.5)), 1e-4)
	}
}

func TestDistortionDryMixZeroIsPassthrough(t *testing.T) {
	d := NewDistortion(core.Linear(10.0), core.Linear(0.0), SoftClip, 0)
	buf := []float32{0.3, -0.4, 0.9}
	original := append([]float32(nil), buf...)
	d.Process(buf, 0)
	assert.Equal(t, original, buf)
}

// Limiter settling: a constant input above the ceiling eventually settles
// to a gain-reduced level that is bounded but still positive.
func TestLimiterSettlesConstantInput(t *testing.T) {
	limiter := NewLimiter()
	limiter.SetSampleRate(44100)

	buf := make([]float32, 100)
	for i := range buf {
		buf[i] = 2.0
	}
	limiter.Process(buf, 0)

	last := buf[99]
	assert.Less(t, last, float32(1.5))
	assert.Greater(t, last, float32(0.0))
}

func TestCompressorLeavesQuietSignalUnaffected(t *testing.T) {
	c := NewCompressor(core.StaticParam(0.0), core.StaticParam(4.0))
	c.SetSampleRate(44100)

	buf := make([]float32, 200)
	for i := range buf {
		buf[i] = 0.01
	}
	c.Process(buf, 0)

	assert.InDelta(t, 0.01, float64(buf[199]), 1e-3)
}

func TestCompressorResetClearsEnvelope(t *testing.T) {
	c := NewCompressor(core.StaticParam(-20.0), core.StaticParam(4.0))
	c.SetSampleRate(44100)

	buf := make([]float32, 100)
	for i := range buf {
		buf[i] = 1.0
	}
	c.Process(buf, 0)
	c.Reset()
	assert.Equal(t, float32(0), c.envelope)
}
