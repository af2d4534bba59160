package synth

import (
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestOscillatorSineMatchesKnownPhasePoints(t *testing.T) {
	osc := NewOscillator(core.Hz(441.0), Sine)
	buf := make([]float32, 100)
	osc.Process(buf, 0)

	assert.InDelta(t, 0.0, float64(buf[0]), 1e-5)
	// At 44100Hz with a 441Hz tone, sample 25 lands at a quarter cycle.
	assert.InDelta(t, 1.0, float64(buf[25]), 1e-5)
}

func TestOscillatorSquareStaysBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		freq := rapid.Float32Range(20, 2000).Draw(t, "freq")
		osc := NewOscillator(core.Hz(freq), Square)
		buf := make([]float32, 256)
		osc.Process(buf, 0)
		for _, v := range buf {
			assert.LessOrEqual(t, float64(v), 1.5)
			assert.GreaterOrEqual(t, float64(v), -1.5)
		}
	})
}

func TestOscillatorWhiteNoiseStaysWithinUnitRange(t *testing.T) {
	osc := NewOscillator(core.Hz(0), WhiteNoise)
	buf := make([]float32, 1000)
	osc.Process(buf, 0)
	for _, v := range buf {
		assert.GreaterOrEqual(t, float64(v), -1.0)
		assert.LessOrEqual(t, float64(v), 1.0)
	}
}

func TestOscillatorResetReturnsToPhaseZero(t *testing.T) {
	osc := NewOscillator(core.Hz(100), Sine)
	buf := make([]float32, 10)
	osc.Process(buf, 0)
	osc.Reset()

	buf2 := make([]float32, 1)
	osc.Process(buf2, 0)
	assert.InDelta(t, 0.0, float64(buf2[0]), 1e-5)
}
