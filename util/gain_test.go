package util

import (
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestGainHalvesMonoSignal(t *testing.T) {
	g := NewMonoGain(core.StaticParam(0.5))
	buf := []float32{1.0, -1.0, 0.0, 0.5}
	g.Process(buf, 0)
	assert.Equal(t, []float32{0.5, -0.5, 0.0, 0.25}, buf)
}

func TestGainFromDecibels(t *testing.T) {
	g := NewGainDB(-6.0)
	buf := []float32{1.0}
	g.Process(buf, 1, 0)
	assert.InDelta(t, 0.501187, float64(buf[0]), 0.001)
}

func TestGainAppliesSameFactorToBothStereoChannels(t *testing.T) {
	g := NewStereoGain(core.StaticParam(0.5))
	buf := []float32{1.0, 1.0, 1.0, 1.0}
	g.Process(buf, 0)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5}, buf)
}
