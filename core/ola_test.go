package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type identitySpectral struct{}

func (identitySpectral) ProcessSpectral(bins []complex64, _ uint64) {}

func TestOlaRejectsUnsupportedWindowSize(t *testing.T) {
	_, err := NewOla(300, identitySpectral{})
	assert.Error(t, err)
}

func TestOlaReportsWindowSizeAsLatency(t *testing.T) {
	o, err := NewOla(256, identitySpectral{})
	assert.NoError(t, err)
	assert.Equal(t, uint32(256), o.LatencySamples())
}

func TestOlaSilenceStaysFinite(t *testing.T) {
	o, err := NewOla(256, identitySpectral{})
	assert.NoError(t, err)
	o.SetSampleRate(44100)

	buf := make([]float32, 64)
	var sampleIndex uint64
	for block := 0; block < 40; block++ {
		o.Process(buf, sampleIndex)
		sampleIndex += uint64(len(buf))
		for _, v := range buf {
			assert.False(t, isNaNOrInf32(v))
		}
	}
}

func isNaNOrInf32(v float32) bool {
	f := float64(v)
	return f != f || f > 1e30 || f < -1e30
}
