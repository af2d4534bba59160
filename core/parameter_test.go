package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParameterGetSetRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float32Range(-1e6, 1e6).Draw(t, "v")
		p := NewParameter(v)
		assert.Equal(t, v, p.Get())
	})
}

func TestTriggerFireTestAndClear(t *testing.T) {
	tr := NewTrigger()
	assert.False(t, tr.TestAndClear(), "fresh trigger should not be set")
	tr.Fire()
	assert.True(t, tr.TestAndClear())
	assert.False(t, tr.TestAndClear(), "test-and-clear must consume the flag")
}

func TestAudioParamStaticSamplesConstant(t *testing.T) {
	p := StaticParam(0.25)
	out := make([]float32, 8)
	p.Sample(out, 0)
	for _, v := range out {
		assert.Equal(t, float32(0.25), v)
	}
	v, ok := p.GetConstant()
	assert.True(t, ok)
	assert.Equal(t, float32(0.25), v)
}

func TestAudioParamLinkedTracksParameter(t *testing.T) {
	cell := NewParameter(1.0)
	p := LinkedParam(cell)
	out := make([]float32, 4)
	p.Sample(out, 0)
	for _, v := range out {
		assert.Equal(t, float32(1.0), v)
	}

	cell.Set(2.0)
	p.Sample(out, 4)
	for _, v := range out {
		assert.Equal(t, float32(2.0), v)
	}
}

func TestAudioParamDynamicIsNotConstant(t *testing.T) {
	gen := ProcessorFunc(func(buf []float32, _ uint64) {
		for i := range buf {
			buf[i] = 0.5
		}
	})
	p := DynamicParam(gen)
	_, ok := p.GetConstant()
	assert.False(t, ok)

	out := make([]float32, 4)
	p.Sample(out, 0)
	for _, v := range out {
		assert.Equal(t, float32(0.5), v)
	}
}
