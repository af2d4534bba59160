package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type gainProcessor struct{ g float32 }

func (p gainProcessor) Process(buf []float32, _ uint64) {
	for i := range buf {
		buf[i] *= p.g
	}
}
func (p gainProcessor) SetSampleRate(float32) {}
func (p gainProcessor) Reset()                {}
func (p gainProcessor) LatencySamples() uint32 { return 0 }

func TestParallelMixerDryWetEndpoints(t *testing.T) {
	input := []float32{1, 2, 3, 4}

	dry := append([]float32(nil), input...)
	pmDry := NewParallelMixer(StaticParam(0), gainProcessor{g: 2})
	pmDry.Process(dry, 0)
	assert.Equal(t, input, dry, "mix=0 must equal the dry signal")

	wet := append([]float32(nil), input...)
	pmWet := NewParallelMixer(StaticParam(1), gainProcessor{g: 2})
	pmWet.Process(wet, 0)
	for i := range wet {
		assert.InDelta(t, float64(input[i]*2), float64(wet[i]), 1e-6, "mix=1 must equal the wet signal")
	}
}

func TestSummingMixerEmptyInputsYieldsZero(t *testing.T) {
	m := NewSummingMixer(nil)
	buf := []float32{1, 2, 3}
	m.Process(buf, 0)
	assert.Equal(t, []float32{0, 0, 0}, buf)
}

type dcSource struct{ v float32 }

func (p dcSource) Process(buf []float32, _ uint64) {
	for i := range buf {
		buf[i] = p.v
	}
}
func (p dcSource) SetSampleRate(float32)  {}
func (p dcSource) Reset()                 {}
func (p dcSource) LatencySamples() uint32 { return 0 }

func TestSummingMixerSumsAndSkipsUnityGainFastPath(t *testing.T) {
	m := NewSummingMixer([]Processor{dcSource{v: 1}, dcSource{v: 2}})
	buf := []float32{0, 0, 0}
	m.Process(buf, 0)
	assert.Equal(t, []float32{3, 3, 3}, buf)
}

func TestSummingMixerLatencyIsMaxOfInputs(t *testing.T) {
	m := NewSummingMixer([]Processor{latencyStub{latency: 2}, latencyStub{latency: 9}})
	assert.Equal(t, uint32(9), m.LatencySamples())
}
