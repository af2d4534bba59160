package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func unityGain() Processor {
	return ProcessorFunc(func(buf []float32, _ uint64) {})
}

// MonoToStereo followed by StereoToMono, both with a unity-gain inner
// processor, is the identity on mono signals — spec.md §8's round-trip law.
func TestMonoStereoRoundTripIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		frames := rapid.IntRange(1, 32).Draw(t, "frames")
		mono := rapid.SliceOfN(rapid.Float32Range(-1, 1), frames, frames).Draw(t, "mono")

		m2s := NewMonoToStereo(unityGain())
		stereoBuf := make([]float32, frames*2)
		for i := 0; i < frames; i++ {
			stereoBuf[2*i] = mono[i]
			stereoBuf[2*i+1] = mono[i]
		}
		m2s.Process(stereoBuf, 0)

		s2m := NewStereoToMono(unityGain())
		s2m.Process(stereoBuf, 0)

		for i := 0; i < frames; i++ {
			assert.InDelta(t, float64(mono[i]), float64(stereoBuf[2*i]), 1e-6)
			assert.InDelta(t, float64(mono[i]), float64(stereoBuf[2*i+1]), 1e-6)
		}
	})
}

func TestDualMonoLatencyIsMaxOfChildren(t *testing.T) {
	left := latencyStub{latency: 3}
	right := latencyStub{latency: 7}
	d := NewDualMono(left, right)
	assert.Equal(t, uint32(7), d.LatencySamples())
}

type latencyStub struct{ latency uint32 }

func (s latencyStub) Process([]float32, uint64) {}
func (s latencyStub) SetSampleRate(float32)      {}
func (s latencyStub) Reset()                     {}
func (s latencyStub) LatencySamples() uint32     { return s.latency }
