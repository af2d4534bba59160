// Package modulate implements LFO-driven modulation effects: chorus/
// flanger (a modulated delay), phaser, tremolo, and ring modulation.
package modulate

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// ModulatedDelay is a fractional delay whose delay time is swept by a sine
// LFO, the basis of Chorus and Flanger.
type ModulatedDelay struct {
	buffer   []float32
	writePtr int

	lfoPhase, lfoInc float32
	depth            core.AudioParam
	baseDelay        float32

	feedback, mix core.AudioParam
	sampleRate    float32

	depthBuf, fbBuf, mixBuf []float32
}

// NewChorus creates a ModulatedDelay tuned for chorus: a longer base delay
// and moderate modulation depth.
func NewChorus() *ModulatedDelay {
	sampleRate := float32(44100.0)
	size := int(sampleRate * 0.1)
	return &ModulatedDelay{
		buffer:     make([]float32, size),
		lfoInc:     2 * math.Pi * 1.5 / sampleRate,
		depth:      core.StaticParam(0.002 * sampleRate),
		baseDelay:  0.015 * sampleRate,
		feedback:   core.StaticParam(0.4),
		mix:        core.StaticParam(0.5),
		sampleRate: sampleRate,
	}
}

// NewFlanger creates a ModulatedDelay tuned for flanger: a short base
// delay and higher feedback.
func NewFlanger() *ModulatedDelay {
	sampleRate := float32(44100.0)
	size := int(sampleRate * 0.1)
	return &ModulatedDelay{
		buffer:     make([]float32, size),
		lfoInc:     2 * math.Pi * 0.5 / sampleRate,
		depth:      core.StaticParam(0.005 * sampleRate),
		baseDelay:  0.005 * sampleRate,
		feedback:   core.StaticParam(0.7),
		mix:        core.StaticParam(0.5),
		sampleRate: sampleRate,
	}
}

// SetDepth replaces the modulation-depth AudioParam (in samples).
func (m *ModulatedDelay) SetDepth(depth core.AudioParam) { m.depth = depth }

// SetFeedback replaces the feedback AudioParam.
func (m *ModulatedDelay) SetFeedback(feedback core.AudioParam) { m.feedback = feedback }

// SetMix replaces the mix AudioParam.
func (m *ModulatedDelay) SetMix(mix core.AudioParam) { m.mix = mix }

// Process sweeps the delay read position with a sine LFO and writes
// feedback and dry/wet mix into buf.
func (m *ModulatedDelay) Process(buf []float32, sampleIndex uint64) {
	n := len(m.buffer)
	lenF := float32(n)
	blockSize := len(buf)

	if len(m.depthBuf) < blockSize {
		m.depthBuf = make([]float32, blockSize)
	}
	if len(m.fbBuf) < blockSize {
		m.fbBuf = make([]float32, blockSize)
	}
	if len(m.mixBuf) < blockSize {
		m.mixBuf = make([]float32, blockSize)
	}

	m.depth.Sample(m.depthBuf[:blockSize], sampleIndex)
	m.feedback.Sample(m.fbBuf[:blockSize], sampleIndex)
	m.mix.Sample(m.mixBuf[:blockSize], sampleIndex)

	for i := range buf {
		input := buf[i]
		depth := m.depthBuf[i]
		fb := m.fbBuf[i]
		mix := m.mixBuf[i]

		m.lfoPhase += m.lfoInc
		if m.lfoPhase > 2*math.Pi {
			m.lfoPhase -= 2 * math.Pi
		}

		lfo := float32(math.Sin(float64(m.lfoPhase)))
		currentDelay := m.baseDelay + lfo*depth

		readPos := float32(math.Mod(float64(float32(m.writePtr)-currentDelay+lenF), float64(lenF)))
		idxA := int(readPos)
		idxB := (idxA + 1) % n
		frac := readPos - float32(idxA)

		delayed := m.buffer[idxA]*(1-frac) + m.buffer[idxB]*frac

		m.buffer[m.writePtr] = input + delayed*fb

		buf[i] = input*(1-mix) + delayed*mix

		m.writePtr = (m.writePtr + 1) % n
	}
}

// SetSampleRate rescales the LFO rate, base delay, and grows the ring.
func (m *ModulatedDelay) SetSampleRate(sr float32) {
	oldSR := m.sampleRate
	m.sampleRate = sr
	m.depth.SetSampleRate(sr)
	m.feedback.SetSampleRate(sr)
	m.mix.SetSampleRate(sr)

	m.lfoInc = m.lfoInc * oldSR / sr
	m.baseDelay = m.baseDelay * sr / oldSR

	needed := int(sr * 0.1)
	if needed > len(m.buffer) {
		grown := make([]float32, needed)
		copy(grown, m.buffer)
		m.buffer = grown
	}
}

// Reset clears the ring, LFO phase, and write pointer.
func (m *ModulatedDelay) Reset() {
	for i := range m.buffer {
		m.buffer[i] = 0
	}
	m.writePtr = 0
	m.lfoPhase = 0
	m.depth.Reset()
	m.feedback.Reset()
	m.mix.Reset()
}

// LatencySamples is always 0.
func (m *ModulatedDelay) LatencySamples() uint32 { return 0 }
