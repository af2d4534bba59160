// Package physical implements physical-modeling synthesizers: a
// Karplus-Strong plucked string and a brass instrument waveguide model.
package physical

import "github.com/kestrelaudio/dspcore/core"

// KarplusStrong simulates a plucked string: a noise burst is injected
// into a delay line on each gate rising edge, then recirculated with a
// 0.995 loop gain through a damping blend of each delayed read and the
// average of that read with the ring slot it overwrites. No separate
// filter state is kept between samples.
type KarplusStrong struct {
	pitch, gate, damping, pickPosition core.AudioParam

	delayLine  []float32
	writePtr   int
	sampleRate float32

	lastGate float32
	rngState uint32

	pitchBuf, gateBuf, dampingBuf, pickPosBuf []float32
}

// NewKarplusStrong creates a KarplusStrong. pickPosition is the pluck
// position along the string, 0.0 (bridge) to 0.5 (middle).
func NewKarplusStrong(pitch, gate, damping, pickPosition core.AudioParam) *KarplusStrong {
	sampleRate := float32(44100.0)
	bufferSize := int(sampleRate / 20.0)
	return &KarplusStrong{
		pitch:        pitch,
		gate:         gate,
		damping:      damping,
		pickPosition: pickPosition,
		delayLine:    make([]float32, bufferSize),
		sampleRate:   sampleRate,
		rngState:     12345,
	}
}

func nextRandom(state *uint32) float32 {
	*state = *state*1103515245 + 12345
	val := (*state >> 16) & 0x7FFF
	return (float32(val)/32768.0)*2.0 - 1.0
}

// SetPitch replaces the fundamental-frequency AudioParam.
func (k *KarplusStrong) SetPitch(pitch core.AudioParam) { k.pitch = pitch }

// SetGate replaces the gate AudioParam.
func (k *KarplusStrong) SetGate(gate core.AudioParam) { k.gate = gate }

// SetDamping replaces the damping AudioParam.
func (k *KarplusStrong) SetDamping(damping core.AudioParam) { k.damping = damping }

// SetPickPosition replaces the pick-position AudioParam.
func (k *KarplusStrong) SetPickPosition(pickPosition core.AudioParam) {
	k.pickPosition = pickPosition
}

// Process re-excites the string on each gate rising edge and recirculates
// the delay line through a damped feedback loop each sample.
func (k *KarplusStrong) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(k.pitchBuf) < n {
		k.pitchBuf = make([]float32, n)
	}
	if len(k.gateBuf) < n {
		k.gateBuf = make([]float32, n)
	}
	if len(k.dampingBuf) < n {
		k.dampingBuf = make([]float32, n)
	}
	if len(k.pickPosBuf) < n {
		k.pickPosBuf = make([]float32, n)
	}

	k.pitch.Sample(k.pitchBuf[:n], sampleIndex)
	k.gate.Sample(k.gateBuf[:n], sampleIndex)
	k.damping.Sample(k.dampingBuf[:n], sampleIndex)
	k.pickPosition.Sample(k.pickPosBuf[:n], sampleIndex)

	delayLen := len(k.delayLine)
	if delayLen == 0 {
		return
	}

	for i := range buf {
		gateVal := k.gateBuf[i]

		if gateVal >= 0.5 && k.lastGate < 0.5 {
			pitchVal := k.pitchBuf[i]
			period := int(maxF32(k.sampleRate/pitchVal, 1.0))
			pickPos := clampF32(k.pickPosBuf[i], 0.01, 0.5)
			pickOffset := int(float32(period) * pickPos)

			if period < delayLen {
				for j := 0; j < period; j++ {
					idx := (k.writePtr + j) % delayLen
					noise := nextRandom(&k.rngState)
					k.delayLine[idx] = noise
				}

				for j := 0; j < period-pickOffset; j++ {
					idx := (k.writePtr + j) % delayLen
					delayedIdx := (k.writePtr + j + pickOffset) % delayLen
					k.delayLine[delayedIdx] -= k.delayLine[idx]
				}
			}
		}
		k.lastGate = gateVal

		pitchVal := k.pitchBuf[i]
		period := maxF32(k.sampleRate/pitchVal, 1.0)

		readPos := modF32(float32(k.writePtr)-period+float32(delayLen), float32(delayLen))
		idxA := int(readPos)
		idxB := (idxA + 1) % delayLen
		frac := readPos - float32(idxA)

		delayedSample := k.delayLine[idxA]*(1-frac) + k.delayLine[idxB]*frac
		dampingVal := k.dampingBuf[i]

		avg := (delayedSample + k.delayLine[k.writePtr]) * 0.5
		feedback := (delayedSample*(1-dampingVal) + avg*dampingVal) * 0.995

		k.delayLine[k.writePtr] = feedback
		buf[i] = feedback

		k.writePtr = (k.writePtr + 1) % delayLen
	}
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func modF32(a, b float32) float32 {
	m := a
	for m >= b {
		m -= b
	}
	for m < 0 {
		m += b
	}
	return m
}

// SetSampleRate forwards to every param and grows the delay line.
func (k *KarplusStrong) SetSampleRate(sr float32) {
	k.sampleRate = sr
	k.pitch.SetSampleRate(sr)
	k.gate.SetSampleRate(sr)
	k.damping.SetSampleRate(sr)
	k.pickPosition.SetSampleRate(sr)

	bufferSize := int(sr / 20.0)
	if bufferSize > len(k.delayLine) {
		grown := make([]float32, bufferSize)
		copy(grown, k.delayLine)
		k.delayLine = grown
	}
}

// Reset clears the delay line, write pointer, and gate-edge state.
func (k *KarplusStrong) Reset() {
	for i := range k.delayLine {
		k.delayLine[i] = 0
	}
	k.writePtr = 0
	k.lastGate = 0
	k.pitch.Reset()
	k.gate.Reset()
	k.damping.Reset()
	k.pickPosition.Reset()
}

// LatencySamples is always 0.
func (k *KarplusStrong) LatencySamples() uint32 { return 0 }
