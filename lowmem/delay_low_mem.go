// Package lowmem provides memory-reduced delay and reverb variants: i16
// quantized ring storage running at half the audio sample rate, restored
// to full rate with cubic Hermite interpolation.
package lowmem

import "github.com/kestrelaudio/dspcore/core"

const paramChunkSize = 64

const i16Scale = 32767.0
const i16ScaleInv = 1.0 / 32767.0

// DelayLowMem is a memory-efficient digital delay: i16 ring storage at
// half the sample rate (75% memory savings vs. delay.Line), restored with
// cubic Hermite interpolation on read.
type DelayLowMem struct {
	buffer   []int16
	writePtr int
	// phase tracks which half-rate downsample slot the next full-rate
	// input sample lands in: 0 starts a new slot, 1 averages into it.
	phase         int
	downsampleAcc float32

	delayTime, feedback, mix core.AudioParam
	maxDelaySeconds          float32
	sampleRate               float32

	delayBuf, fbBuf, mixBuf [paramChunkSize]float32
}

// NewDelayLowMem creates a DelayLowMem.
func NewDelayLowMem(maxDelaySeconds float32, delayTime, feedback, mix core.AudioParam) *DelayLowMem {
	sampleRate := float32(44100.0)
	size := int(maxDelaySeconds * sampleRate * 0.5)
	return &DelayLowMem{
		buffer:          make([]int16, size),
		delayTime:       delayTime,
		feedback:        feedback,
		mix:             mix,
		maxDelaySeconds: maxDelaySeconds,
		sampleRate:      sampleRate,
	}
}

// SetDelayTime replaces the delay-time AudioParam.
func (d *DelayLowMem) SetDelayTime(delayTime core.AudioParam) { d.delayTime = delayTime }

// SetFeedback replaces the feedback AudioParam.
func (d *DelayLowMem) SetFeedback(feedback core.AudioParam) { d.feedback = feedback }

// SetMix replaces the mix AudioParam.
func (d *DelayLowMem) SetMix(mix core.AudioParam) { d.mix = mix }

// Process reads/writes the half-rate i16 ring with cubic Hermite
// interpolation, downsampling the full-rate input by averaging pairs of
// samples before each half-rate write.
func (d *DelayLowMem) Process(buf []float32, startSampleIndex uint64) {
	n := len(d.buffer)
	if n == 0 {
		return
	}
	lenF := float32(n)
	delaySR := d.sampleRate * 0.5

	currentSampleIndex := startSampleIndex

	for start := 0; start < len(buf); start += paramChunkSize {
		end := start + paramChunkSize
		if end > len(buf) {
			end = len(buf)
		}
		chunk := buf[start:end]
		chunkLen := len(chunk)

		d.delayTime.Sample(d.delayBuf[:chunkLen], currentSampleIndex)
		d.feedback.Sample(d.fbBuf[:chunkLen], currentSampleIndex)
		d.mix.Sample(d.mixBuf[:chunkLen], currentSampleIndex)

		for i := 0; i < chunkLen; i++ {
			input := chunk[i]
			delaySeconds := d.delayBuf[i]
			fb := d.fbBuf[i]
			mix := d.mixBuf[i]

			currentPos := float32(d.writePtr) + float32(d.phase)*0.5
			delaySamples := delaySeconds * delaySR
			readPtrNorm := currentPos - delaySamples

			if readPtrNorm < 0 {
				readPtrNorm += lenF
			}
			if readPtrNorm >= lenF {
				readPtrNorm -= lenF
			}

			idxA := int(readPtrNorm)
			idxB := idxA + 1
			if idxB == n {
				idxB = 0
			}
			idxPrev := idxA - 1
			if idxA == 0 {
				idxPrev = n - 1
			}
			idxNext := idxB + 1
			if idxB+1 == n {
				idxNext = 0
			}

			frac := readPtrNorm - float32(idxA)

			valPrev := float32(d.buffer[idxPrev]) * i16ScaleInv
			valA := float32(d.buffer[idxA]) * i16ScaleInv
			valB := float32(d.buffer[idxB]) * i16ScaleInv
			valNext := float32(d.buffer[idxNext]) * i16ScaleInv

			c0 := valA
			c1 := 0.5 * (valB - valPrev)
			c2 := valPrev - 2.5*valA + 2.0*valB - 0.5*valNext
			c3 := 0.5*(valNext-valPrev) + 1.5*(valA-valB)
			delayed := ((c3*frac+c2)*frac+c1)*frac + c0

			nextVal := input + delayed*fb

			if d.phase == 0 {
				d.downsampleAcc = nextVal
				d.phase = 1
			} else {
				avgVal := (d.downsampleAcc + nextVal) * 0.5
				nextValClamped := clampF32(avgVal, -1, 1)
				d.buffer[d.writePtr] = int16(nextValClamped * i16Scale)
				d.writePtr++
				if d.writePtr == n {
					d.writePtr = 0
				}
				d.phase = 0
			}

			chunk[i] = input*(1-mix) + delayed*mix
		}

		currentSampleIndex += uint64(chunkLen)
	}
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

// SetSampleRate forwards to delay/feedback/mix and grows the ring if the
// new sample rate requires more (half-rate) samples.
func (d *DelayLowMem) SetSampleRate(sr float32) {
	d.sampleRate = sr
	d.delayTime.SetSampleRate(sr)
	d.feedback.SetSampleRate(sr)
	d.mix.SetSampleRate(sr)

	newSize := int(d.maxDelaySeconds * sr * 0.5)
	if newSize > len(d.buffer) {
		grown := make([]int16, newSize)
		copy(grown, d.buffer)
		d.buffer = grown
	}
}

// Reset clears the ring, write pointer, downsample phase, and
// accumulator.
func (d *DelayLowMem) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePtr = 0
	d.phase = 0
	d.downsampleAcc = 0
	d.delayTime.Reset()
	d.feedback.Reset()
	d.mix.Reset()
}

// LatencySamples is always 0.
func (d *DelayLowMem) LatencySamples() uint32 { return 0 }
