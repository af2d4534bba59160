// Package delay provides fractional-delay lines: a clean digital delay, a
// tape-style delay with wow/flutter and saturation, and a stereo ping-pong
// delay.
package delay

import "github.com/kestrelaudio/dspcore/core"

// paramChunkSize is the chunk length, in frames, in which delay/feedback/
// mix parameters are sampled into fixed-size scratch arrays; within a
// chunk the sampled values are still applied per sample.
const paramChunkSize = 64

// Line is a mono digital delay with linear-interpolated fractional reads,
// feedback, and a dry/wet mix.
type Line struct {
	buffer                  []float32
	writePtr                int
	delayTime               core.AudioParam
	feedback                core.AudioParam
	mix                     core.AudioParam
	maxDelaySeconds         float32
	sampleRate              float32
	delayBuf, fbBuf, mixBuf [paramChunkSize]float32
}

// NewLine creates a Line with the given maximum delay time (bounding the
// ring size) and initial delay/feedback/mix parameters.
func NewLine(maxDelaySeconds float32, delayTime, feedback, mix core.AudioParam) *Line {
	sampleRate := float32(44100.0)
	size := int(maxDelaySeconds * sampleRate)
	return &Line{
		buffer:          make([]float32, size),
		delayTime:       delayTime,
		feedback:        feedback,
		mix:             mix,
		maxDelaySeconds: maxDelaySeconds,
		sampleRate:      sampleRate,
	}
}

// SetDelayTime replaces the delay-time AudioParam.
func (l *Line) SetDelayTime(delayTime core.AudioParam) { l.delayTime = delayTime }

// SetFeedback replaces the feedback AudioParam.
func (l *Line) SetFeedback(feedback core.AudioParam) { l.feedback = feedback }

// SetMix replaces the mix AudioParam.
func (l *Line) SetMix(mix core.AudioParam) { l.mix = mix }

// Process reads/writes the delay ring and blends dry/wet into buf.
func (l *Line) Process(buf []float32, startSampleIndex uint64) {
	n := len(l.buffer)
	if n == 0 {
		return
	}
	lenF := float32(n)

	currentSampleIndex := startSampleIndex

	for start := 0; start < len(buf); start += paramChunkSize {
		end := start + paramChunkSize
		if end > len(buf) {
			end = len(buf)
		}
		chunk := buf[start:end]
		chunkLen := len(chunk)

		l.delayTime.Sample(l.delayBuf[:chunkLen], currentSampleIndex)
		l.feedback.Sample(l.fbBuf[:chunkLen], currentSampleIndex)
		l.mix.Sample(l.mixBuf[:chunkLen], currentSampleIndex)

		for i := range chunk {
			input := chunk[i]

			delaySeconds := l.delayBuf[i]
			fb := l.fbBuf[i]
			mix := l.mixBuf[i]

			delaySamples := delaySeconds * l.sampleRate
			readPtr := float32(l.writePtr) - delaySamples

			for readPtr < 0 {
				readPtr += lenF
			}
			for readPtr >= lenF {
				readPtr -= lenF
			}

			idxA := int(readPtr)
			idxB := (idxA + 1) % n
			frac := readPtr - float32(idxA)

			delayed := l.buffer[idxA]*(1-frac) + l.buffer[idxB]*frac
			nextVal := input + delayed*fb
			l.buffer[l.writePtr] = nextVal

			chunk[i] = input*(1-mix) + delayed*mix
			l.writePtr = (l.writePtr + 1) % n
		}

		currentSampleIndex += uint64(chunkLen)
	}
}

// SetSampleRate forwards to delay/feedback/mix and grows the ring if the
// new sample rate requires more samples to hold maxDelaySeconds.
func (l *Line) SetSampleRate(sr float32) {
	l.sampleRate = sr
	l.delayTime.SetSampleRate(sr)
	l.feedback.SetSampleRate(sr)
	l.mix.SetSampleRate(sr)

	newSize := int(l.maxDelaySeconds * sr)
	if newSize > len(l.buffer) {
		grown := make([]float32, newSize)
		copy(grown, l.buffer)
		l.buffer = grown
	}
}

// Reset clears the ring and rewinds the write pointer.
func (l *Line) Reset() {
	for i := range l.buffer {
		l.buffer[i] = 0
	}
	l.writePtr = 0
	l.delayTime.Reset()
	l.feedback.Reset()
	l.mix.Reset()
}

// LatencySamples is always 0: a feedback delay line is not a fixed
// lookahead buffer, so it reports no latency to wrap a ParallelMixer
// around.
func (l *Line) LatencySamples() uint32 { return 0 }
