package delay

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// PingPongDelay is a stereo delay where feedback cross-feeds between
// channels: the left channel's delayed output feeds the right channel's
// next write, and vice versa.
type PingPongDelay struct {
	leftBuffer, rightBuffer []float32
	writePtr                int
	delayTime               core.AudioParam
	feedback                core.AudioParam
	mix                     core.AudioParam
	maxDelaySeconds         float32
	sampleRate              float32

	delayBuf, fbBuf, mixBuf []float32
}

// NewPingPongDelay creates a PingPongDelay.
func NewPingPongDelay(maxDelaySeconds float32, delayTime, feedback, mix core.AudioParam) *PingPongDelay {
	sampleRate := float32(44100.0)
	size := int(maxDelaySeconds * sampleRate)
	return &PingPongDelay{
		leftBuffer:      make([]float32, size),
		rightBuffer:     make([]float32, size),
		delayTime:       delayTime,
		feedback:        feedback,
		mix:             mix,
		maxDelaySeconds: maxDelaySeconds,
		sampleRate:      sampleRate,
	}
}

// SetDelayTime replaces the delay-time AudioParam.
func (p *PingPongDelay) SetDelayTime(delayTime core.AudioParam) { p.delayTime = delayTime }

// SetFeedback replaces the feedback AudioParam.
func (p *PingPongDelay) SetFeedback(feedback core.AudioParam) { p.feedback = feedback }

// SetMix replaces the mix AudioParam.
func (p *PingPongDelay) SetMix(mix core.AudioParam) { p.mix = mix }

// Process cross-feeds buf (interleaved L,R,L,R,...) through the ping-pong
// rings. The delay time is sampled once per block at the first frame
// (matching the original's single-read-per-block simplification), while
// feedback and mix remain per-frame.
func (p *PingPongDelay) Process(buf []float32, sampleIndex uint64) {
	n := len(p.leftBuffer)
	if n == 0 {
		return
	}
	frames := len(buf) / 2

	if len(p.delayBuf) < frames {
		p.delayBuf = make([]float32, frames)
	}
	if len(p.fbBuf) < frames {
		p.fbBuf = make([]float32, frames)
	}
	if len(p.mixBuf) < frames {
		p.mixBuf = make([]float32, frames)
	}

	p.delayTime.Sample(p.delayBuf[:frames], sampleIndex)
	p.feedback.Sample(p.fbBuf[:frames], sampleIndex)
	p.mix.Sample(p.mixBuf[:frames], sampleIndex)

	currentDelayS := p.delayBuf[0]
	delaySamples := int(math.Round(float64(currentDelayS * p.sampleRate)))
	if delaySamples >= n {
		if n > 0 {
			delaySamples = n - 1
		} else {
			delaySamples = 0
		}
	}

	for i := 0; i < frames; i++ {
		inputL := buf[2*i]
		inputR := buf[2*i+1]

		fb := p.fbBuf[i]
		mix := p.mixBuf[i]

		readPtr := (p.writePtr + n - delaySamples) % n

		delayedL := p.leftBuffer[readPtr]
		delayedR := p.rightBuffer[readPtr]

		nextL := inputL + delayedR*fb
		nextR := inputR + delayedL*fb

		p.leftBuffer[p.writePtr] = nextL
		p.rightBuffer[p.writePtr] = nextR

		buf[2*i] = inputL*(1-mix) + delayedL*mix
		buf[2*i+1] = inputR*(1-mix) + delayedR*mix

		p.writePtr = (p.writePtr + 1) % n
	}
}

// SetSampleRate forwards to delay/feedback/mix and grows the rings if the
// new sample rate requires more samples to hold maxDelaySeconds.
func (p *PingPongDelay) SetSampleRate(sr float32) {
	p.sampleRate = sr
	p.delayTime.SetSampleRate(sr)
	p.feedback.SetSampleRate(sr)
	p.mix.SetSampleRate(sr)

	newSize := int(p.maxDelaySeconds * sr)
	if newSize > len(p.leftBuffer) {
		growL := make([]float32, newSize)
		growR := make([]float32, newSize)
		copy(growL, p.leftBuffer)
		copy(growR, p.rightBuffer)
		p.leftBuffer = growL
		p.rightBuffer = growR
	}
}

// Reset clears both rings and rewinds the write pointer.
func (p *PingPongDelay) Reset() {
	for i := range p.leftBuffer {
		p.leftBuffer[i] = 0
		p.rightBuffer[i] = 0
	}
	p.writePtr = 0
	p.delayTime.Reset()
	p.feedback.Reset()
	p.mix.Reset()
}

// LatencySamples is always 0.
func (p *PingPongDelay) LatencySamples() uint32 { return 0 }
