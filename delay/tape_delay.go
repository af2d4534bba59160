package delay

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// TapeDelay simulates a tape echo: wow/flutter pitch modulation, tanh
// saturation on drive, and a one-pole low-pass smoothing the delayed
// signal to taste like tape losses.
type TapeDelay struct {
	buffer          []float32
	writePtr        int
	delayTime       core.AudioParam
	feedback        core.AudioParam
	mix             core.AudioParam
	drive           core.AudioParam
	maxDelaySeconds float32
	sampleRate      float32

	lfoPhase, lfoInc, filterState float32

	delayBuf, fbBuf, mixBuf, driveBuf []float32
}

// NewTapeDelay creates a TapeDelay.
func NewTapeDelay(maxDelaySeconds float32, delayTime, feedback, mix core.AudioParam) *TapeDelay {
	sampleRate := float32(44100.0)
	size := int(maxDelaySeconds * sampleRate)
	return &TapeDelay{
		buffer:          make([]float32, size),
		delayTime:       delayTime,
		feedback:        feedback,
		mix:             mix,
		drive:           core.StaticParam(0),
		maxDelaySeconds: maxDelaySeconds,
		sampleRate:      sampleRate,
		lfoInc:          2 * math.Pi * 0.5 / sampleRate,
	}
}

// SetDelayTime replaces the delay-time AudioParam.
func (t *TapeDelay) SetDelayTime(delayTime core.AudioParam) { t.delayTime = delayTime }

// SetFeedback replaces the feedback AudioParam.
func (t *TapeDelay) SetFeedback(feedback core.AudioParam) { t.feedback = feedback }

// SetMix replaces the mix AudioParam.
func (t *TapeDelay) SetMix(mix core.AudioParam) { t.mix = mix }

// SetDrive replaces the saturation-drive AudioParam.
func (t *TapeDelay) SetDrive(drive core.AudioParam) { t.drive = drive }

// Process reads/writes the delay ring, applying wow/flutter, saturation,
// and low-pass smoothing, and blends dry/wet into buf.
func (t *TapeDelay) Process(buf []float32, sampleIndex uint64) {
	n := len(t.buffer)
	lenF := float32(n)
	blockSize := len(buf)

	if len(t.delayBuf) < blockSize {
		t.delayBuf = make([]float32, blockSize)
	}
	if len(t.fbBuf) < blockSize {
		t.fbBuf = make([]float32, blockSize)
	}
	if len(t.mixBuf) < blockSize {
		t.mixBuf = make([]float32, blockSize)
	}
	if len(t.driveBuf) < blockSize {
		t.driveBuf = make([]float32, blockSize)
	}

	t.delayTime.Sample(t.delayBuf[:blockSize], sampleIndex)
	t.feedback.Sample(t.fbBuf[:blockSize], sampleIndex)
	t.mix.Sample(t.mixBuf[:blockSize], sampleIndex)
	t.drive.Sample(t.driveBuf[:blockSize], sampleIndex)

	for i := range buf {
		input := buf[i]
		delayS := t.delayBuf[i]
		fb := t.fbBuf[i]
		mix := t.mixBuf[i]
		drive := t.driveBuf[i]

		t.lfoPhase += t.lfoInc
		if t.lfoPhase > 2*math.Pi {
			t.lfoPhase -= 2 * math.Pi
		}
		flutter := float32(math.Sin(float64(t.lfoPhase))) * 0.0005

		currentDelayS := delayS + flutter
		delaySamples := currentDelayS * t.sampleRate

		readPos := float32(math.Mod(float64(float32(t.writePtr)-delaySamples+lenF), float64(lenF)))
		idxA := int(readPos)
		idxB := (idxA + 1) % n
		frac := readPos - float32(idxA)

		delayed := t.buffer[idxA]*(1-frac) + t.buffer[idxB]*frac

		if drive > 0 {
			delayed = float32(math.Tanh(float64(delayed * (1 + drive))))
		}

		t.filterState += (delayed - t.filterState) * 0.3
		delayed = t.filterState

		t.buffer[t.writePtr] = input + delayed*fb

		buf[i] = input*(1-mix) + delayed*mix

		t.writePtr = (t.writePtr + 1) % n
	}
}

// SetSampleRate rescales the LFO rate and grows the ring if needed.
func (t *TapeDelay) SetSampleRate(sr float32) {
	oldSR := t.sampleRate
	t.sampleRate = sr
	t.delayTime.SetSampleRate(sr)
	t.feedback.SetSampleRate(sr)
	t.mix.SetSampleRate(sr)
	t.drive.SetSampleRate(sr)

	t.lfoInc = t.lfoInc * oldSR / sr

	newSize := int(t.maxDelaySeconds * sr)
	if newSize > len(t.buffer) {
		grown := make([]float32, newSize)
		copy(grown, t.buffer)
		t.buffer = grown
	}
}

// Reset clears the ring, LFO phase, and filter state.
func (t *TapeDelay) Reset() {
	for i := range t.buffer {
		t.buffer[i] = 0
	}
	t.writePtr = 0
	t.lfoPhase = 0
	t.filterState = 0
}

// LatencySamples is always 0.
func (t *TapeDelay) LatencySamples() uint32 { return 0 }
