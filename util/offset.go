package util

import "github.com/kestrelaudio/dspcore/core"

// Offset adds a per-frame DC value to every channel of each frame.
type Offset struct {
	offset    core.AudioParam
	offsetBuf []float32
}

// NewOffset creates an Offset with a constant value.
func NewOffset(offset float32) *Offset {
	return &Offset{offset: core.StaticParam(offset)}
}

// NewOffsetParam creates an Offset driven by an arbitrary AudioParam.
func NewOffsetParam(offset core.AudioParam) *Offset {
	return &Offset{offset: offset}
}

// Process adds the per-frame offset to every sample of buf.
func (o *Offset) Process(buf []float32, channels int, sampleIndex uint64) {
	frames := len(buf) / channels
	if len(o.offsetBuf) < frames {
		o.offsetBuf = make([]float32, frames)
	}
	offsetSlice := o.offsetBuf[:frames]

	if constant, ok := o.offset.GetConstant(); ok {
		for i := range buf {
			buf[i] += constant
		}
		return
	}

	o.offset.Sample(offsetSlice, sampleIndex)
	for i := range buf {
		buf[i] += offsetSlice[i/channels]
	}
}

// SetSampleRate forwards to the offset AudioParam.
func (o *Offset) SetSampleRate(sr float32) { o.offset.SetSampleRate(sr) }

// Reset forwards to the offset AudioParam.
func (o *Offset) Reset() { o.offset.Reset() }

// LatencySamples is always 0.
func (o *Offset) LatencySamples() uint32 { return 0 }

// MonoOffset adapts Offset to core.Processor for mono use.
type MonoOffset struct{ *Offset }

func NewMonoOffset(offset core.AudioParam) MonoOffset { return MonoOffset{NewOffsetParam(offset)} }

func (o MonoOffset) Process(buf []float32, sampleIndex uint64) { o.Offset.Process(buf, 1, sampleIndex) }

// StereoOffset adapts Offset to core.Processor for interleaved stereo use.
type StereoOffset struct{ *Offset }

func NewStereoOffset(offset core.AudioParam) StereoOffset {
	return StereoOffset{NewOffsetParam(offset)}
}

func (o StereoOffset) Process(buf []float32, sampleIndex uint64) {
	o.Offset.Process(buf, 2, sampleIndex)
}
