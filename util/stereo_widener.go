package util

import "github.com/kestrelaudio/dspcore/core"

// StereoWidener adjusts stereo width in the mid/side domain: width > 1
// widens the image, width < 1 narrows it, width = 0 collapses to mono.
type StereoWidener struct {
	width    core.AudioParam
	widthBuf []float32
}

// NewStereoWidener creates a StereoWidener.
func NewStereoWidener(width core.AudioParam) *StereoWidener {
	return &StereoWidener{width: width}
}

// Process widens or narrows buf (interleaved L,R,L,R,...) in place.
func (w *StereoWidener) Process(buf []float32, sampleIndex uint64) {
	frames := len(buf) / 2
	if len(w.widthBuf) < frames {
		w.widthBuf = make([]float32, frames)
	}
	widthSlice := w.widthBuf[:frames]
	w.width.Sample(widthSlice, sampleIndex)

	for i := 0; i < frames; i++ {
		l := buf[2*i]
		r := buf[2*i+1]

		mid := (l + r) * 0.5
		side := (l - r) * 0.5 * widthSlice[i]

		buf[2*i] = mid + side
		buf[2*i+1] = mid - side
	}
}

// SetSampleRate forwards to the width AudioParam.
func (w *StereoWidener) SetSampleRate(sr float32) { w.width.SetSampleRate(sr) }

// Reset forwards to the width AudioParam.
func (w *StereoWidener) Reset() { w.width.Reset() }

// LatencySamples is always 0.
func (w *StereoWidener) LatencySamples() uint32 { return 0 }
