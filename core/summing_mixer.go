package core

import "math"

// SummingMixer sums N child processors' outputs, then applies an optional
// per-frame gain and tanh soft-clip. Grounded on summing_mixer.rs: the
// first child processes directly into the output buffer, later children
// accumulate through a scratch buffer; the gain/soft-clip stage is skipped
// entirely when gain is a constant 1.0 and soft-clip is off.
type SummingMixer struct {
	inputs   []Processor
	gain     AudioParam
	softClip bool
	channels int

	scratch  []float32
	gainBuf  []float32
}

// NewSummingMixer creates a SummingMixer over the given inputs with unity
// gain and soft-clip disabled.
func NewSummingMixer(inputs []Processor) *SummingMixer {
	return &SummingMixer{inputs: inputs, gain: StaticParam(1.0), channels: 1}
}

// WithGain sets the output gain AudioParam and returns the mixer.
func (m *SummingMixer) WithGain(gain AudioParam) *SummingMixer {
	m.gain = gain
	return m
}

// WithSoftClip enables or disables the tanh soft-clip stage.
func (m *SummingMixer) WithSoftClip(enabled bool) *SummingMixer {
	m.softClip = enabled
	return m
}

// SetChannels configures frame-based addressing for the gain buffer (1 =
// mono, 2 = interleaved stereo).
func (m *SummingMixer) SetChannels(channels int) {
	m.channels = channels
}

// SetGain replaces the gain AudioParam.
func (m *SummingMixer) SetGain(gain AudioParam) { m.gain = gain }

// SetSoftClip toggles the soft-clip stage.
func (m *SummingMixer) SetSoftClip(enabled bool) { m.softClip = enabled }

func (m *SummingMixer) Process(buffer []float32, sampleIndex uint64) {
	if len(m.inputs) == 0 {
		for i := range buffer {
			buffer[i] = 0
		}
		return
	}

	m.inputs[0].Process(buffer, sampleIndex)

	if len(m.inputs) > 1 {
		if cap(m.scratch) < len(buffer) {
			m.scratch = make([]float32, len(buffer))
		}
		scratch := m.scratch[:len(buffer)]
		for _, in := range m.inputs[1:] {
			for i := range scratch {
				scratch[i] = 0
			}
			in.Process(scratch, sampleIndex)
			for i := range buffer {
				buffer[i] += scratch[i]
			}
		}
	}

	if v, ok := m.gain.GetConstant(); ok && v == 1.0 && !m.softClip {
		return
	}

	channels := m.channels
	if channels < 1 {
		channels = 1
	}
	frames := len(buffer) / channels
	if cap(m.gainBuf) < frames {
		m.gainBuf = make([]float32, frames)
	}
	gainBuf := m.gainBuf[:frames]
	m.gain.Sample(gainBuf, sampleIndex)

	for i := range buffer {
		frameIdx := i / channels
		v := buffer[i] * gainBuf[frameIdx]
		if m.softClip {
			v = float32(math.Tanh(float64(v)))
		}
		buffer[i] = v
	}
}

func (m *SummingMixer) SetSampleRate(sr float32) {
	for _, in := range m.inputs {
		in.SetSampleRate(sr)
	}
	m.gain.SetSampleRate(sr)
}

// Reset forwards to every input. The gain AudioParam is intentionally not
// reset here, matching the original's behavior of only resetting the
// summed inputs' history.
func (m *SummingMixer) Reset() {
	for _, in := range m.inputs {
		in.Reset()
	}
}

// LatencySamples reports the maximum of the children's latencies, 0 if
// there are no inputs.
func (m *SummingMixer) LatencySamples() uint32 {
	var max uint32
	for _, in := range m.inputs {
		if l := in.LatencySamples(); l > max {
			max = l
		}
	}
	return max
}
