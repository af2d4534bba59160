package util

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// Curve selects the shape MapRange uses to interpolate between min and max.
type Curve int

const (
	CurveLinear Curve = iota
	CurveExponential
)

// MapRange maps an input signal in [0,1] into [min,max], either linearly or
// with an exponential curve (min·(max/min)^t, falling back to linear
// unless both min and max are positive).
type MapRange struct {
	input, min, max          core.AudioParam
	curve                    Curve
	inputBuf, minBuf, maxBuf []float32
}

// NewMapRange creates a MapRange processor.
func NewMapRange(input, min, max core.AudioParam, curve Curve) *MapRange {
	return &MapRange{input: input, min: min, max: max, curve: curve}
}

// Process writes the mapped value of each sample into buf.
func (m *MapRange) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(m.inputBuf) < n {
		m.inputBuf = make([]float32, n)
	}
	if len(m.minBuf) < n {
		m.minBuf = make([]float32, n)
	}
	if len(m.maxBuf) < n {
		m.maxBuf = make([]float32, n)
	}

	m.input.Sample(m.inputBuf[:n], sampleIndex)
	m.min.Sample(m.minBuf[:n], sampleIndex)
	m.max.Sample(m.maxBuf[:n], sampleIndex)

	for i := range buf {
		in := m.inputBuf[i]
		if in < 0 {
			in = 0
		} else if in > 1 {
			in = 1
		}
		minVal := m.minBuf[i]
		maxVal := m.maxBuf[i]

		switch m.curve {
		case CurveExponential:
			if minVal > 0 && maxVal > 0 {
				buf[i] = minVal * pow32(maxVal/minVal, in)
			} else {
				buf[i] = minVal + in*(maxVal-minVal)
			}
		default:
			buf[i] = minVal + in*(maxVal-minVal)
		}
	}
}

func pow32(base, exp float32) float32 {
	if base == 0 {
		return 0
	}
	return float32(math.Pow(float64(base), float64(exp)))
}

// SetSampleRate forwards to all three AudioParams.
func (m *MapRange) SetSampleRate(sr float32) {
	m.input.SetSampleRate(sr)
	m.min.SetSampleRate(sr)
	m.max.SetSampleRate(sr)
}

// Reset forwards to all three AudioParams.
func (m *MapRange) Reset() {
	m.input.Reset()
	m.min.Reset()
	m.max.Reset()
}

// LatencySamples is always 0.
func (m *MapRange) LatencySamples() uint32 { return 0 }
