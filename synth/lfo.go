package synth

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// LfoWaveform selects the shape an Lfo generates. Unlike Oscillator's
// Waveform, Saw and Square here are naive (no PolyBLEP) since LFO output
// drives control-rate parameters, not audible signal content, and adds a
// SampleAndHold waveform that Oscillator has no equivalent of.
type LfoWaveform int

const (
	LfoSine LfoWaveform = iota
	LfoTriangle
	LfoSaw
	LfoSquare
	LfoSampleAndHold
)

// Lfo is a low-frequency modulation source: phase-accumulator driven, with
// an optional unipolar output range and a sample-and-hold waveform that
// latches a new random value at each phase wrap.
type Lfo struct {
	phase       float32
	frequency   core.AudioParam
	waveform    LfoWaveform
	unipolar    bool
	sampleRate  float32
	freqBuf     []float32
	rngState    uint32
	lastSHValue float32
	shTriggered bool
}

// NewLfo creates an Lfo at the given frequency and waveform.
func NewLfo(frequency core.AudioParam, waveform LfoWaveform) *Lfo {
	return &Lfo{
		frequency:  frequency,
		waveform:   waveform,
		sampleRate: 44100.0,
		rngState:   12345,
	}
}

// SetUnipolar selects between a 0..1 output range (true) and -1..1 (false,
// the default).
func (l *Lfo) SetUnipolar(unipolar bool) {
	l.unipolar = unipolar
}

func (l *Lfo) nextRandom() float32 {
	l.rngState = l.rngState*1103515245 + 12345
	val := (l.rngState >> 16) & 0x7FFF
	return (float32(val)/32768.0)*2.0 - 1.0
}

// Process generates one block of the configured waveform into buf.
func (l *Lfo) Process(buf []float32, sampleIndex uint64) {
	if len(l.freqBuf) != len(buf) {
		l.freqBuf = make([]float32, len(buf))
	}
	l.frequency.Sample(l.freqBuf, sampleIndex)

	for i := range buf {
		freq := l.freqBuf[i]
		inc := freq / l.sampleRate

		currentPhase := l.phase
		l.phase += inc
		if l.phase >= 1.0 {
			l.phase -= 1.0
			l.shTriggered = false
		}

		var val float32
		switch l.waveform {
		case LfoSine:
			val = float32(math.Sin(float64(currentPhase) * 2 * math.Pi))
		case LfoTriangle:
			if currentPhase < 0.5 {
				val = 4.0*currentPhase - 1.0
			} else {
				val = 4.0*(1.0-currentPhase) - 1.0
			}
		case LfoSaw:
			val = 2.0*currentPhase - 1.0
		case LfoSquare:
			val = -1.0
			if currentPhase < 0.5 {
				val = 1.0
			}
		case LfoSampleAndHold:
			if !l.shTriggered {
				l.lastSHValue = l.nextRandom()
				l.shTriggered = true
			}
			val = l.lastSHValue
		}

		if l.unipolar {
			val = val*0.5 + 0.5
		}

		buf[i] = val
	}
}

// SetSampleRate updates the phase increment's time base.
func (l *Lfo) SetSampleRate(sr float32) {
	l.sampleRate = sr
	l.frequency.SetSampleRate(sr)
}

// Reset returns the LFO to phase 0 and clears the sample-and-hold latch.
func (l *Lfo) Reset() {
	l.phase = 0
	l.shTriggered = false
}

// LatencySamples is always 0.
func (l *Lfo) LatencySamples() uint32 { return 0 }
