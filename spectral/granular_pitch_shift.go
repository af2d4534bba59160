package spectral

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// GranularPitchShift shifts pitch in the time domain by resampling two
// overlapping triangular-windowed grains read from a circular buffer at a
// phasor rate offset from real time.
type GranularPitchShift struct {
	buffer      []float32
	writePtr    int
	phasor      float32
	windowSize  float32
	semitones   core.AudioParam
	pitchFactor float32
	windowMs    float32
	sampleRate  float32

	semitonesBuf []float32
}

// NewGranularPitchShift creates a GranularPitchShift. windowMs is the
// grain size in milliseconds.
func NewGranularPitchShift(windowMs float32, semitones core.AudioParam) *GranularPitchShift {
	sampleRate := float32(44100.0)
	windowSize := windowMs * sampleRate / 1000.0
	bufferSize := int(sampleRate * 0.5)

	return &GranularPitchShift{
		buffer:      make([]float32, bufferSize),
		windowSize:  windowSize,
		semitones:   semitones,
		pitchFactor: 1.0,
		windowMs:    windowMs,
		sampleRate:  sampleRate,
	}
}

// SetSemitones replaces the pitch-shift-amount AudioParam.
func (g *GranularPitchShift) SetSemitones(semitones core.AudioParam) { g.semitones = semitones }

// Process reads two overlapping grains from the circular write buffer at
// a phasor-controlled delay and crossfades them with triangular windows.
func (g *GranularPitchShift) Process(buf []float32, sampleIndex uint64) {
	lenF := float32(len(g.buffer))

	if len(g.semitonesBuf) < len(buf) {
		g.semitonesBuf = make([]float32, len(buf))
	}
	g.semitones.Sample(g.semitonesBuf[:len(buf)], sampleIndex)

	for i := range buf {
		semitones := g.semitonesBuf[i]
		g.pitchFactor = float32(math.Pow(2, float64(semitones)/12))
		inc := 1 - g.pitchFactor

		input := buf[i]
		g.buffer[g.writePtr] = input

		g.phasor += inc
		if g.phasor >= g.windowSize {
			g.phasor -= g.windowSize
		} else if g.phasor < 0 {
			g.phasor += g.windowSize
		}

		delay1 := g.phasor
		r1 := float32(math.Mod(float64(float32(g.writePtr)-delay1+lenF), float64(lenF)))
		val1 := g.buffer[int(r1)]

		delay2 := g.phasor + g.windowSize*0.5
		if delay2 >= g.windowSize {
			delay2 -= g.windowSize
		}
		r2 := float32(math.Mod(float64(float32(g.writePtr)-delay2+lenF), float64(lenF)))
		val2 := g.buffer[int(r2)]

		x1 := delay1 / g.windowSize
		var gain1 float32
		if x1 < 0.5 {
			gain1 = 2 * x1
		} else {
			gain1 = 2 * (1 - x1)
		}

		x2 := delay2 / g.windowSize
		var gain2 float32
		if x2 < 0.5 {
			gain2 = 2 * x2
		} else {
			gain2 = 2 * (1 - x2)
		}

		buf[i] = val1*gain1 + val2*gain2

		g.writePtr = (g.writePtr + 1) % len(g.buffer)
	}
}

// SetSampleRate rescales the grain window and grows the ring buffer.
func (g *GranularPitchShift) SetSampleRate(sr float32) {
	g.sampleRate = sr
	g.semitones.SetSampleRate(sr)
	g.windowSize = g.windowMs * sr / 1000.0

	needed := int(sr * 0.5)
	if needed > len(g.buffer) {
		grown := make([]float32, needed)
		copy(grown, g.buffer)
		g.buffer = grown
	}
}

// Reset clears the ring buffer, the phasor, and the write pointer.
func (g *GranularPitchShift) Reset() {
	for i := range g.buffer {
		g.buffer[i] = 0
	}
	g.writePtr = 0
	g.phasor = 0
	g.semitones.Reset()
}

// LatencySamples is always 0: GranularPitchShift reads its own buffer on
// a phasor offset rather than a fixed lookahead.
func (g *GranularPitchShift) LatencySamples() uint32 { return 0 }
