package physical

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// physBiQuad is a minimal resonance-lowpass biquad used to model lip
// reflectance in BrassModel; it only ever configures itself via
// setResonanceLowpass, never general LP/HP/BP coefficients.
type physBiQuad struct {
	b0, b1, b2, a1, a2 float32
	x1, x2, y1, y2     float32
}

func (p *physBiQuad) setResonanceLowpass(freq, radius, sampleRate float32) {
	normFreq := clampF32(2*math.Pi*freq/sampleRate, 0, math.Pi)

	p.a2 = radius * radius
	p.a1 = -2 * radius * float32(math.Cos(float64(normFreq)))
	p.b0 = 1 + p.a1 + p.a2
	p.b1 = 0
	p.b2 = 0
}

func (p *physBiQuad) process(input float32) float32 {
	out := p.b0*input + p.b1*p.x1 + p.b2*p.x2 - p.a1*p.y1 - p.a2*p.y2

	p.x2 = p.x1
	p.x1 = input
	p.y2 = p.y1
	p.y1 = out

	return out
}

// BrassModel is a waveguide physical model of a brass instrument: a lip
// reflectance filter driving a bore delay line, with breath-noise
// excitation, tanh saturation, and a simple bell-radiation high-pass.
type BrassModel struct {
	pitch, breathPressure, lipTension core.AudioParam

	delayLine  []float32
	writePtr   int
	sampleRate float32

	lipFilter                              physBiQuad
	dcBlocker, lpState, bellState, lastOut float32
	vibratoPhase                           float32

	pitchBuf, breathBuf, tensionBuf []float32

	rngState uint32
}

// NewBrassModel creates a BrassModel.
func NewBrassModel(pitch, breath, tension core.AudioParam) *BrassModel {
	sampleRate := float32(44100.0)
	bufferSize := int(sampleRate / 20.0)
	return &BrassModel{
		pitch:          pitch,
		breathPressure: breath,
		lipTension:     tension,
		delayLine:      make([]float32, bufferSize),
		sampleRate:     sampleRate,
		rngState:       12345,
	}
}

// SetPitch replaces the pitch AudioParam.
func (b *BrassModel) SetPitch(pitch core.AudioParam) { b.pitch = pitch }

// SetBreathPressure replaces the breath-pressure AudioParam.
func (b *BrassModel) SetBreathPressure(breath core.AudioParam) { b.breathPressure = breath }

// SetLipTension replaces the lip-tension AudioParam.
func (b *BrassModel) SetLipTension(tension core.AudioParam) { b.lipTension = tension }

// Process runs the waveguide loop: vibrato-modulated pitch drives the lip
// filter's corner frequency, breath pressure minus the bore's reflected
// pressure excites the lip, and the result feeds back through the bore
// delay and a bell-radiation filter.
func (b *BrassModel) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(b.pitchBuf) < n {
		b.pitchBuf = make([]float32, n)
	}
	if len(b.breathBuf) < n {
		b.breathBuf = make([]float32, n)
	}
	if len(b.tensionBuf) < n {
		b.tensionBuf = make([]float32, n)
	}

	b.pitch.Sample(b.pitchBuf[:n], sampleIndex)
	b.breathPressure.Sample(b.breathBuf[:n], sampleIndex)
	b.lipTension.Sample(b.tensionBuf[:n], sampleIndex)

	delayLen := len(b.delayLine)
	if delayLen == 0 {
		return
	}

	invSR := 1.0 / b.sampleRate

	for i := range buf {
		basePitch := b.pitchBuf[i]
		breath := b.breathBuf[i]
		tension := b.tensionBuf[i]

		b.vibratoPhase += 5.0 * invSR
		if b.vibratoPhase > 1.0 {
			b.vibratoPhase -= 1.0
		}

		vibDepth := 0.005 * breath
		vibrato := float32(math.Sin(float64(b.vibratoPhase)*2*math.Pi)) * vibDepth

		pitchVal := basePitch * (1 + vibrato)

		lipFreq := pitchVal * (1.01 + 0.05*tension)
		b.lipFilter.setResonanceLowpass(lipFreq, 0.996, b.sampleRate)

		period := maxF32(b.sampleRate/pitchVal, 2.0)
		readPos := modF32(float32(b.writePtr)-period+float32(delayLen), float32(delayLen))
		idxA := int(readPos)
		idxB := (idxA + 1) % delayLen
		frac := readPos - float32(idxA)
		boreOut := b.delayLine[idxA]*(1-frac) + b.delayLine[idxB]*frac

		deltaP := breath - boreOut*0.9
		lipPos := b.lipFilter.process(deltaP)

		threshold := float32(0.05)
		lipOpening := maxF32(lipPos-threshold, 0)

		noise := nextRandom(&b.rngState) * 0.02 * breath
		airflow := (breath + noise) * lipOpening

		saturated := float32(math.Tanh(float64(airflow)))

		lpCutoff := 0.1 + 0.6*breath
		b.lpState += lpCutoff * (saturated - b.lpState)

		acSignal := b.lpState - b.dcBlocker + 0.995*b.dcBlocker
		b.dcBlocker = b.lpState

		b.delayLine[b.writePtr] = acSignal

		rc := float32(1.0 / (2 * math.Pi * 250.0))
		dt := 1.0 / b.sampleRate
		alpha := rc / (rc + dt)
		bellOut := alpha * (b.bellState + acSignal - b.lastOut)
		b.bellState = bellOut
		b.lastOut = acSignal

		buf[i] = bellOut * 3.0

		b.writePtr = (b.writePtr + 1) % delayLen
	}
}

// SetSampleRate forwards to every param and grows the bore delay line.
func (b *BrassModel) SetSampleRate(sr float32) {
	b.sampleRate = sr
	b.pitch.SetSampleRate(sr)
	b.breathPressure.SetSampleRate(sr)
	b.lipTension.SetSampleRate(sr)

	bufferSize := int(sr / 20.0)
	if bufferSize > len(b.delayLine) {
		grown := make([]float32, bufferSize)
		copy(grown, b.delayLine)
		b.delayLine = grown
	}
}

// Reset clears the bore delay, filter states, and vibrato phase.
func (b *BrassModel) Reset() {
	for i := range b.delayLine {
		b.delayLine[i] = 0
	}
	b.writePtr = 0
	b.lipFilter = physBiQuad{}
	b.dcBlocker = 0
	b.lpState = 0
	b.bellState = 0
	b.lastOut = 0
	b.vibratoPhase = 0
	b.pitch.Reset()
	b.breathPressure.Reset()
	b.lipTension.Reset()
}

// LatencySamples is always 0.
func (b *BrassModel) LatencySamples() uint32 { return 0 }
