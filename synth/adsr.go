package synth

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

type adsrState int

const (
	adsrIdle adsrState = iota
	adsrAttack
	adsrDecay
	adsrSustain
	adsrRelease
)

// Adsr is an Attack/Decay/Sustain/Release envelope generator driven by a
// gate AudioParam and an optional manual Trigger. Time parameters are in
// seconds; sustain is a level in [0,1].
type Adsr struct {
	gate         core.AudioParam
	attackTime   core.AudioParam
	decayTime    core.AudioParam
	sustainLevel core.AudioParam
	releaseTime  core.AudioParam

	sampleRate   float32
	state        adsrState
	currentLevel float32
	lastGate     float32

	attackStep   float32
	decayCoeff   float32
	releaseCoeff float32

	lastAttackBits  uint32
	lastDecayBits   uint32
	lastReleaseBits uint32

	gateBuf, attackBuf, decayBuf, sustainBuf, releaseBuf []float32

	retrigger *core.Trigger
}

// NewAdsr creates an ADSR envelope with the given gate and time/level
// parameters.
func NewAdsr(gate, attackTime, decayTime, sustainLevel, releaseTime core.AudioParam) *Adsr {
	a := &Adsr{
		gate:            gate,
		attackTime:      attackTime,
		decayTime:       decayTime,
		sustainLevel:    sustainLevel,
		releaseTime:     releaseTime,
		sampleRate:      44100.0,
		state:           adsrIdle,
		lastAttackBits:  ^uint32(0),
		lastDecayBits:   ^uint32(0),
		lastReleaseBits: ^uint32(0),
		retrigger:       core.NewTrigger(),
	}
	a.recalc(0.01, 0.1, 0.1)
	return a
}

// Trigger returns the handle used to manually retrigger this envelope
// (e.g. from a MIDI note-on handler running off the audio thread).
func (a *Adsr) Trigger() *core.Trigger { return a.retrigger }

func (a *Adsr) recalc(attack, decay, release float32) {
	attackBits := math.Float32bits(attack)
	if attackBits != a.lastAttackBits {
		attackSamples := attack * a.sampleRate
		if attackSamples > 0 {
			a.attackStep = 1.0 / attackSamples
		} else {
			a.attackStep = 1.0
		}
		a.lastAttackBits = attackBits
	}

	decayBits := math.Float32bits(decay)
	if decayBits != a.lastDecayBits {
		decaySamples := decay * a.sampleRate
		if decaySamples > 0 {
			a.decayCoeff = float32(math.Exp(-1.0 / (float64(decaySamples) / 3.0)))
		} else {
			a.decayCoeff = 0
		}
		a.lastDecayBits = decayBits
	}

	releaseBits := math.Float32bits(release)
	if releaseBits != a.lastReleaseBits {
		releaseSamples := release * a.sampleRate
		if releaseSamples > 0 {
			a.releaseCoeff = float32(math.Exp(-1.0 / (float64(releaseSamples) / 3.0)))
		} else {
			a.releaseCoeff = 0
		}
		a.lastReleaseBits = releaseBits
	}
}

func growTo(buf []float32, n int) []float32 {
	if len(buf) < n {
		return make([]float32, n)
	}
	return buf
}

// Process generates one block of envelope level into buf.
func (a *Adsr) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	a.gateBuf = growTo(a.gateBuf, n)
	a.attackBuf = growTo(a.attackBuf, n)
	a.decayBuf = growTo(a.decayBuf, n)
	a.sustainBuf = growTo(a.sustainBuf, n)
	a.releaseBuf = growTo(a.releaseBuf, n)

	a.gate.Sample(a.gateBuf[:n], sampleIndex)
	a.attackTime.Sample(a.attackBuf[:n], sampleIndex)
	a.decayTime.Sample(a.decayBuf[:n], sampleIndex)
	a.sustainLevel.Sample(a.sustainBuf[:n], sampleIndex)
	a.releaseTime.Sample(a.releaseBuf[:n], sampleIndex)

	triggered := a.retrigger.TestAndClear()

	for i := range buf {
		gateVal := a.gateBuf[i]
		attack := a.attackBuf[i]
		decay := a.decayBuf[i]
		sustain := a.sustainBuf[i]
		release := a.releaseBuf[i]

		a.recalc(attack, decay, release)

		if triggered {
			a.state = adsrAttack
			a.currentLevel = 0
			triggered = false
		} else if gateVal >= 0.5 && a.lastGate < 0.5 {
			a.state = adsrAttack
		} else if gateVal < 0.5 && a.lastGate >= 0.5 {
			a.state = adsrRelease
		}
		a.lastGate = gateVal

		switch a.state {
		case adsrIdle:
			a.currentLevel = 0
		case adsrAttack:
			a.currentLevel += a.attackStep
			if a.currentLevel >= 1.0 {
				a.currentLevel = 1.0
				a.state = adsrDecay
			}
		case adsrDecay:
			a.currentLevel = sustain + (a.currentLevel-sustain)*a.decayCoeff
			if float32(math.Abs(float64(a.currentLevel-sustain))) < 1e-3 {
				a.currentLevel = sustain
				a.state = adsrSustain
			}
		case adsrSustain:
			a.currentLevel = sustain
		case adsrRelease:
			a.currentLevel *= a.releaseCoeff
			if a.currentLevel < 1e-4 {
				a.currentLevel = 0
				a.state = adsrIdle
			}
		}

		buf[i] = a.currentLevel
	}
}

// SetSampleRate forwards to all time-bearing parameters and forces a
// coefficient recompute on the next Process call.
func (a *Adsr) SetSampleRate(sr float32) {
	a.sampleRate = sr
	a.gate.SetSampleRate(sr)
	a.attackTime.SetSampleRate(sr)
	a.decayTime.SetSampleRate(sr)
	a.sustainLevel.SetSampleRate(sr)
	a.releaseTime.SetSampleRate(sr)
	a.lastAttackBits = ^uint32(0)
	a.lastDecayBits = ^uint32(0)
	a.lastReleaseBits = ^uint32(0)
}

// Reset returns the envelope to Idle with level 0.
func (a *Adsr) Reset() {
	a.state = adsrIdle
	a.currentLevel = 0
	a.lastGate = 0
}

// LatencySamples is always 0.
func (a *Adsr) LatencySamples() uint32 { return 0 }
