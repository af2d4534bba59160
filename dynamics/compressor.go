// Package dynamics implements amplitude-dynamics processors: a
// feed-forward compressor (with a Limiter preset) and a multi-algorithm
// distortion stage.
package dynamics

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// Compressor is a feed-forward dynamic-range compressor: an envelope
// follower drives gain reduction above threshold at the given ratio, with
// independent attack/release smoothing and a final makeup gain.
type Compressor struct {
	thresholdDB, ratio, attackMs, releaseMs, makeupGainDB core.AudioParam
	sampleRate                                            float32

	attackCoeff, releaseCoeff, envelope float32

	thresholdBuf, ratioBuf, attackBuf, releaseBuf, makeupBuf []float32

	lastAttackBits, lastReleaseBits uint32
}

// NewCompressor creates a Compressor. thresholdDB is the level above
// which compression begins; ratio is the gain-reduction ratio (e.g. 4.0
// for 4:1).
func NewCompressor(thresholdDB, ratio core.AudioParam) *Compressor {
	c := &Compressor{
		thresholdDB:     thresholdDB,
		ratio:           ratio,
		attackMs:        core.Ms(10.0),
		releaseMs:       core.Ms(100.0),
		makeupGainDB:    core.StaticParam(0.0),
		sampleRate:      44100.0,
		lastAttackBits:  ^uint32(0),
		lastReleaseBits: ^uint32(0),
	}
	c.recalc(10.0, 100.0)
	return c
}

// NewLimiter creates a Compressor preset configured as a brickwall-ish
// limiter: near-threshold ceiling, high ratio, fast attack/release.
func NewLimiter() *Compressor {
	c := NewCompressor(core.StaticParam(-0.1), core.StaticParam(100.0))
	c.attackMs = core.StaticParam(1.0)
	c.releaseMs = core.StaticParam(50.0)
	c.recalc(1.0, 50.0)
	return c
}

// SetThreshold replaces the threshold (dB) AudioParam.
func (c *Compressor) SetThreshold(threshold core.AudioParam) { c.thresholdDB = threshold }

// SetRatio replaces the ratio AudioParam.
func (c *Compressor) SetRatio(ratio core.AudioParam) { c.ratio = ratio }

// SetAttack replaces the attack-time (ms) AudioParam.
func (c *Compressor) SetAttack(attack core.AudioParam) { c.attackMs = attack }

// SetRelease replaces the release-time (ms) AudioParam.
func (c *Compressor) SetRelease(release core.AudioParam) { c.releaseMs = release }

// SetMakeup replaces the makeup-gain (dB) AudioParam.
func (c *Compressor) SetMakeup(makeup core.AudioParam) { c.makeupGainDB = makeup }

func (c *Compressor) recalc(attackMs, releaseMs float32) {
	c.attackCoeff = float32(math.Exp(-1.0 / float64(attackMs*c.sampleRate*0.001)))
	c.releaseCoeff = float32(math.Exp(-1.0 / float64(releaseMs*c.sampleRate*0.001)))
}

// Process runs the envelope follower and gain-reduction curve over buf,
// taking the static/dynamic fast path when every parameter is constant
// for the block.
func (c *Compressor) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(c.thresholdBuf) < n {
		c.thresholdBuf = make([]float32, n)
	}
	if len(c.ratioBuf) < n {
		c.ratioBuf = make([]float32, n)
	}
	if len(c.attackBuf) < n {
		c.attackBuf = make([]float32, n)
	}
	if len(c.releaseBuf) < n {
		c.releaseBuf = make([]float32, n)
	}
	if len(c.makeupBuf) < n {
		c.makeupBuf = make([]float32, n)
	}

	c.thresholdDB.Sample(c.thresholdBuf[:n], sampleIndex)
	c.ratio.Sample(c.ratioBuf[:n], sampleIndex)
	c.attackMs.Sample(c.attackBuf[:n], sampleIndex)
	c.releaseMs.Sample(c.releaseBuf[:n], sampleIndex)
	c.makeupGainDB.Sample(c.makeupBuf[:n], sampleIndex)

	threshDB, threshOK := c.thresholdDB.GetConstant()
	ratio, ratioOK := c.ratio.GetConstant()
	attMs, attOK := c.attackMs.GetConstant()
	relMs, relOK := c.releaseMs.GetConstant()
	makeupDB, makeupOK := c.makeupGainDB.GetConstant()

	if threshOK && ratioOK && attOK && relOK && makeupOK {
		attBits := math.Float32bits(attMs)
		relBits := math.Float32bits(relMs)
		if attBits != c.lastAttackBits || relBits != c.lastReleaseBits {
			c.recalc(attMs, relMs)
			c.lastAttackBits = attBits
			c.lastReleaseBits = relBits
		}

		threshLinear := float32(math.Pow(10, float64(threshDB)/20))
		makeup := float32(math.Pow(10, float64(makeupDB)/20))
		invRatioSubOne := 1 - 1/ratio

		for i, input := range buf {
			buf[i] = c.stepGain(input, threshLinear, threshDB, invRatioSubOne, makeup)
		}
		return
	}

	for i := 0; i < n; i++ {
		threshDB := c.thresholdBuf[i]
		ratio := c.ratioBuf[i]
		attMs := c.attackBuf[i]
		relMs := c.releaseBuf[i]
		makeupDB := c.makeupBuf[i]

		attBits := math.Float32bits(attMs)
		relBits := math.Float32bits(relMs)
		if attBits != c.lastAttackBits || relBits != c.lastReleaseBits {
			c.recalc(attMs, relMs)
			c.lastAttackBits = attBits
			c.lastReleaseBits = relBits
		}

		threshLinear := float32(math.Pow(10, float64(threshDB)/20))
		makeup := float32(math.Pow(10, float64(makeupDB)/20))
		invRatioSubOne := 1 - 1/ratio

		buf[i] = c.stepGain(buf[i], threshLinear, threshDB, invRatioSubOne, makeup)
	}
}

func (c *Compressor) stepGain(input, threshLinear, threshDB, invRatioSubOne, makeup float32) float32 {
	absInput := float32(math.Abs(float64(input)))

	if absInput > c.envelope {
		c.envelope = c.attackCoeff*c.envelope + (1-c.attackCoeff)*absInput
	} else {
		c.envelope = c.releaseCoeff*c.envelope + (1-c.releaseCoeff)*absInput
	}

	gain := float32(1.0)
	if c.envelope > threshLinear {
		envDB := 20 * float32(math.Log10(float64(c.envelope)))
		overDB := envDB - threshDB
		gainDB := -overDB * invRatioSubOne
		gain = float32(math.Pow(10, float64(gainDB)/20))
	}

	return input * gain * makeup
}

// SetSampleRate forwards to every param and forces a coefficient recalc.
func (c *Compressor) SetSampleRate(sr float32) {
	c.sampleRate = sr
	c.thresholdDB.SetSampleRate(sr)
	c.ratio.SetSampleRate(sr)
	c.attackMs.SetSampleRate(sr)
	c.releaseMs.SetSampleRate(sr)
	c.makeupGainDB.SetSampleRate(sr)
	c.lastAttackBits = ^uint32(0)
	c.lastReleaseBits = ^uint32(0)
}

// Reset clears the envelope follower's state.
func (c *Compressor) Reset() {
	c.envelope = 0
	c.thresholdDB.Reset()
	c.ratio.Reset()
	c.attackMs.Reset()
	c.releaseMs.Reset()
	c.makeupGainDB.Reset()
}

// LatencySamples is always 0: the envelope follower introduces no fixed
// lookahead.
func (c *Compressor) LatencySamples() uint32 { return 0 }
