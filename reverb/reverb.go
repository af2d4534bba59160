// Package reverb implements a stereo Schroeder reverb built from damped
// comb filters in parallel followed by allpass filters in series.
package reverb

import "github.com/kestrelaudio/dspcore/core"

// combTunings and allpassTunings are the canonical Schroeder ring lengths
// at 44.1kHz, scaled linearly to the active sample rate.
var combTunings = [4]float32{1116, 1188, 1277, 1356}
var combTunings2 = [4]float32{1422, 1491, 1557, 1617}
var allpassTunings = [4]float32{556, 441, 341, 225}

// rightChannelSpread is the stereo decorrelation offset, in samples, added
// to every right-channel ring length after sample-rate scaling; the offset
// itself is not scaled.
const rightChannelSpread = 23

// comb is a single damped feedback comb filter: a ring buffer, a one-pole
// damping state, and the feedback coefficient shared with its siblings.
type comb struct {
	buffer     []float32
	pos        int
	filterStep float32
}

func newComb(length int) *comb {
	if length < 1 {
		length = 1
	}
	return &comb{buffer: make([]float32, length)}
}

// process runs one sample through the comb: read the delayed sample, blend
// it into the damping state, write the input plus damped feedback, advance.
func (c *comb) process(x, feedback, damping float32) float32 {
	y := c.buffer[c.pos]
	c.filterStep = y*(1-damping) + c.filterStep*damping
	c.buffer[c.pos] = x + c.filterStep*feedback
	c.pos++
	if c.pos >= len(c.buffer) {
		c.pos = 0
	}
	return y
}

func (c *comb) reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.pos = 0
	c.filterStep = 0
}

func (c *comb) resize(length int) {
	if length < 1 {
		length = 1
	}
	if length == len(c.buffer) {
		return
	}
	c.buffer = make([]float32, length)
	c.pos = 0
	c.filterStep = 0
}

// allpass is a fixed-feedback (0.5) allpass filter used to diffuse the
// comb bank's output.
type allpass struct {
	buffer []float32
	pos    int
}

func newAllpass(length int) *allpass {
	if length < 1 {
		length = 1
	}
	return &allpass{buffer: make([]float32, length)}
}

func (a *allpass) process(x float32) float32 {
	bufOut := a.buffer[a.pos]
	y := -x + bufOut
	a.buffer[a.pos] = x + y*0.5
	a.pos++
	if a.pos >= len(a.buffer) {
		a.pos = 0
	}
	return y
}

func (a *allpass) reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.pos = 0
}

func (a *allpass) resize(length int) {
	if length < 1 {
		length = 1
	}
	if length == len(a.buffer) {
		return
	}
	a.buffer = make([]float32, length)
	a.pos = 0
}

// channelBank holds one channel's eight combs and four allpasses.
type channelBank struct {
	combs     [8]*comb
	allpasses [4]*allpass
}

func newChannelBank(sampleRate float32, spread, seed int) *channelBank {
	b := &channelBank{}
	srScale := sampleRate / 44100.0
	for i, l := range combTunings {
		b.combs[i] = newComb(scaledLength(l, srScale, spread, seed))
	}
	for i, l := range combTunings2 {
		b.combs[i+4] = newComb(scaledLength(l, srScale, spread, seed))
	}
	for i, l := range allpassTunings {
		b.allpasses[i] = newAllpass(scaledLength(l, srScale, spread, seed))
	}
	return b
}

func scaledLength(base, srScale float32, spread, seed int) int {
	n := int(base*srScale) + spread + seed*23
	if n < 1 {
		n = 1
	}
	return n
}

func (b *channelBank) resize(sampleRate float32, spread, seed int) {
	srScale := sampleRate / 44100.0
	for i, l := range combTunings {
		b.combs[i].resize(scaledLength(l, srScale, spread, seed))
	}
	for i, l := range combTunings2 {
		b.combs[i+4].resize(scaledLength(l, srScale, spread, seed))
	}
	for i, l := range allpassTunings {
		b.allpasses[i].resize(scaledLength(l, srScale, spread, seed))
	}
}

func (b *channelBank) reset() {
	for _, c := range b.combs {
		c.reset()
	}
	for _, a := range b.allpasses {
		a.reset()
	}
}

// process runs one sample through the eight parallel combs (summed) and
// then the four series allpasses.
func (b *channelBank) process(x, feedback, damping float32) float32 {
	var sum float32
	for _, c := range b.combs {
		sum += c.process(x, feedback, damping)
	}
	for _, a := range b.allpasses {
		sum = a.process(sum)
	}
	return sum
}

// Reverb is a stereo Schroeder reverb: eight combs and four allpasses per
// channel, the right channel's ring lengths spread by a fixed 23 samples
// (the spread is not scaled with sample rate) to decorrelate the two
// channels. It
// reports itself as 100% wet; callers compose with a ParallelMixer for
// dry/wet blending.
type Reverb struct {
	left, right       *channelBank
	roomSize, damping core.AudioParam
	sampleRate        float32
	seed              int

	roomBuf, dampBuf []float32
}

// NewReverb creates a Reverb. seed perturbs every ring length by
// seed*23 samples to decorrelate multiple reverb instances from each
// other.
func NewReverb(roomSize, damping core.AudioParam, seed int) *Reverb {
	sampleRate := float32(44100.0)
	return &Reverb{
		left:       newChannelBank(sampleRate, 0, seed),
		right:      newChannelBank(sampleRate, rightChannelSpread, seed),
		roomSize:   roomSize,
		damping:    damping,
		sampleRate: sampleRate,
		seed:       seed,
	}
}

// Process takes interleaved stereo input, downmixes to mono, and writes
// 100% wet reverb to both output channels. Room size and damping are
// sampled once per block (from the first frame), matching the original
// comb/allpass mesh's per-block (not per-sample) parameter granularity.
func (r *Reverb) Process(buf []float32, sampleIndex uint64) {
	frames := len(buf) / 2
	if frames == 0 {
		return
	}

	if len(r.roomBuf) < 1 {
		r.roomBuf = make([]float32, 1)
	}
	if len(r.dampBuf) < 1 {
		r.dampBuf = make([]float32, 1)
	}
	r.roomSize.Sample(r.roomBuf[:1], sampleIndex)
	r.damping.Sample(r.dampBuf[:1], sampleIndex)

	roomSize := clamp01(r.roomBuf[0], 0, 0.98)
	damping := clamp01(r.dampBuf[0], 0, 0.4)

	// Room size maps linearly to the feedback coefficient in [0.7, 0.98].
	feedback := 0.7 + roomSize*(0.98-0.7)/0.98

	for i := 0; i < frames; i++ {
		l := buf[2*i]
		rr := buf[2*i+1]
		mono := (l + rr) * 0.5 * 0.015

		wetL := r.left.process(mono, feedback, damping)
		wetR := r.right.process(mono, feedback, damping)

		buf[2*i] = wetL
		buf[2*i+1] = wetR
	}
}

func clamp01(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetSampleRate rescales every ring length and forwards to room size and
// damping.
func (r *Reverb) SetSampleRate(sr float32) {
	r.sampleRate = sr
	r.roomSize.SetSampleRate(sr)
	r.damping.SetSampleRate(sr)
	r.left.resize(sr, 0, r.seed)
	r.right.resize(sr, rightChannelSpread, r.seed)
}

// Reset clears every comb/allpass ring and damping state in both channels.
func (r *Reverb) Reset() {
	r.left.reset()
	r.right.reset()
	r.roomSize.Reset()
	r.damping.Reset()
}

// LatencySamples is always 0: the reverb has no fixed lookahead, only
// feedback decay.
func (r *Reverb) LatencySamples() uint32 { return 0 }
