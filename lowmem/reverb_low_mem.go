package lowmem

import "github.com/kestrelaudio/dspcore/core"

// combLowMem is a single i16-quantized, half-rate damped feedback comb.
type combLowMem struct {
	buffer []int16
	pos    int

	filterState float32
}

func newCombLowMem(size int) *combLowMem {
	downsampled := size / 2
	if downsampled < 1 {
		downsampled = 1
	}
	return &combLowMem{buffer: make([]int16, downsampled)}
}

// processDownsampled runs one half-rate sample through the comb: it
// operates once per two full-rate input samples (the caller averages
// pairs down to in before calling).
func (c *combLowMem) processDownsampled(in, feedback, damp, dampInv float32) float32 {
	delayed := float32(c.buffer[c.pos]) * i16ScaleInv

	newInput := in + c.filterState*feedback
	c.filterState = delayed*dampInv + c.filterState*damp

	toWrite := clampF32(newInput, -1, 1)
	c.buffer[c.pos] = int16(toWrite * i16Scale)

	c.pos++
	if c.pos >= len(c.buffer) {
		c.pos = 0
	}
	return delayed
}

func (c *combLowMem) reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.pos = 0
	c.filterState = 0
}

// allpassLowMem is a single i16-quantized, half-rate fixed-feedback
// allpass.
type allpassLowMem struct {
	buffer   []int16
	pos      int
	feedback float32
}

func newAllpassLowMem(size int) *allpassLowMem {
	downsampled := size / 2
	if downsampled < 1 {
		downsampled = 1
	}
	return &allpassLowMem{buffer: make([]int16, downsampled), feedback: 0.5}
}

func (a *allpassLowMem) processDownsampled(input float32) float32 {
	delayed := float32(a.buffer[a.pos]) * i16ScaleInv

	output := -input + delayed
	toStore := input + output*a.feedback

	a.buffer[a.pos] = int16(clampF32(toStore, -1, 1) * i16Scale)

	a.pos++
	if a.pos >= len(a.buffer) {
		a.pos = 0
	}
	return output
}

func (a *allpassLowMem) reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.pos = 0
}

var lowMemCombTuning = [8]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
var lowMemAllpassTuning = [4]int{556, 441, 341, 225}

const lowMemStereoSpread = 23

// ReverbLowMem is a memory-efficient stereo Schroeder reverb: the same
// eight-comb/four-allpass per-channel topology as reverb.Reverb, but with
// i16 ring storage and the comb/allpass mesh running at half the sample
// rate (restoring full rate by repeating the previous half-rate output on
// one frame and averaging it with the new one on the next), halving both
// memory and per-sample filter work.
type ReverbLowMem struct {
	combsL, combsR         [8]*combLowMem
	allpassesL, allpassesR [4]*allpassLowMem
	roomSize, damping      core.AudioParam
	sampleRate             float32

	phase                      int
	downsampleAccL, downsampleAccR float32
	lastOutL, lastOutR         float32

	paramBuf []float32
}

// NewReverbLowMem creates a ReverbLowMem with the default room size
// (0.8) and damping (0.2).
func NewReverbLowMem() *ReverbLowMem {
	return NewReverbLowMemWithParams(core.Linear(0.8), core.Linear(0.2), 0)
}

// NewReverbLowMemWithSeed creates a ReverbLowMem whose ring lengths are
// perturbed by seed samples, for decorrelating multiple instances.
func NewReverbLowMemWithSeed(seed int) *ReverbLowMem {
	return NewReverbLowMemWithParams(core.Linear(0.8), core.Linear(0.2), seed)
}

// NewReverbLowMemWithParams creates a ReverbLowMem with explicit room
// size and damping AudioParams and a decorrelation seed.
func NewReverbLowMemWithParams(roomSize, damping core.AudioParam, seed int) *ReverbLowMem {
	r := &ReverbLowMem{roomSize: roomSize, damping: damping, sampleRate: 44100.0}

	for i, t := range lowMemCombTuning {
		r.combsL[i] = newCombLowMem(t + seed)
		r.combsR[i] = newCombLowMem(t + lowMemStereoSpread + seed)
	}
	for i, t := range lowMemAllpassTuning {
		r.allpassesL[i] = newAllpassLowMem(t + seed)
		r.allpassesR[i] = newAllpassLowMem(t + lowMemStereoSpread + seed)
	}
	return r
}

// SetRoomSize replaces the room-size AudioParam.
func (r *ReverbLowMem) SetRoomSize(roomSize core.AudioParam) { r.roomSize = roomSize }

// SetDamping replaces the damping AudioParam.
func (r *ReverbLowMem) SetDamping(damping core.AudioParam) { r.damping = damping }

// Process takes interleaved stereo input, downsamples it 2:1 into the
// comb/allpass mesh, and writes 100% wet output at full rate to both
// channels: the previous half-rate output on phase-0 frames, the average
// of the previous and new half-rate outputs on phase-1 frames.
func (r *ReverbLowMem) Process(buf []float32, sampleIndex uint64) {
	if len(r.paramBuf) < 1 {
		r.paramBuf = make([]float32, 1)
	}

	r.roomSize.Sample(r.paramBuf[:1], sampleIndex)
	rawRS := r.paramBuf[0]*0.28 + 0.7
	rs := minF32(rawRS*1.02, 0.995)

	r.damping.Sample(r.paramBuf[:1], sampleIndex)
	dp := r.paramBuf[0] * 0.4
	dpInv := 1 - dp

	frames := len(buf) / 2
	for i := 0; i < frames; i++ {
		inputL := buf[2*i] * 0.015
		inputR := buf[2*i+1] * 0.015
		inputMix := (inputL + inputR) * 0.5

		if r.phase == 0 {
			r.downsampleAccL = inputMix
			r.downsampleAccR = inputMix
			r.phase = 1

			buf[2*i] = r.lastOutL
			buf[2*i+1] = r.lastOutR
		} else {
			inDown := (r.downsampleAccL + inputMix) * 0.5

			var outL, outR float32
			for _, c := range r.combsL {
				outL += c.processDownsampled(inDown, rs, dp, dpInv)
			}
			for _, c := range r.combsR {
				outR += c.processDownsampled(inDown, rs, dp, dpInv)
			}

			for _, a := range r.allpassesL {
				outL = a.processDownsampled(outL)
			}
			for _, a := range r.allpassesR {
				outR = a.processDownsampled(outR)
			}

			buf[2*i] = (r.lastOutL + outL) * 0.5
			buf[2*i+1] = (r.lastOutR + outR) * 0.5

			r.lastOutL = outL
			r.lastOutR = outR

			r.phase = 0
		}
	}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// SetSampleRate forwards to room size/damping. The comb/allpass mesh's
// ring lengths are fixed at construction (per-channel, per-seed), unlike
// reverb.Reverb, matching the original low-memory design's lack of a
// dynamic resize path.
func (r *ReverbLowMem) SetSampleRate(sr float32) {
	r.sampleRate = sr
	r.roomSize.SetSampleRate(sr)
	r.damping.SetSampleRate(sr)
}

// Reset clears every comb/allpass ring and downsample/hold state.
func (r *ReverbLowMem) Reset() {
	for _, c := range r.combsL {
		c.reset()
	}
	for _, c := range r.combsR {
		c.reset()
	}
	for _, a := range r.allpassesL {
		a.reset()
	}
	for _, a := range r.allpassesR {
		a.reset()
	}
	r.roomSize.Reset()
	r.damping.Reset()
	r.phase = 0
	r.downsampleAccL = 0
	r.downsampleAccR = 0
	r.lastOutL = 0
	r.lastOutR = 0
}

// LatencySamples is always 0.
func (r *ReverbLowMem) LatencySamples() uint32 { return 0 }
