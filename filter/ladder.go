package filter

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

type ladderCoeffs struct {
	g, k, g1, g2, g3, g4, beta float32
}

// Ladder is a 4-pole lowpass Moog-style ladder filter. Its non-linear
// feedback loop is solved each sample with exactly 5 fixed iterations of
// Newton-Raphson — empirically enough for audio-band stability even at
// high resonance, with no convergence check on the audio path.
type Ladder struct {
	cutoff, resonance core.AudioParam
	sampleRate        float32
	s                 [4]float32

	cutoffBuf, resBuf []float32
}

// NewLadder creates a Ladder filter.
func NewLadder(cutoff, resonance core.AudioParam) *Ladder {
	return &Ladder{cutoff: cutoff, resonance: resonance, sampleRate: 44100.0}
}

func ladderCalcCoeffs(cutoffVal, resVal, sampleRate float32) ladderCoeffs {
	fc := clampF32(cutoffVal, 10.0, sampleRate*0.49)
	g := float32(math.Tan(math.Pi * float64(fc) / float64(sampleRate)))
	k := resVal * 4.0

	g1 := g / (1.0 + g)
	g2 := g1 * g1
	g3 := g2 * g1
	g4 := g3 * g1

	beta := 1.0 / (1.0 + g)

	return ladderCoeffs{g: g, k: k, g1: g1, g2: g2, g3: g3, g4: g4, beta: beta}
}

func ladderStep(s *[4]float32, sample *float32, c ladderCoeffs) {
	x := *sample

	s1Term := s[0] * c.beta
	s2Term := s[1] * c.beta
	s3Term := s[2] * c.beta
	s4Term := s[3] * c.beta

	sigma := c.g3*s1Term + c.g2*s2Term + c.g1*s3Term + s4Term

	y4 := s[3]

	for i := 0; i < 5; i++ {
		tanhY4 := float32(math.Tanh(float64(y4)))
		u := x - c.k*tanhY4

		fY := y4 - (c.g4*u + sigma)
		dfY := 1.0 + c.g4*c.k*(1.0-tanhY4*tanhY4)

		y4 -= fY / dfY
	}

	tanhY4 := float32(math.Tanh(float64(y4)))
	u := x - c.k*tanhY4

	y1 := (c.g*u + s[0]) * c.beta
	y2 := (c.g*y1 + s[1]) * c.beta
	y3 := (c.g*y2 + s[2]) * c.beta

	s[0] = 2*y1 - s[0]
	s[1] = 2*y2 - s[1]
	s[2] = 2*y3 - s[2]
	s[3] = 2*y4 - s[3]

	*sample = y4
}

// Process filters buf in place.
func (l *Ladder) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)

	cutoffConst, cutoffIsConst := l.cutoff.GetConstant()
	resConst, resIsConst := l.resonance.GetConstant()

	if !cutoffIsConst {
		if len(l.cutoffBuf) < n {
			l.cutoffBuf = make([]float32, n)
		}
		l.cutoff.Sample(l.cutoffBuf[:n], sampleIndex)
	}
	if !resIsConst {
		if len(l.resBuf) < n {
			l.resBuf = make([]float32, n)
		}
		l.resonance.Sample(l.resBuf[:n], sampleIndex)
	}

	if cutoffIsConst && resIsConst {
		coeffs := ladderCalcCoeffs(cutoffConst, resConst, l.sampleRate)
		for i := range buf {
			ladderStep(&l.s, &buf[i], coeffs)
		}
		return
	}

	for i := range buf {
		c := cutoffConst
		if !cutoffIsConst {
			c = l.cutoffBuf[i]
		}
		r := resConst
		if !resIsConst {
			r = l.resBuf[i]
		}
		coeffs := ladderCalcCoeffs(c, r, l.sampleRate)
		ladderStep(&l.s, &buf[i], coeffs)
	}
}

// SetSampleRate forwards to the cutoff and resonance AudioParams.
func (l *Ladder) SetSampleRate(sr float32) {
	l.sampleRate = sr
	l.cutoff.SetSampleRate(sr)
	l.resonance.SetSampleRate(sr)
}

// Reset clears the filter's 4-pole state.
func (l *Ladder) Reset() {
	l.s = [4]float32{}
}

// LatencySamples is always 0.
func (l *Ladder) LatencySamples() uint32 { return 0 }
