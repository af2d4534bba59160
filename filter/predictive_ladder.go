package filter

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// PredictiveLadder is the linearized variant of Ladder: it estimates y4 in
// closed form rather than iterating Newton-Raphson, then applies a fast
// rational-approximation tanh once around that estimate. Faster than
// Ladder, slightly less accurate at extreme resonance.
type PredictiveLadder struct {
	cutoff, resonance core.AudioParam
	sampleRate        float32
	s                 [4]float32

	cutoffBuf, resBuf []float32
}

// NewPredictiveLadder creates a PredictiveLadder filter.
func NewPredictiveLadder(cutoff, resonance core.AudioParam) *PredictiveLadder {
	return &PredictiveLadder{cutoff: cutoff, resonance: resonance, sampleRate: 44100.0}
}

func fastTan(x float32) float32 {
	x2 := x * x
	return x * (1.0 + 0.333333*x2)
}

func fastTanh(x float32) float32 {
	x = clampF32(x, -3.0, 3.0)
	x2 := x * x
	return x * (27.0 + x2) / (27.0 + 9.0*x2)
}

func predictiveCalcCoeffs(c, r, sampleRate float32) (g, k, beta float32) {
	maxF := sampleRate * 0.49
	fc := clampF32(c, 10.0, maxF)
	g = fastTan(math.Pi * fc / sampleRate)
	k = r * 4.0
	beta = 1.0 / (1.0 + g)
	return
}

func predictiveStep(s *[4]float32, sample *float32, g, k, beta float32) {
	x := *sample

	gVal := g * beta
	s0 := s[0] * beta
	s1 := s[1] * beta
	s2 := s[2] * beta
	s3 := s[3] * beta

	g2 := gVal * gVal
	gamma := g2 * g2

	sigma := s3 + gVal*(s2+gVal*(s1+gVal*s0))

	yEst := (gamma*x + sigma) / (1.0 + k*gamma)

	u := x - k*fastTanh(yEst)

	v1 := gVal*u + s0
	v2 := gVal*v1 + s1
	v3 := gVal*v2 + s2
	v4 := gVal*v3 + s3

	s[0] = 2*v1 - s[0]
	s[1] = 2*v2 - s[1]
	s[2] = 2*v3 - s[2]
	s[3] = 2*v4 - s[3]

	*sample = v4
}

// Process filters buf in place.
func (p *PredictiveLadder) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)

	cutoffConst, cutoffIsConst := p.cutoff.GetConstant()
	resConst, resIsConst := p.resonance.GetConstant()

	if !cutoffIsConst {
		if len(p.cutoffBuf) < n {
			p.cutoffBuf = make([]float32, n)
		}
		p.cutoff.Sample(p.cutoffBuf[:n], sampleIndex)
	}
	if !resIsConst {
		if len(p.resBuf) < n {
			p.resBuf = make([]float32, n)
		}
		p.resonance.Sample(p.resBuf[:n], sampleIndex)
	}

	if cutoffIsConst && resIsConst {
		g, k, beta := predictiveCalcCoeffs(cutoffConst, resConst, p.sampleRate)
		for i := range buf {
			predictiveStep(&p.s, &buf[i], g, k, beta)
		}
		return
	}

	for i := range buf {
		c := cutoffConst
		if !cutoffIsConst {
			c = p.cutoffBuf[i]
		}
		r := resConst
		if !resIsConst {
			r = p.resBuf[i]
		}
		g, k, beta := predictiveCalcCoeffs(c, r, p.sampleRate)
		predictiveStep(&p.s, &buf[i], g, k, beta)
	}
}

// SetSampleRate forwards to the cutoff and resonance AudioParams.
func (p *PredictiveLadder) SetSampleRate(sr float32) {
	p.sampleRate = sr
	p.cutoff.SetSampleRate(sr)
	p.resonance.SetSampleRate(sr)
}

// Reset clears the filter's 4-pole state.
func (p *PredictiveLadder) Reset() {
	p.s = [4]float32{}
}

// LatencySamples is always 0.
func (p *PredictiveLadder) LatencySamples() uint32 { return 0 }
