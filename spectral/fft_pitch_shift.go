// Package spectral implements pitch-shifting processors: an FFT-domain
// bin-resampling shifter riding atop core.Ola, and a time-domain granular
// shifter that needs no spectral framer.
package spectral

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// FftPitchShift is a core.SpectralProcessor that shifts pitch by
// resampling the spectrum along the bin axis, linearly interpolating the
// real and imaginary parts of neighbouring bins and preserving the
// Hermitian symmetry an inverse real FFT requires.
type FftPitchShift struct {
	n               int
	fftBuf, scratch []complex64
	semitones       core.AudioParam
	factor          float32
	semitonesBuf    []float32
}

// NewFftPitchShift creates an FftPitchShift for an Ola framer of window
// size n.
func NewFftPitchShift(n int, semitones core.AudioParam) *FftPitchShift {
	return &FftPitchShift{
		n:         n,
		fftBuf:    make([]complex64, n),
		scratch:   make([]complex64, n),
		semitones: semitones,
		factor:    1.0,
	}
}

// SetSemitones replaces the pitch-shift-amount AudioParam.
func (f *FftPitchShift) SetSemitones(semitones core.AudioParam) { f.semitones = semitones }

func (f *FftPitchShift) pitchShift() {
	for i := range f.scratch {
		f.scratch[i] = 0
	}

	halfN := f.n / 2

	for k := 0; k < halfN; k++ {
		srcKFloat := float32(k) / f.factor

		if srcKFloat < float32(halfN)-1.0 {
			idxA := int(srcKFloat)
			idxB := idxA + 1
			frac := srcKFloat - float32(idxA)

			valA := f.fftBuf[idxA]
			valB := f.fftBuf[idxB]

			re := real(valA)*(1-frac) + real(valB)*frac
			im := imag(valA)*(1-frac) + imag(valB)*frac

			val := complex(re, im)
			f.scratch[k] = val

			if k > 0 {
				f.scratch[f.n-k] = complex(re, -im)
			}
		}
	}
	copy(f.fftBuf, f.scratch)
}

// ProcessSpectral resamples bins along the frequency axis by the current
// pitch factor.
func (f *FftPitchShift) ProcessSpectral(bins []complex64, sampleIndex uint64) {
	if len(bins) != f.n {
		return
	}

	if len(f.semitonesBuf) < 1 {
		f.semitonesBuf = make([]float32, 1)
	}
	f.semitones.Sample(f.semitonesBuf[:1], sampleIndex)
	semitonesVal := f.semitonesBuf[0]

	f.factor = float32(math.Pow(2, float64(semitonesVal)/12))

	copy(f.fftBuf, bins)
	f.pitchShift()
	copy(bins, f.fftBuf)
}
