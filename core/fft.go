package core

import "math"

// fftInPlace runs an iterative in-place radix-2 Cooley-Tukey forward FFT,
// unscaled. There is no inverse mode: ifftInPlace builds the inverse from
// this forward transform via the conjugate trick. len(a) must be a power
// of two.
//
// No third-party FFT library appears anywhere in the example corpus (the
// Rust original leans on the `microfft` crate, which has no Go
// equivalent among the examples); this is the one deliberately
// hand-written, stdlib-only kernel in the module — see DESIGN.md.
func fftInPlace(a []complex64) {
	n := len(a)
	if n <= 1 {
		return
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wLen := complex(float32(math.Cos(angle)), float32(math.Sin(angle)))
		for start := 0; start < n; start += length {
			w := complex64(1)
			half := length / 2
			for k := 0; k < half; k++ {
				u := a[start+k]
				v := a[start+k+half] * w
				a[start+k] = u + v
				a[start+k+half] = u - v
				w *= wLen
			}
		}
	}
}

// ifftInPlace computes the inverse FFT via the conjugate trick: conjugate,
// forward transform, conjugate again, divide by N.
func ifftInPlace(a []complex64) {
	n := len(a)
	for i := range a {
		a[i] = complex(real(a[i]), -imag(a[i]))
	}
	fftInPlace(a)
	invN := 1.0 / float32(n)
	for i := range a {
		a[i] = complex(real(a[i])*invN, -imag(a[i])*invN)
	}
}
