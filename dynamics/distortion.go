package dynamics

import (
	"math"

	"github.com/kestrelaudio/dspcore/core"
)

// DistortionType selects the waveshaping algorithm Distortion applies.
type DistortionType int

const (
	// SoftClip applies tanh saturation.
	SoftClip DistortionType = iota
	// HardClip clamps to [-1, 1].
	HardClip
	// BitCrush quantizes to a reduced bit depth.
	BitCrush
	// Foldback wraps the signal back down using sine.
	Foldback
	// Asymmetric applies a different tanh curve to positive and negative
	// excursions.
	Asymmetric
)

// Distortion adds harmonics and saturation to a signal via one of several
// waveshaping algorithms, memoryless so it carries no internal state to
// reset.
type Distortion struct {
	drive, mix core.AudioParam
	distType   DistortionType
	bits       float32

	driveBuf, mixBuf []float32
}

// NewDistortion creates a Distortion. bits is only used by BitCrush and
// otherwise ignored.
func NewDistortion(drive, mix core.AudioParam, distType DistortionType, bits float32) *Distortion {
	return &Distortion{drive: drive, mix: mix, distType: distType, bits: bits}
}

// SetDrive replaces the drive AudioParam.
func (d *Distortion) SetDrive(drive core.AudioParam) { d.drive = drive }

// SetMix replaces the mix AudioParam.
func (d *Distortion) SetMix(mix core.AudioParam) { d.mix = mix }

// Process waveshapes buf per the configured DistortionType and blends
// dry/wet.
func (d *Distortion) Process(buf []float32, sampleIndex uint64) {
	n := len(buf)
	if len(d.driveBuf) < n {
		d.driveBuf = make([]float32, n)
	}
	if len(d.mixBuf) < n {
		d.mixBuf = make([]float32, n)
	}

	d.drive.Sample(d.driveBuf[:n], sampleIndex)
	d.mix.Sample(d.mixBuf[:n], sampleIndex)

	steps := float32(math.Pow(2, float64(d.bits)))

	for i, input := range buf {
		drive := d.driveBuf[i]
		mix := d.mixBuf[i]
		driven := input * drive

		var wet float32
		switch d.distType {
		case SoftClip:
			wet = float32(math.Tanh(float64(driven)))
		case HardClip:
			wet = clampF32(driven, -1, 1)
		case BitCrush:
			wet = float32(math.Round(float64(driven*steps))) / steps
		case Foldback:
			wet = float32(math.Sin(float64(driven)))
		case Asymmetric:
			if driven >= 0 {
				wet = float32(math.Tanh(float64(driven)))
			} else {
				wet = float32(math.Tanh(float64(driven*2))) * 0.5
			}
		}

		buf[i] = input*(1-mix) + wet*mix
	}
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetSampleRate forwards to drive/mix.
func (d *Distortion) SetSampleRate(sr float32) {
	d.drive.SetSampleRate(sr)
	d.mix.SetSampleRate(sr)
}

// Reset is a no-op: Distortion is memoryless.
func (d *Distortion) Reset() {}

// LatencySamples is always 0.
func (d *Distortion) LatencySamples() uint32 { return 0 }
