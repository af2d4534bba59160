package delay

import (
	"math"
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

// Delay identity+one at sr=100: a half-sample delay of an impulse spreads
// it evenly across its two interpolation neighbors.
func TestLineInterpolatesFractionalDelay(t *testing.T) {
	l := NewLine(1.0, core.Seconds(0.5/100.0), core.Linear(0.0), core.Linear(1.0))
	l.SetSampleRate(100)

	buf := []float32{1.0, 0.0, 0.0, 0.0}
	l.Process(buf, 0)

	assert.InDelta(t, 0.0, float64(buf[0]), 1e-5)
	assert.InDelta(t, 0.5, float64(buf[1]), 1e-5)
}

func TestLineMixZeroIsDrySignal(t *testing.T) {
	l := NewLine(1.0, core.Seconds(0.01), core.Linear(0.0), core.Linear(0.0))
	l.SetSampleRate(1000)
	buf := []float32{0.3, -0.7, 0.9}
	original := append([]float32(nil), buf...)
	l.Process(buf, 0)
	assert.Equal(t, original, buf)
}

func TestLineResetClearsRingAndPointer(t *testing.T) {
	l := NewLine(1.0, core.Seconds(0.01), core.Linear(0.0), core.Linear(1.0))
	l.SetSampleRate(1000)
	buf := []float32{1, 1, 1}
	l.Process(buf, 0)
	l.Reset()
	assert.Equal(t, 0, l.writePtr)
	for _, v := range l.buffer {
		assert.Equal(t, float32(0), v)
	}
}

func TestTapeDelayStaysFiniteWithDriveAndFeedback(t *testing.T) {
	td := NewTapeDelay(1.0, core.Seconds(0.05), core.Linear(0.6), core.Linear(0.5))
	td.SetDrive(core.Linear(1.0))
	td.SetSampleRate(8000)

	buf := make([]float32, 2000)
	buf[0] = 1.0
	td.Process(buf, 0)

	for _, v := range buf {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestPingPongDelayCrossFeedsChannels(t *testing.T) {
	pp := NewPingPongDelay(1.0, core.Seconds(0.01), core.Linear(1.0), core.Linear(1.0))
	pp.SetSampleRate(1000)

	buf := make([]float32, 60) // 30 stereo frames
	buf[0] = 1.0               // impulse on L at frame 0
	pp.Process(buf, 0)

	// The impulse leaves the left ring at frame 10 (0.01s @ 1000Hz) and is
	// fed into the right ring; 10 frames later the right channel carries it.
	assert.InDelta(t, 1.0, float64(buf[2*20+1]), 1e-5)
}
