package util

import (
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestOffsetAddsConstant(t *testing.T) {
	o := NewOffset(0.25)
	buf := []float32{0, 0.5, -0.5}
	o.Process(buf, 1, 0)
	assert.Equal(t, []float32{0.25, 0.75, -0.25}, buf)
}

func TestAddWritesSumOverwritingInput(t *testing.T) {
	a := NewAdd(core.StaticParam(2), core.StaticParam(3))
	buf := []float32{99, 99, 99}
	a.Process(buf, 0)
	assert.Equal(t, []float32{5, 5, 5}, buf)
}

func TestMultiplyWritesProductOverwritingInput(t *testing.T) {
	m := NewMultiply(core.StaticParam(2), core.StaticParam(3))
	buf := []float32{99, 99}
	m.Process(buf, 0)
	assert.Equal(t, []float32{6, 6}, buf)
}

func TestMapRangeLinearSpansMinToMax(t *testing.T) {
	mr := NewMapRange(core.StaticParam(0.5), core.StaticParam(0), core.StaticParam(10), CurveLinear)
	buf := []float32{0}
	mr.Process(buf, 0)
	assert.InDelta(t, 5.0, float64(buf[0]), 1e-6)
}

func TestMapRangeClampsInputToUnitRange(t *testing.T) {
	mr := NewMapRange(core.StaticParam(2.0), core.StaticParam(0), core.StaticParam(10), CurveLinear)
	buf := []float32{0}
	mr.Process(buf, 0)
	assert.InDelta(t, 10.0, float64(buf[0]), 1e-6)
}

func TestStereoPannerFullLeftSilencesRight(t *testing.T) {
	p := NewStereoPanner(core.StaticParam(-1))
	buf := []float32{1, 1}
	p.Process(buf, 0)
	assert.InDelta(t, 1.0, float64(buf[0]), 1e-5)
	assert.InDelta(t, 0.0, float64(buf[1]), 1e-5)
}

func TestStereoWidenerZeroWidthCollapsesToMono(t *testing.T) {
	w := NewStereoWidener(core.StaticParam(0))
	buf := []float32{1, -1}
	w.Process(buf, 0)
	assert.InDelta(t, float64(buf[0]), float64(buf[1]), 1e-6)
}

func TestTimedGateOpensThenClosesAndRetriggers(t *testing.T) {
	g := NewTimedGate(0.03, 100) // 3 samples open at a 100Hz sample rate
	buf := make([]float32, 5)
	g.Process(buf, 1)
	assert.Equal(t, []float32{1, 1, 1, 0, 0}, buf)

	g.Trigger()
	buf2 := make([]float32, 5)
	g.Process(buf2, 1)
	assert.Equal(t, []float32{1, 1, 1, 0, 0}, buf2)
}

func TestPassthroughLeavesBufferUnchanged(t *testing.T) {
	p := NewPassthrough()
	buf := []float32{1.0, -0.5, 0.0}
	original := append([]float32(nil), buf...)
	p.Process(buf, 0)
	assert.Equal(t, original, buf)
}

func TestDcSourceWritesConstantValue(t *testing.T) {
	d := NewDcSource(core.StaticParam(0.75))
	buf := make([]float32, 4)
	d.Process(buf, 0)
	for _, v := range buf {
		assert.Equal(t, float32(0.75), v)
	}
}
