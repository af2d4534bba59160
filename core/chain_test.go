package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainAppliesInOrderAndCountsProcessors(t *testing.T) {
	c := NewChain(gainProcessor{g: 2}, 48000)
	c.And(gainProcessor{g: 3})
	buf := []float32{1, 1}
	c.Process(buf, 0)
	assert.Equal(t, []float32{6, 6}, buf)
	assert.Equal(t, 2, c.Len())
}

func TestStaticChainMatchesDynamicChainSemantics(t *testing.T) {
	sc := NewStaticChain(gainProcessor{g: 0.5}, 48000)
	sc = sc.And(gainProcessor{g: 0.5})
	buf := []float32{1, 1, 1, 1}
	sc.Process(buf, 0)
	for _, v := range buf {
		assert.InDelta(t, 0.25, float64(v), 1e-6)
	}
}

func TestStaticChainToStereoDuplicatesOutput(t *testing.T) {
	sc := NewStaticChain(gainProcessor{g: 0.5}, 48000)
	stereo := sc.ToStereo()
	buf := []float32{1, 1, 1, 1}
	stereo.Process(buf, 0)
	for _, v := range buf {
		assert.InDelta(t, 0.5, float64(v), 1e-6)
	}
}
