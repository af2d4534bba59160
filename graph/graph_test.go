package graph

import (
	"strings"
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/kestrelaudio/dspcore/util"
	"github.com/stretchr/testify/assert"
)

func TestGraphAppliesNodesInOrderAndCountsNodes(t *testing.T) {
	g := New("gain-a", 1, util.NewGain(core.Linear(2)), 48000)
	g.And("gain-b", 1, util.NewGain(core.Linear(3)))

	buf := []float32{1, 1}
	g.Process(buf, 0)

	assert.Equal(t, []float32{6, 6}, buf)
	assert.Equal(t, 2, g.Len())
}

func TestGraphNodesCarryDistinctIdentity(t *testing.T) {
	g := New("a", 1, util.NewGain(core.Linear(1)), 44100)
	g.And("b", 1, util.NewGain(core.Linear(1)))

	nodes := g.Nodes()
	assert.Len(t, nodes, 2)
	assert.NotEqual(t, nodes[0].ID, nodes[1].ID)
	assert.Equal(t, "a", nodes[0].Name)
	assert.Equal(t, "b", nodes[1].Name)
}

func TestGraphFindLocatesNodeByName(t *testing.T) {
	g := New("input", 2, util.NewGain(core.Linear(1)), 44100)
	g.And("output", 2, util.NewGain(core.Linear(1)))

	assert.NotNil(t, g.Find("output"))
	assert.Nil(t, g.Find("missing"))
}

func TestGraphSetSampleRateForwardsToNewlyAddedNodes(t *testing.T) {
	g := New("a", 1, util.NewGain(core.Linear(1)), 44100)
	g.SetSampleRate(96000)
	g.And("b", 1, util.NewGain(core.Linear(1)))
	assert.Equal(t, float32(96000), g.sampleRate)
}

func TestGraphVisualizeIncludesEveryNodeNameAndChannelBadge(t *testing.T) {
	g := New("osc", 1, util.NewGain(core.Linear(1)), 44100)
	g.And("pan", 2, util.NewGain(core.Linear(1)))

	diagram := g.Visualize()
	assert.True(t, strings.Contains(diagram, "osc"))
	assert.True(t, strings.Contains(diagram, "pan"))
	assert.True(t, strings.Contains(diagram, "mono"))
	assert.True(t, strings.Contains(diagram, "stereo"))
	assert.True(t, strings.Contains(diagram, "Graph Start"))
	assert.True(t, strings.Contains(diagram, "Output"))
}
