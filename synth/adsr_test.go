package synth

import (
	"testing"

	"github.com/kestrelaudio/dspcore/core"
	"github.com/stretchr/testify/assert"
)

func TestAdsrGateOpenRisesThroughAttackIntoSustain(t *testing.T) {
	gate := core.NewParameter(1.0)
	a := NewAdsr(core.LinkedParam(gate), core.Seconds(0.01), core.Seconds(0.01), core.Linear(0.5), core.Seconds(0.01))
	a.SetSampleRate(1000)

	buf := make([]float32, 200)
	a.Process(buf, 0)

	assert.Greater(t, buf[199], float32(0.0))
	assert.LessOrEqual(t, buf[199], float32(1.0))
}

func TestAdsrGateCloseEntersReleaseTowardZero(t *testing.T) {
	gate := core.NewParameter(1.0)
	a := NewAdsr(core.LinkedParam(gate), core.Seconds(0.001), core.Seconds(0.001), core.Linear(0.5), core.Seconds(0.01))
	a.SetSampleRate(1000)

	buf := make([]float32, 50)
	a.Process(buf, 0) // settle into sustain

	gate.Set(0.0)
	buf2 := make([]float32, 500)
	a.Process(buf2, 50)

	assert.Less(t, buf2[len(buf2)-1], float32(0.01))
}

func TestAdsrManualTriggerForcesAttackFromZero(t *testing.T) {
	gate := core.NewParameter(0.0)
	a := NewAdsr(core.LinkedParam(gate), core.Seconds(0.01), core.Seconds(0.01), core.Linear(0.5), core.Seconds(0.01))
	a.SetSampleRate(1000)
	a.Trigger().Fire()

	buf := make([]float32, 1)
	a.Process(buf, 0)
	assert.Greater(t, buf[0], float32(0.0))
}

func TestAdsrResetReturnsToIdleSilence(t *testing.T) {
	gate := core.NewParameter(1.0)
	a := NewAdsr(core.LinkedParam(gate), core.Seconds(0.01), core.Seconds(0.01), core.Linear(0.5), core.Seconds(0.01))
	a.SetSampleRate(1000)

	buf := make([]float32, 100)
	a.Process(buf, 0)
	a.Reset()

	assert.Equal(t, adsrIdle, a.state)
	assert.Equal(t, float32(0), a.currentLevel)
}
