package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaultsWhenNoArgsGiven(t *testing.T) {
	cfg, err := Parse(nil)
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig, cfg)
}

func TestParseReadsExplicitFlags(t *testing.T) {
	cfg, err := Parse([]string{"--sr", "96000", "--block", "128", "--graph", "reverb", "--seed", "7"})
	assert.NoError(t, err)
	assert.Equal(t, float32(96000), cfg.SampleRate)
	assert.Equal(t, 128, cfg.BlockSize)
	assert.Equal(t, "reverb", cfg.GraphName)
	assert.Equal(t, 7, cfg.Seed)
}

func TestParseSubstitutesDefaultForNonPositiveSampleRate(t *testing.T) {
	cfg, err := Parse([]string{"--sr", "-1"})
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig.SampleRate, cfg.SampleRate)
}

func TestParseSubstitutesDefaultForOutOfRangeBlockSize(t *testing.T) {
	cfg, err := Parse([]string{"--block", "0"})
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig.BlockSize, cfg.BlockSize)

	cfg, err = Parse([]string{"--block", "999999999"})
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig.BlockSize, cfg.BlockSize)
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--nonsense"})
	assert.Error(t, err)
}
