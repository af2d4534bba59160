package util

// TimedGate outputs 1.0 for a configured duration starting from the most
// recent trigger (or from construction, if never triggered), then 0.0.
// Tracks its own elapsed-frame counter rather than sampleIndex directly, so
// Trigger can restart the window independent of the caller's running
// sample position.
type TimedGate struct {
	durationSamples uint64
	sampleRate      float32
	elapsed         uint64
}

// NewTimedGate creates a TimedGate that stays high for durationSeconds.
func NewTimedGate(durationSeconds, sampleRate float32) *TimedGate {
	return &TimedGate{
		durationSamples: uint64(durationSeconds * sampleRate),
		sampleRate:      sampleRate,
	}
}

// Trigger resets the gate's internal counter so it opens for another
// duration starting at the next Process call.
func (g *TimedGate) Trigger() {
	g.elapsed = 0
}

// Process writes 1.0 while within the gate duration and 0.0 otherwise.
// channels is the number of interleaved channels per frame in buf.
func (g *TimedGate) Process(buf []float32, channels int) {
	frames := len(buf) / channels
	for f := 0; f < frames; f++ {
		var v float32
		if g.elapsed < g.durationSamples {
			v = 1.0
		}
		for c := 0; c < channels; c++ {
			buf[f*channels+c] = v
		}
		g.elapsed++
	}
}

// SetSampleRate rescales the configured duration to the new sample rate.
func (g *TimedGate) SetSampleRate(sr float32) {
	oldSR := g.sampleRate
	g.sampleRate = sr
	if oldSR > 0 {
		g.durationSamples = uint64(float32(g.durationSamples) * sr / oldSR)
	}
}

// Reset rewinds the elapsed counter, re-opening the gate.
func (g *TimedGate) Reset() {
	g.elapsed = 0
}

// LatencySamples is always 0.
func (g *TimedGate) LatencySamples() uint32 { return 0 }
