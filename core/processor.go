package core

// Processor is the block-processing contract every DSP node honors,
// whether it participates in a dynamically dispatched Chain or a
// compile-time-fused static chain. Buffers are processed in place;
// sampleIndex gives the monotonic frame count at the buffer's first frame.
//
// Mono buffers carry one sample per frame. Stereo buffers are interleaved
// [L,R,L,R,...] and must have length divisible by two; this is a
// documented construction-time convention, not something the Go type
// system enforces (the method set is identical either way), so channel
// discipline is the caller's responsibility — see the Mono/Stereo adapters
// in channels.go for the supported conversions.
type Processor interface {
	// Process runs one block in place.
	Process(buffer []float32, sampleIndex uint64)

	// SetSampleRate is idempotent and may reallocate internal buffers. It
	// must be called before the first Process call and on any subsequent
	// sample rate change.
	SetSampleRate(sr float32)

	// Reset zeros internal history without touching configuration.
	Reset()

	// LatencySamples reports the constant per-instance integer latency
	// this processor adds, 0 unless the node inherently buffers (e.g. the
	// Ola framer's analysis-window latency).
	LatencySamples() uint32
}

// ProcessorFunc adapts a plain function to a stateless, zero-latency
// Processor. Reset and SetSampleRate are no-ops.
type ProcessorFunc func(buffer []float32, sampleIndex uint64)

func (f ProcessorFunc) Process(buffer []float32, sampleIndex uint64) { f(buffer, sampleIndex) }
func (f ProcessorFunc) SetSampleRate(float32)                        {}
func (f ProcessorFunc) Reset()                                       {}
func (f ProcessorFunc) LatencySamples() uint32                       { return 0 }
