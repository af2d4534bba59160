package core

// SerialProcessor composes two processors at construction time into a
// single node: process first then second on the same buffer, sum latency,
// forward Reset/SetSampleRate to both. This is the compile-time-fused
// binary-tree node spec.md §4.3 describes; nesting SerialProcessor values
// builds an arbitrarily deep static pipeline the compiler can inline, with
// identical semantics to the dynamic Chain in chain.go.
type SerialProcessor struct {
	first, second Processor
}

// NewSerialProcessor composes first then second into one Processor.
func NewSerialProcessor(first, second Processor) *SerialProcessor {
	return &SerialProcessor{first: first, second: second}
}

func (s *SerialProcessor) Process(buffer []float32, sampleIndex uint64) {
	s.first.Process(buffer, sampleIndex)
	s.second.Process(buffer, sampleIndex)
}

func (s *SerialProcessor) SetSampleRate(sr float32) {
	s.first.SetSampleRate(sr)
	s.second.SetSampleRate(sr)
}

func (s *SerialProcessor) Reset() {
	s.first.Reset()
	s.second.Reset()
}

func (s *SerialProcessor) LatencySamples() uint32 {
	return s.first.LatencySamples() + s.second.LatencySamples()
}

// StaticChain wraps a single Processor (built by nesting SerialProcessor)
// together with the sample rate it was configured at, offering the same
// And/AndMix/AndMixParam builder surface as the dynamic Chain but
// composing statically: each And call returns a new StaticChain wrapping
// a SerialProcessor of the old processor and the new one, rather than
// appending to a slice.
type StaticChain struct {
	processor  Processor
	sampleRate float32
}

// NewStaticChain seeds a StaticChain with a first processor.
func NewStaticChain(first Processor, sampleRate float32) *StaticChain {
	first.SetSampleRate(sampleRate)
	return &StaticChain{processor: first, sampleRate: sampleRate}
}

// And composes in the next processor, returning the fused chain.
func (s *StaticChain) And(next Processor) *StaticChain {
	next.SetSampleRate(s.sampleRate)
	return &StaticChain{processor: NewSerialProcessor(s.processor, next), sampleRate: s.sampleRate}
}

// AndMix composes in next wrapped with a fixed dry/wet mix.
func (s *StaticChain) AndMix(mix float32, next Processor) *StaticChain {
	return s.And(NewParallelMixer(StaticParam(mix), next))
}

// AndMixParam composes in next wrapped with a modulatable dry/wet mix.
func (s *StaticChain) AndMixParam(mix AudioParam, next Processor) *StaticChain {
	pm := NewParallelMixer(StaticParam(0), next)
	pm.SetMix(mix)
	return s.And(pm)
}

// ToStereo wraps the whole chain so it can be driven with interleaved
// stereo buffers, duplicating its mono output to both channels.
func (s *StaticChain) ToStereo() *MonoToStereo {
	return NewMonoToStereo(s.processor)
}

// ToMono wraps the whole chain so a stereo caller can drive it, averaging
// L/R down before processing and duplicating the result back out.
func (s *StaticChain) ToMono() *StereoToMono {
	return NewStereoToMono(s.processor)
}

func (s *StaticChain) Process(buffer []float32, sampleIndex uint64) {
	s.processor.Process(buffer, sampleIndex)
}

func (s *StaticChain) SetSampleRate(sr float32) {
	s.sampleRate = sr
	s.processor.SetSampleRate(sr)
}

func (s *StaticChain) Reset() { s.processor.Reset() }

func (s *StaticChain) LatencySamples() uint32 { return s.processor.LatencySamples() }
