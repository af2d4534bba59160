package core

// Chain is a runtime-extensible, dynamically dispatched sequence of
// processors applied serially, in place, to the same buffer and sample
// index — grounded on the teacher's preference for small composable
// interfaces (vst3go's dsp.Chain) generalized to the sum-latency,
// sample-rate-forwarding semantics spec.md §4.2 requires.
type Chain struct {
	processors []Processor
	sampleRate float32
}

// NewChain creates a Chain seeded with a first processor at the given
// sample rate.
func NewChain(first Processor, sampleRate float32) *Chain {
	c := &Chain{sampleRate: sampleRate}
	first.SetSampleRate(sampleRate)
	c.processors = append(c.processors, first)
	return c
}

// And appends a processor, forwarding the chain's current sample rate to
// it immediately.
func (c *Chain) And(p Processor) *Chain {
	p.SetSampleRate(c.sampleRate)
	c.processors = append(c.processors, p)
	return c
}

// AndMix appends a processor wrapped in a ParallelMixer with a fixed dry/
// wet mix amount.
func (c *Chain) AndMix(mix float32, p Processor) *Chain {
	return c.And(NewParallelMixer(StaticParam(mix), p))
}

// AndMixParam appends a processor wrapped in a ParallelMixer whose mix
// amount is itself modulatable.
func (c *Chain) AndMixParam(mix AudioParam, p Processor) *Chain {
	pm := NewParallelMixer(StaticParam(0), p)
	pm.SetMix(mix)
	return c.And(pm)
}

// Process applies every processor in order to the same buffer using the
// same sampleIndex, since each still represents frames starting at that
// time origin regardless of what an upstream node already wrote into it.
func (c *Chain) Process(buffer []float32, sampleIndex uint64) {
	for _, p := range c.processors {
		p.Process(buffer, sampleIndex)
	}
}

// SetSampleRate forwards to every child and updates the chain's recorded
// rate so subsequently appended processors pick it up too.
func (c *Chain) SetSampleRate(sr float32) {
	c.sampleRate = sr
	for _, p := range c.processors {
		p.SetSampleRate(sr)
	}
}

// Reset forwards to every child.
func (c *Chain) Reset() {
	for _, p := range c.processors {
		p.Reset()
	}
}

// LatencySamples is the sum over children, matching serial composition.
func (c *Chain) LatencySamples() uint32 {
	var total uint32
	for _, p := range c.processors {
		total += p.LatencySamples()
	}
	return total
}

// Len reports how many processors the chain currently holds.
func (c *Chain) Len() int { return len(c.processors) }
