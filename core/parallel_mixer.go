package core

// ParallelMixer implements the dry/wet contract of spec.md §4.4: output =
// dry*(1-mix) + wet*mix, where wet is the wrapped processor's output and
// dry is the input delayed by the processor's reported latency so the two
// stay time-aligned. Grounded on the original's parallel_mixer.rs dry-
// buffer-snapshot/latency-ring shape, generalized to size the mix buffer
// by frame count (not sample count) so it behaves correctly for stereo —
// see SPEC_FULL.md §4 for why this differs from the original.
type ParallelMixer struct {
	processor Processor
	mix       AudioParam
	channels  int

	dryBuf   []float32
	mixBuf   []float32
	delayRing []float32
	writePtr int
}

// NewParallelMixer wraps processor with a dry/wet blend starting at the
// given fixed mix amount. Channels defaults to mono (1); call SetChannels
// if the wrapped processor is stereo.
func NewParallelMixer(mix AudioParam, processor Processor) *ParallelMixer {
	return &ParallelMixer{processor: processor, mix: mix, channels: 1}
}

// SetChannels configures the buffer's channel count (1 = mono, 2 =
// interleaved stereo) so the mix buffer is addressed per frame rather than
// per sample.
func (p *ParallelMixer) SetChannels(channels int) {
	p.channels = channels
}

// SetMix replaces the mix AudioParam.
func (p *ParallelMixer) SetMix(mix AudioParam) {
	p.mix = mix
}

func (p *ParallelMixer) Process(buffer []float32, sampleIndex uint64) {
	channels := p.channels
	if channels < 1 {
		channels = 1
	}
	frames := len(buffer) / channels

	if cap(p.dryBuf) < len(buffer) {
		p.dryBuf = make([]float32, len(buffer))
	}
	dry := p.dryBuf[:len(buffer)]
	copy(dry, buffer)

	if cap(p.mixBuf) < frames {
		p.mixBuf = make([]float32, frames)
	}
	mixBuf := p.mixBuf[:frames]
	p.mix.Sample(mixBuf, sampleIndex)

	latency := p.processor.LatencySamples()
	if latency > 0 {
		ringFrames := int(latency) + 4096
		ringLen := ringFrames * channels
		if cap(p.delayRing) < ringLen {
			old := p.delayRing
			p.delayRing = make([]float32, ringLen)
			copy(p.delayRing, old)
		}
		ring := p.delayRing[:ringLen]

		for i, v := range dry {
			ring[(p.writePtr+i)%ringLen] = v
		}

		p.processor.Process(buffer, sampleIndex)

		startRead := (p.writePtr - int(latency)*channels + ringLen*2) % ringLen
		for i := range buffer {
			frameIdx := i / channels
			m := mixBuf[frameIdx]
			delayedDry := ring[(startRead+i)%ringLen]
			buffer[i] = delayedDry*(1-m) + buffer[i]*m
		}

		p.writePtr = (p.writePtr + len(dry)) % ringLen
	} else {
		p.processor.Process(buffer, sampleIndex)
		for i := range buffer {
			frameIdx := i / channels
			m := mixBuf[frameIdx]
			buffer[i] = dry[i]*(1-m) + buffer[i]*m
		}
	}
}

func (p *ParallelMixer) SetSampleRate(sr float32) {
	p.processor.SetSampleRate(sr)
	p.mix.SetSampleRate(sr)
}

func (p *ParallelMixer) Reset() {
	p.processor.Reset()
	p.mix.Reset()
	for i := range p.delayRing {
		p.delayRing[i] = 0
	}
	p.writePtr = 0
}

// LatencySamples reports the wrapped processor's latency upward, the
// conservative resolution spec.md §9's Open Question names: downstream
// mixers can then compensate further.
func (p *ParallelMixer) LatencySamples() uint32 {
	return p.processor.LatencySamples()
}
