package core

// MonoToStereo duplicates a mono processor's single channel of output to
// both stereo channels. The wrapped processor sees a frame-length mono
// scratch buffer filled from the left channel; its output is copied to both
// L and R of the interleaved stereo buffer passed to Process.
type MonoToStereo struct {
	inner   Processor
	scratch []float32
}

// NewMonoToStereo wraps a mono Processor for use in a stereo chain.
func NewMonoToStereo(inner Processor) *MonoToStereo {
	return &MonoToStereo{inner: inner}
}

func (m *MonoToStereo) Process(buffer []float32, sampleIndex uint64) {
	frames := len(buffer) / 2
	if cap(m.scratch) < frames {
		m.scratch = make([]float32, frames)
	}
	mono := m.scratch[:frames]
	for i := 0; i < frames; i++ {
		mono[i] = buffer[2*i]
	}
	m.inner.Process(mono, sampleIndex)
	for i := 0; i < frames; i++ {
		buffer[2*i] = mono[i]
		buffer[2*i+1] = mono[i]
	}
}

func (m *MonoToStereo) SetSampleRate(sr float32) { m.inner.SetSampleRate(sr) }
func (m *MonoToStereo) Reset()                   { m.inner.Reset() }
func (m *MonoToStereo) LatencySamples() uint32   { return m.inner.LatencySamples() }

// StereoToMono averages L and R down to a single channel, runs the wrapped
// mono processor, then expands the result back to both stereo channels —
// matching the original's "expand scratch to stereo, process, average back
// down" shape generalized so the wrapped processor always sees the
// averaged mono signal and both output channels receive identical output.
type StereoToMono struct {
	inner   Processor
	scratch []float32
}

// NewStereoToMono wraps a mono Processor so it can consume/produce stereo
// buffers, averaging L/R on input and duplicating the mono result to both
// channels on output.
func NewStereoToMono(inner Processor) *StereoToMono {
	return &StereoToMono{inner: inner}
}

func (s *StereoToMono) Process(buffer []float32, sampleIndex uint64) {
	frames := len(buffer) / 2
	if cap(s.scratch) < frames {
		s.scratch = make([]float32, frames)
	}
	mono := s.scratch[:frames]
	for i := 0; i < frames; i++ {
		mono[i] = (buffer[2*i] + buffer[2*i+1]) * 0.5
	}
	s.inner.Process(mono, sampleIndex)
	for i := 0; i < frames; i++ {
		buffer[2*i] = mono[i]
		buffer[2*i+1] = mono[i]
	}
}

func (s *StereoToMono) SetSampleRate(sr float32) { s.inner.SetSampleRate(sr) }
func (s *StereoToMono) Reset()                   { s.inner.Reset() }
func (s *StereoToMono) LatencySamples() uint32   { return s.inner.LatencySamples() }

// DualMono drives two independent mono processors on the L and R channels
// of an interleaved stereo buffer, de-interleaving into per-channel
// scratch buffers before processing and re-interleaving the results.
type DualMono struct {
	left, right   Processor
	leftBuf, rightBuf []float32
}

// NewDualMono creates a stereo Processor running independent left/right
// mono processors.
func NewDualMono(left, right Processor) *DualMono {
	return &DualMono{left: left, right: right}
}

func (d *DualMono) Process(buffer []float32, sampleIndex uint64) {
	frames := len(buffer) / 2
	if cap(d.leftBuf) < frames {
		d.leftBuf = make([]float32, frames)
	}
	if cap(d.rightBuf) < frames {
		d.rightBuf = make([]float32, frames)
	}
	l, r := d.leftBuf[:frames], d.rightBuf[:frames]
	for i := 0; i < frames; i++ {
		l[i] = buffer[2*i]
		r[i] = buffer[2*i+1]
	}
	d.left.Process(l, sampleIndex)
	d.right.Process(r, sampleIndex)
	for i := 0; i < frames; i++ {
		buffer[2*i] = l[i]
		buffer[2*i+1] = r[i]
	}
}

func (d *DualMono) SetSampleRate(sr float32) {
	d.left.SetSampleRate(sr)
	d.right.SetSampleRate(sr)
}

func (d *DualMono) Reset() {
	d.left.Reset()
	d.right.Reset()
}

func (d *DualMono) LatencySamples() uint32 {
	ll, rl := d.left.LatencySamples(), d.right.LatencySamples()
	if ll > rl {
		return ll
	}
	return rl
}
