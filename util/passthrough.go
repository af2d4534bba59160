package util

// Passthrough does nothing: the input signal passes through unchanged.
type Passthrough struct{}

// NewPassthrough creates a Passthrough.
func NewPassthrough() Passthrough { return Passthrough{} }

func (Passthrough) Process([]float32, uint64) {}
func (Passthrough) SetSampleRate(float32)     {}
func (Passthrough) Reset()                    {}
func (Passthrough) LatencySamples() uint32    { return 0 }
