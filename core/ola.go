package core

import "math"

// SpectralProcessor operates on one windowed frame of complex bins handed
// to it by an Ola framer. bins has length N (Ola's configured window
// size); sampleIndex is the frame count at the start of the analysis
// window the bins were taken from.
type SpectralProcessor interface {
	ProcessSpectral(bins []complex64, sampleIndex uint64)
}

// supportedOlaSizes enumerates the compile-time window sizes spec.md
// §4.11 allows.
var supportedOlaSizes = map[int]bool{256: true, 512: true, 1024: true, 2048: true}

// Ola is the overlap-add spectral framer of spec.md §4.11: Hann-windowed
// analysis at a fixed size N with 50% hop, an in-place radix-2 FFT, a
// caller-supplied SpectralProcessor operating on the bins, and inverse-FFT
// reconstruction via the conjugate trick. Ola reports N samples of
// inherent latency (the output queue is pre-filled with N zeros).
type Ola struct {
	n         int
	hop       int
	window    []float32
	processor SpectralProcessor

	inputQueue  []float32
	inputHead   int
	outputQueue []float32
	outputHead  int

	fftBuf   []complex64
	olaBuf   []float32
	sampleRate float32
	currentSampleIndex uint64
}

// NewOla constructs an Ola framer of window size n (must be one of 256,
// 512, 1024, 2048) driving the given SpectralProcessor.
func NewOla(n int, processor SpectralProcessor) (*Ola, error) {
	if !supportedOlaSizes[n] {
		return nil, &ConfigError{Msg: "ola: unsupported window size (must be 256, 512, 1024, or 2048)"}
	}
	o := &Ola{
		n:         n,
		hop:       n / 2,
		processor: processor,
		window:    make([]float32, n),
		fftBuf:    make([]complex64, n),
		olaBuf:    make([]float32, n),
	}
	for i := 0; i < n; i++ {
		o.window[i] = float32(0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1))))
	}
	o.outputQueue = make([]float32, n)
	return o, nil
}

func (o *Ola) Process(buffer []float32, sampleIndex uint64) {
	if len(o.inputQueue)-o.inputHead == 0 {
		o.currentSampleIndex = sampleIndex
	}

	o.inputQueue = append(o.inputQueue, buffer...)

	for len(o.inputQueue)-o.inputHead >= o.n {
		frame := o.inputQueue[o.inputHead : o.inputHead+o.n]
		for i := 0; i < o.n; i++ {
			o.fftBuf[i] = complex(frame[i]*o.window[i], 0)
		}

		fftInPlace(o.fftBuf)
		o.processor.ProcessSpectral(o.fftBuf, o.currentSampleIndex)
		ifftInPlace(o.fftBuf)

		for i := 0; i < o.n; i++ {
			o.olaBuf[i] += real(o.fftBuf[i])
		}

		o.outputQueue = append(o.outputQueue, o.olaBuf[:o.hop]...)

		copy(o.olaBuf, o.olaBuf[o.hop:])
		for i := o.n - o.hop; i < o.n; i++ {
			o.olaBuf[i] = 0
		}

		o.inputHead += o.hop
		o.currentSampleIndex += uint64(o.hop)
	}

	if o.inputHead > 0 && o.inputHead == len(o.inputQueue) {
		o.inputQueue = o.inputQueue[:0]
		o.inputHead = 0
	} else if o.inputHead > 4096 {
		o.inputQueue = append(o.inputQueue[:0], o.inputQueue[o.inputHead:]...)
		o.inputHead = 0
	}

	for i := range buffer {
		if o.outputHead < len(o.outputQueue) {
			buffer[i] = o.outputQueue[o.outputHead]
			o.outputHead++
		} else {
			buffer[i] = 0
		}
	}
	if o.outputHead > 0 {
		o.outputQueue = append(o.outputQueue[:0], o.outputQueue[o.outputHead:]...)
		o.outputHead = 0
	}
}

func (o *Ola) SetSampleRate(sr float32) { o.sampleRate = sr }

func (o *Ola) Reset() {
	o.inputQueue = o.inputQueue[:0]
	o.inputHead = 0
	o.outputQueue = append(o.outputQueue[:0], make([]float32, o.n)...)
	o.outputHead = 0
	for i := range o.olaBuf {
		o.olaBuf[i] = 0
	}
	o.currentSampleIndex = 0
}

// LatencySamples reports the N-sample analysis-window latency inherent to
// the output queue's zero pre-fill.
func (o *Ola) LatencySamples() uint32 { return uint32(o.n) }

// ConfigError marks a construction-time configuration fault per spec.md
// §7: these must never reach the audio path, only construction.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
