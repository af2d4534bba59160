package core

// audioParamKind discriminates AudioParam's three variants. AudioParam is
// Go's answer to the Rust tagged union described in spec.md §4.1: a single
// struct carrying only the fields its current kind needs.
type audioParamKind int

const (
	paramStatic audioParamKind = iota
	paramLinked
	paramDynamic
)

// AudioParam is a value source for a parameter: either constant for the
// lifetime of the param (Static), loaded from a shared Parameter cell once
// per Sample call (Linked), or produced by an embedded mono sub-graph
// (Dynamic).
type AudioParam struct {
	kind  audioParamKind
	value float32
	param *Parameter
	gen   Processor
}

// StaticParam constructs a constant AudioParam.
func StaticParam(v float32) AudioParam {
	return AudioParam{kind: paramStatic, value: v}
}

// LinkedParam constructs an AudioParam that loads its value from a shared
// Parameter cell once per Sample call, holding that value for the block.
func LinkedParam(p *Parameter) AudioParam {
	return AudioParam{kind: paramLinked, param: p}
}

// DynamicParam constructs an AudioParam whose value is produced by a mono
// sub-graph, re-run every block.
func DynamicParam(gen Processor) AudioParam {
	return AudioParam{kind: paramDynamic, gen: gen}
}

// Hz, Ms, Seconds and Linear are pure naming aliases for StaticParam; they
// carry semantics, not distinct types, per spec.md §2's helper
// constructors.
func Hz(x float32) AudioParam      { return StaticParam(x) }
func Ms(x float32) AudioParam      { return StaticParam(x) }
func Seconds(x float32) AudioParam { return StaticParam(x) }
func Linear(x float32) AudioParam  { return StaticParam(x) }

// Sample fills out with per-sample values for the current block.
func (a *AudioParam) Sample(out []float32, sampleIndex uint64) {
	switch a.kind {
	case paramStatic:
		for i := range out {
			out[i] = a.value
		}
	case paramLinked:
		v := a.param.Get()
		for i := range out {
			out[i] = v
		}
	case paramDynamic:
		for i := range out {
			out[i] = 0
		}
		a.gen.Process(out, sampleIndex)
	}
}

// GetConstant reports (value, true) when the AudioParam is guaranteed not
// to change within the block (Static, or Linked sampled once at the start
// of the block), so hot loops can skip per-sample scratch reads. Dynamic
// always reports false.
func (a *AudioParam) GetConstant() (float32, bool) {
	switch a.kind {
	case paramStatic:
		return a.value, true
	case paramLinked:
		return a.param.Get(), true
	default:
		return 0, false
	}
}

// SetSampleRate forwards to an embedded sub-graph, if any.
func (a *AudioParam) SetSampleRate(sr float32) {
	if a.kind == paramDynamic {
		a.gen.SetSampleRate(sr)
	}
}

// Reset forwards to an embedded sub-graph, if any.
func (a *AudioParam) Reset() {
	if a.kind == paramDynamic {
		a.gen.Reset()
	}
}
