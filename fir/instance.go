// Package fir implements the FIR generator/instance algebra: composable
// impulse-response generators with versioned caching and algebraic
// collapse so a chain of filters degrades to the cheapest equivalent
// kernel (spec §4.4).
package fir

// Kind is derived from an instance's data, never stored independently:
// classification is a pure function of length and taps.
type Kind int

const (
	KindZero Kind = iota
	KindIdentity
	KindGain
	KindCustom
)

// Instance is an immutable FIR kernel materialized for one sample rate.
// Center is the index of the kernel's time-zero tap, in [0, len(Data)).
type Instance struct {
	SampleRate int
	Center     int
	Data       []float64
}

// Kind derives the classification from Data, per spec §3: length-1 zero is Zero,
// length-1 one is Identity, any other length-1 is Gain, else Custom.
func (fi *Instance) Kind() Kind {
	if len(fi.Data) != 1 {
		return KindCustom
	}
	switch fi.Data[0] {
	case 0:
		return KindZero
	case 1:
		return KindIdentity
	default:
		return KindGain
	}
}

func (fi *Instance) Length() int { return len(fi.Data) }

// Gain returns the single coefficient for a length-1 kernel, and 0 for
// any other kernel (callers should check Kind first).
func (fi *Instance) Gain() float64 {
	if len(fi.Data) == 1 {
		return fi.Data[0]
	}
	return 0
}

// newInstance builds an Instance from its fields as given; no
// normalization is needed, since Kind() is derived from Data.
func newInstance(rate int, center int, data []float64) *Instance {
	return &Instance{SampleRate: rate, Center: center, Data: data}
}

// Gen is the generator contract: a parameter container with a
// monotonically increasing Version (changes iff a parameter change
// would alter the kernel) and Make, which materializes a concrete
// Instance for a sample rate.
type Gen interface {
	Version() uint64
	Make(sampleRate int) *Instance
}
