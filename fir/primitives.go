package fir

import "math"

// zeroInstance and identityInstance are the module-scope static
// kernels, per spec §9 ("global generators -> module-scope constants
// with 'static lifetime"). Their Version is fixed.
var (
	zeroInstance     = &Instance{Center: 0, Data: []float64{0}}
	identityInstance = &Instance{Center: 0, Data: []float64{1}}
)

// Zero is the null generator: its kernel is always [0], at any sample
// rate.
type Zero struct{}

func (Zero) Version() uint64 { return 0 }
func (Zero) Make(rate int) *Instance {
	return &Instance{SampleRate: rate, Center: 0, Data: zeroInstance.Data}
}

// Identity passes its input through unmodified.
type Identity struct{}

func (Identity) Version() uint64 { return 0 }
func (Identity) Make(rate int) *Instance {
	return &Instance{SampleRate: rate, Center: 0, Data: identityInstance.Data}
}

// Gain scales the signal by a constant factor. Make collapses to Zero
// when G==0 and Identity when G==1, per spec §4.4.2.
type Gain struct {
	G float64
}

func (g Gain) Version() uint64 { return 0 }
func (g Gain) Make(rate int) *Instance {
	switch g.G {
	case 0:
		return Zero{}.Make(rate)
	case 1:
		return Identity{}.Make(rate)
	default:
		return &Instance{SampleRate: rate, Center: 0, Data: []float64{g.G}}
	}
}

// Delay is an integer-sample delay of Tau seconds. n==0 collapses to
// Identity.
type Delay struct {
	Tau float64
}

func (d Delay) Version() uint64 { return 0 }
func (d Delay) Make(rate int) *Instance {
	n := int(math.Round(d.Tau * float64(rate)))
	if n <= 0 {
		return Identity{}.Make(rate)
	}
	data := make([]float64, n+1)
	data[n] = 1
	return &Instance{SampleRate: rate, Center: 0, Data: data}
}

// Echo adds a delayed, scaled copy of the signal to itself: kernel
// [1, 0, ..., 0, G]. G==0 collapses to Identity; n==0 collapses to
// Gain(1+G).
type Echo struct {
	Tau float64
	G   float64
}

func (e Echo) Version() uint64 { return 0 }
func (e Echo) Make(rate int) *Instance {
	if e.G == 0 {
		return Identity{}.Make(rate)
	}
	n := int(math.Round(e.Tau * float64(rate)))
	if n <= 0 {
		return Gain{G: 1 + e.G}.Make(rate)
	}
	data := make([]float64, n+1)
	data[0] = 1
	data[n] = e.G
	return &Instance{SampleRate: rate, Center: 0, Data: data}
}
