package fir

import (
	"github.com/doismellburning/valib/internal/winfn"
)

// FilterType selects which parametric response ParamFIR builds.
type FilterType int

const (
	LowPass FilterType = iota
	HighPass
	BandPass
	BandStop
)

// ParamFIR is a windowed-sinc generator for the LP/HP/BP/BS family
// (spec §4.4.2). F1 is the single cutoff for LowPass/HighPass, and the
// lower cutoff for BandPass/BandStop; F2 is the upper cutoff for
// BandPass/BandStop. DeltaF is the transition width. AttenuationDB is
// the target stopband attenuation. If Normalized, F1/F2/DeltaF are
// fractions of Nyquist (0..1); otherwise they are Hz and are
// normalized against the sample rate at Make time.
type ParamFIR struct {
	Type          FilterType
	F1, F2        float64
	DeltaF        float64
	AttenuationDB float64
	Normalized    bool
}

func (p ParamFIR) Version() uint64 { return 0 }

func (p ParamFIR) Make(rate int) *Instance {
	f1, f2, df := p.F1, p.F2, p.DeltaF
	if !p.Normalized {
		nyq := float64(rate) / 2
		f1 = p.F1 / nyq
		f2 = p.F2 / nyq
		df = p.DeltaF / nyq
	}

	if p.AttenuationDB <= 0 {
		return Identity{}.Make(rate)
	}

	switch p.Type {
	case LowPass:
		return lowPass(rate, f1, df, p.AttenuationDB)
	case HighPass:
		return highPass(rate, f1, df, p.AttenuationDB)
	case BandPass:
		return bandPass(rate, f1, f2, df, p.AttenuationDB)
	case BandStop:
		return bandStop(rate, f1, f2, df, p.AttenuationDB)
	default:
		return Identity{}.Make(rate)
	}
}

// degenerate cutoffs collapse per spec §4.4.2: cutoff at 0 -> Zero (LP)
// or Identity (HP); cutoff at Nyquist -> Identity (LP) or Zero (HP).

func lowPass(rate int, fc, df, atten float64) *Instance {
	if fc <= 0 {
		return Zero{}.Make(rate)
	}
	if fc >= 1 {
		return Identity{}.Make(rate)
	}
	return sincKernel(rate, fc, df, atten)
}

func highPass(rate int, fc, df, atten float64) *Instance {
	if fc <= 0 {
		return Identity{}.Make(rate)
	}
	if fc >= 1 {
		return Zero{}.Make(rate)
	}
	lp := sincKernel(rate, fc, df, atten)
	return complement(rate, lp)
}

func bandPass(rate int, f1, f2, df, atten float64) *Instance {
	if f2 <= f1 {
		return Zero{}.Make(rate)
	}
	lpHigh := sincKernel(rate, f2, df, atten)
	lpLow := sincKernel(rate, f1, df, atten)
	return subtract(rate, lpHigh, lpLow)
}

func bandStop(rate int, f1, f2, df, atten float64) *Instance {
	if f2 <= f1 {
		return Identity{}.Make(rate)
	}
	bp := bandPass(rate, f1, f2, df, atten)
	return complement(rate, bp)
}

// sincKernel builds a type-1 linear-phase Kaiser-windowed sinc low-pass
// kernel with cutoff fc (fraction of Nyquist, 0..1).
func sincKernel(rate int, fc, df float64, attenDB float64) *Instance {
	n := winfn.KaiserLength(attenDB, df/2)
	beta := winfn.KaiserBeta(attenDB)
	center := n / 2
	data := make([]float64, n)
	for j := 0; j < n; j++ {
		x := float64(j - center)
		ideal := fc * winfn.Sinc(fc*x)
		data[j] = ideal * winfn.Value(winfn.Kaiser, n, j, beta)
	}
	return &Instance{SampleRate: rate, Center: center, Data: data}
}

// complement returns delta[n-center] - k, the all-pass-minus-k
// response used to turn a low-pass into a high-pass or a band-pass into
// a band-stop.
func complement(rate int, k *Instance) *Instance {
	data := make([]float64, len(k.Data))
	copy(data, k.Data)
	for i := range data {
		data[i] = -data[i]
	}
	data[k.Center] += 1
	return &Instance{SampleRate: rate, Center: k.Center, Data: data}
}

// subtract aligns a and b on their centers and returns a - b, used to
// build a band-pass from the difference of two low-pass kernels.
func subtract(rate int, a, b *Instance) *Instance {
	center := a.Center
	if b.Center > center {
		center = b.Center
	}
	length := center + maxInt(len(a.Data)-a.Center, len(b.Data)-b.Center)
	data := make([]float64, length)
	for i, v := range a.Data {
		data[center-a.Center+i] += v
	}
	for i, v := range b.Data {
		data[center-b.Center+i] -= v
	}
	return &Instance{SampleRate: rate, Center: center, Data: data}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

