package fir

import (
	"math/cmplx"
	"sort"

	"github.com/doismellburning/valib/internal/winfn"
)

// Band is one (frequency, gain) point of a graphic equalizer.
type Band struct {
	Freq float64 // Hz
	Gain float64 // linear gain, 1.0 = unity
}

// EqFIR is a graphic equalizer generator: an ordered list of bands.
// One band collapses to Gain; more bands are realized as a single FIR
// whose frequency response passes through each band's (freq, gain)
// point within Ripple, via frequency-sampling design (spec §4.4.2).
// Ripple also acts as the minimum distinguishable step: bands closer
// than it in gain are merged.
type EqFIR struct {
	Bands  []Band
	Ripple float64 // max passband ripple, linear gain units
	Taps   int     // FIR length; 0 selects a reasonable default
}

func (e EqFIR) Version() uint64 { return 0 }

func (e EqFIR) Make(rate int) *Instance {
	bands := mergeBands(e.Bands, e.Ripple)
	if len(bands) == 0 {
		return Identity{}.Make(rate)
	}
	if len(bands) == 1 {
		return Gain{G: bands[0].Gain}.Make(rate)
	}

	n := e.Taps
	if n == 0 {
		n = 255
	}
	if n%2 == 0 {
		n++
	}
	center := n / 2
	nyq := float64(rate) / 2

	// Desired response at each DFT bin 0..n-1, piecewise-linear
	// interpolation between bands in frequency (extending the edge
	// bands' gain out to DC and Nyquist).
	desired := make([]float64, n)
	for k := 0; k < n; k++ {
		f := float64(k) / float64(n) * float64(rate)
		if f > nyq {
			f = float64(rate) - f // mirror for the upper half, real signal
		}
		desired[k] = interpBands(bands, f, nyq)
	}

	// Inverse DFT of the (real, symmetric) desired response, realized
	// directly via math/cmplx: n is a filter-design parameter (tens to
	// low hundreds of taps), not a streaming hot path, so the O(n^2)
	// sum is the right tool rather than reaching for a full FFT.
	data := make([]float64, n)
	for j := 0; j < n; j++ {
		var acc complex128
		for k := 0; k < n; k++ {
			theta := 2 * 3.14159265358979323846 * float64(k) * float64(j) / float64(n)
			acc += complex(desired[k], 0) * cmplx.Exp(complex(0, theta))
		}
		re := real(acc) / float64(n)
		// Shift so tap 0 holds the n/2-old sample: rotate by center.
		data[(j+center)%n] = re
	}

	beta := winfn.KaiserBeta(60)
	for j := 0; j < n; j++ {
		data[j] *= winfn.Value(winfn.Kaiser, n, j, beta)
	}

	return &Instance{SampleRate: rate, Center: center, Data: data}
}

func interpBands(bands []Band, f, nyq float64) float64 {
	if f <= bands[0].Freq {
		return bands[0].Gain
	}
	last := len(bands) - 1
	if f >= bands[last].Freq {
		return bands[last].Gain
	}
	for i := 0; i < last; i++ {
		if f >= bands[i].Freq && f <= bands[i+1].Freq {
			span := bands[i+1].Freq - bands[i].Freq
			if span <= 0 {
				return bands[i].Gain
			}
			t := (f - bands[i].Freq) / span
			return bands[i].Gain*(1-t) + bands[i+1].Gain*t
		}
	}
	return 1
}

// mergeBands sorts bands by frequency and merges adjacent bands whose
// gain differs by less than ripple, per spec's "ripple also acts as
// the minimum step size" rule.
func mergeBands(bands []Band, ripple float64) []Band {
	if len(bands) == 0 {
		return nil
	}
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Freq < sorted[j].Freq })

	if ripple <= 0 {
		return sorted
	}
	merged := []Band{sorted[0]}
	for _, b := range sorted[1:] {
		last := &merged[len(merged)-1]
		if abs(b.Gain-last.Gain) < ripple {
			continue // step too small to distinguish; drop it
		}
		merged = append(merged, b)
	}
	return merged
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
