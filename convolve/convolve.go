// Package convolve implements the block FFT overlap-add convolution
// engine spec §4.4.4 declares as the (core-external) consumer of
// fir.Instance kernels: given a kernel and per-channel input samples,
// it runs fast convolution and re-plans whenever the sample rate or
// the FIR generator's version changes.
package convolve

import (
	"github.com/doismellburning/valib/fir"
	"github.com/mjibson/go-dsp/fft"
)

// Engine performs streaming overlap-add convolution of one channel
// against a cached FIR kernel. Process returns one output sample per
// input sample from the first call on; no input is held back. The
// kernel's own length sets the delay Latency reports (kernel length
// minus one sample).
type Engine struct {
	cache *fir.Cache
	rate  int

	kernel   *fir.Instance
	fftSize  int
	kernelFD []complex128

	overlap []float64 // tail carried from the previous block
}

// NewEngine builds an Engine around gen. The kernel is not materialized
// until the first Process call, once the sample rate is known.
func NewEngine(gen fir.Gen) *Engine {
	return &Engine{cache: fir.NewCache(gen)}
}

// reopen re-plans the FFT for a (possibly) new kernel/rate, matching
// "reopen (re-plan) on sample-rate change or FIR version change".
func (e *Engine) reopen(rate int) {
	kernel := e.cache.Get(rate)
	if e.kernel == kernel && e.rate == rate {
		return
	}
	e.kernel = kernel
	e.rate = rate

	blockLen := 1024
	n := nextPow2(blockLen + kernel.Length() - 1)
	e.fftSize = n

	padded := make([]complex128, n)
	for i, v := range kernel.Data {
		padded[i] = complex(v, 0)
	}
	e.kernelFD = fft.FFT(padded)
	e.overlap = make([]float64, kernel.Length()-1)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Process runs in through the current kernel and returns the
// convolved output of the same length, handling overlap-add internally
// across calls. Process may be called with blocks of any length; the
// FFT block size is chosen internally.
func (e *Engine) Process(rate int, in []float64) []float64 {
	e.reopen(rate)

	n := e.fftSize
	blockLen := n - e.kernel.Length() + 1
	if blockLen < 1 {
		blockLen = 1
	}

	out := make([]float64, 0, len(in))
	pos := 0
	for pos < len(in) {
		end := pos + blockLen
		if end > len(in) {
			end = len(in)
		}
		block := in[pos:end]

		padded := make([]complex128, n)
		for i, v := range block {
			padded[i] = complex(v, 0)
		}
		spec := fft.FFT(padded)
		for i := range spec {
			spec[i] *= e.kernelFD[i]
		}
		timeDomain := fft.IFFT(spec)

		result := make([]float64, len(block)+len(e.overlap))
		copy(result, e.overlap)
		for i := range block {
			result[i] += real(timeDomain[i])
		}
		overlapStart := len(block)
		newOverlap := make([]float64, len(e.overlap))
		for i := range newOverlap {
			newOverlap[i] = real(timeDomain[overlapStart+i])
			if overlapStart+i < len(e.overlap) {
				// Older tail that reaches past this (short) block.
				newOverlap[i] += e.overlap[overlapStart+i]
			}
		}
		e.overlap = newOverlap

		out = append(out, result[:len(block)]...)
		pos = end
	}
	return out
}

// Latency is the number of samples introduced before output aligns
// with input, per the block-buffered timing rule: block size minus one
// sample, where "block size" here is the kernel length.
func (e *Engine) Latency() int {
	if e.kernel == nil {
		return 0
	}
	return e.kernel.Length() - 1
}
