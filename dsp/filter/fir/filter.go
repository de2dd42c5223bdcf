// Package fir provides a direct-form FIR filter runtime and a one-shot
// zero-state convolution helper. Coefficient design lives in
// dsp/filter/design; for long kernels over large blocks prefer the
// FFT-based convolver in dsp/conv.
package fir

import (
	"math"
	"math/cmplx"
)

// Filter applies pre-computed FIR coefficients to a sample stream using a
// circular-buffer delay line. State persists across calls until Reset.
type Filter struct {
	coeffs []float64
	delay  []float64
	pos    int
}

// New creates a FIR filter from the given coefficients. The slice is
// copied; the filter order is len(coeffs)-1.
func New(coeffs []float64) *Filter {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Filter{
		coeffs: c,
		delay:  make([]float64, len(coeffs)),
	}
}

// ProcessSample filters one input sample:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	f.delay[f.pos] = x
	var y float64
	n := len(f.coeffs)
	p := f.pos
	for k := range n {
		y += f.coeffs[k] * f.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}
	f.pos++
	if f.pos >= n {
		f.pos = 0
	}
	return y
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	for i := range f.delay {
		f.delay[i] = 0
	}
	f.pos = 0
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response at the given frequency
// (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	return KernelResponse(f.coeffs, freqHz, sampleRate)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// KernelResponse evaluates the frequency response of a raw coefficient
// sequence without constructing a Filter.
func KernelResponse(kernel []float64, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range kernel {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// Convolve computes the zero-state causal convolution of src with kernel
// into dst, truncated to len(src). Samples before the start of src are
// treated as zero. dst must be at least as long as src.
func Convolve(dst, src, kernel []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for n := range src {
		kmax := len(kernel) - 1
		if n < kmax {
			kmax = n
		}
		var y float64
		for k := 0; k <= kmax; k++ {
			y += kernel[k] * src[n-k]
		}
		dst[n] = y
	}
}
