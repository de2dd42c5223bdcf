// Package conv provides FFT-based one-shot block convolution.
//
// BlockConvolver applies a fixed FIR kernel to independent blocks with
// zero initial state per block: callers that need continuity across
// blocks carry their own lead-in margin, which is the contract the cx
// expander relies on. The kernel spectrum is computed once; each block
// costs one forward and one inverse transform.
package conv
