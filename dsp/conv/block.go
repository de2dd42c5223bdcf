package conv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrEmptyKernel is returned when a convolver is created without coefficients.
	ErrEmptyKernel = errors.New("conv: empty kernel")
	// ErrBlockTooLarge is returned when a block exceeds the configured capacity.
	ErrBlockTooLarge = errors.New("conv: block exceeds configured capacity")
	// ErrLengthMismatch is returned when dst and src lengths differ.
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// BlockConvolver convolves independent sample blocks with a fixed kernel.
//
// Each Process call computes the zero-state causal convolution of the
// block, truncated to the block length: y[n] = sum h[k]*x[n-k] with
// x[<0] = 0. No history is kept between calls.
type BlockConvolver struct {
	kernelFFT []complex128
	kernelLen int
	maxBlock  int
	fftSize   int

	plan *algofft.Plan[complex128]
	work []complex128
}

// NewBlockConvolver creates a convolver for blocks of up to maxBlock
// samples. The FFT size is the next power of two covering a full linear
// convolution of maxBlock with the kernel.
func NewBlockConvolver(kernel []float64, maxBlock int) (*BlockConvolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if maxBlock <= 0 {
		return nil, fmt.Errorf("conv: maxBlock must be positive, got %d", maxBlock)
	}

	fftSize := nextPowerOf2(maxBlock + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	c := &BlockConvolver{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		maxBlock:  maxBlock,
		fftSize:   fftSize,
		plan:      plan,
		work:      make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(c.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return c, nil
}

// Process convolves src into dst. Both must have the same length, at most
// the configured capacity. dst and src may alias.
func (c *BlockConvolver) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), len(src))
	}
	if len(src) > c.maxBlock {
		return fmt.Errorf("%w: %d > %d", ErrBlockTooLarge, len(src), c.maxBlock)
	}
	if len(src) == 0 {
		return nil
	}

	for i := range c.work {
		c.work[i] = 0
	}
	for i, v := range src {
		c.work[i] = complex(v, 0)
	}

	if err := c.plan.Forward(c.work, c.work); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i := range c.work {
		c.work[i] *= c.kernelFFT[i]
	}

	if err := c.plan.Inverse(c.work, c.work); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// The leading len(src) samples of the linear convolution are exactly
	// the zero-state causal filter output; the tail past len(src) is the
	// kernel ring-out and is discarded.
	for i := range src {
		dst[i] = real(c.work[i])
	}

	return nil
}

// KernelLen returns the kernel length in taps.
func (c *BlockConvolver) KernelLen() int { return c.kernelLen }

// MaxBlock returns the maximum supported block length.
func (c *BlockConvolver) MaxBlock() int { return c.maxBlock }

// FFTSize returns the transform size.
func (c *BlockConvolver) FFTSize() int { return c.fftSize }

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
