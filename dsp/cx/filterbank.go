package cx

import (
	"fmt"

	"github.com/cwbudde/algo-cx/dsp/conv"
	"github.com/cwbudde/algo-cx/dsp/filter/design/sinc"
)

// FilterBank splits a sample block into phase-matched low and high bands.
//
// Both kernels are FIR with the same odd tap count, so the bands share an
// identical group delay and sum back to the (delayed) input. A recursive
// filter would be cheaper but would break that phase match and introduce
// comb filtering when the gain-modified bands are recombined.
//
// Each Split convolves with zero initial state; callers provide lead-in
// history through the block margin.
type FilterBank struct {
	lp   *conv.BlockConvolver
	hp   *conv.BlockConvolver
	taps int
}

// NewFilterBank designs the complementary kernel pair and prepares FFT
// convolvers for blocks of up to maxBlock samples.
func NewFilterBank(cutoffHz, sampleRate float64, taps, maxBlock int) (*FilterBank, error) {
	low, err := sinc.Lowpass(cutoffHz, sampleRate, taps)
	if err != nil {
		return nil, fmt.Errorf("cx: lowpass design: %w", err)
	}
	high, err := sinc.Highpass(cutoffHz, sampleRate, taps)
	if err != nil {
		return nil, fmt.Errorf("cx: highpass design: %w", err)
	}

	lp, err := conv.NewBlockConvolver(low, maxBlock)
	if err != nil {
		return nil, fmt.Errorf("cx: lowpass convolver: %w", err)
	}
	hp, err := conv.NewBlockConvolver(high, maxBlock)
	if err != nil {
		return nil, fmt.Errorf("cx: highpass convolver: %w", err)
	}

	return &FilterBank{lp: lp, hp: hp, taps: taps}, nil
}

// Split filters block into its low-band and high-band components. All
// three slices must have the same length, at most the configured block
// capacity.
func (fb *FilterBank) Split(low, high, block []float64) error {
	if err := fb.lp.Process(low, block); err != nil {
		return fmt.Errorf("cx: low band: %w", err)
	}
	if err := fb.hp.Process(high, block); err != nil {
		return fmt.Errorf("cx: high band: %w", err)
	}
	return nil
}

// Taps returns the kernel length shared by both bands.
func (fb *FilterBank) Taps() int { return fb.taps }
