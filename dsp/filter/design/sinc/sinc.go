// Package sinc designs windowed-sinc FIR kernels.
//
// Lowpass builds a Hamming-windowed sinc kernel normalized to unity DC
// gain. Highpass is its spectral inverse (delayed delta minus lowpass),
// so a lowpass/highpass pair at the same cutoff sums to a pure delay:
// the two bands reconstruct the input with matched phase. Tap counts
// must be odd so the shared group delay is an integer sample count.
package sinc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cx/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Lowpass returns a windowed-sinc lowpass kernel with unity DC gain.
// taps must be odd and at least 3; cutoffHz must lie in (0, sampleRate/2).
func Lowpass(cutoffHz, sampleRate float64, taps int) ([]float64, error) {
	if err := validate(cutoffHz, sampleRate, taps); err != nil {
		return nil, err
	}

	center := (taps - 1) / 2
	fc := cutoffHz / sampleRate

	h := make([]float64, taps)
	for i := range h {
		n := float64(i - center)
		if n == 0 {
			h[i] = 2 * fc
		} else {
			h[i] = math.Sin(2*math.Pi*fc*n) / (math.Pi * n)
		}
	}

	window.Apply(window.TypeHamming, h)

	var sum float64
	for _, v := range h {
		sum += v
	}
	vecmath.ScaleBlock(h, h, 1/sum)

	return h, nil
}

// Highpass returns the spectral inverse of Lowpass at the same cutoff:
// hp[n] = delta[center] - lp[n]. The pair satisfies lp + hp = delayed
// delta exactly, which is what keeps the recombined bands phase-aligned.
func Highpass(cutoffHz, sampleRate float64, taps int) ([]float64, error) {
	h, err := Lowpass(cutoffHz, sampleRate, taps)
	if err != nil {
		return nil, err
	}

	vecmath.ScaleBlock(h, h, -1)
	h[(taps-1)/2] += 1

	return h, nil
}

func validate(cutoffHz, sampleRate float64, taps int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sinc: sample rate must be positive, got %v", sampleRate)
	}
	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 {
		return fmt.Errorf("sinc: cutoff must be in (0, %v), got %v", sampleRate/2, cutoffHz)
	}
	if taps < 3 || taps%2 == 0 {
		return fmt.Errorf("sinc: taps must be odd and >= 3, got %d", taps)
	}
	return nil
}
