package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-cx/dsp/filter/fir"
	"github.com/cwbudde/algo-cx/internal/testutil"
)

func TestNewBlockConvolver_Validation(t *testing.T) {
	if _, err := NewBlockConvolver(nil, 64); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("empty kernel: got %v, want ErrEmptyKernel", err)
	}
	if _, err := NewBlockConvolver([]float64{1}, 0); err == nil {
		t.Error("zero maxBlock: expected error")
	}
}

func TestBlockConvolver_FFTSize(t *testing.T) {
	c, err := NewBlockConvolver(make([]float64, 255), 4096)
	if err != nil {
		t.Fatalf("NewBlockConvolver: %v", err)
	}
	// 4096 + 254 requires the next power of two, 8192.
	if c.FFTSize() != 8192 {
		t.Errorf("FFTSize: got %d, want 8192", c.FFTSize())
	}
	if c.KernelLen() != 255 || c.MaxBlock() != 4096 {
		t.Errorf("accessors: got %d/%d, want 255/4096", c.KernelLen(), c.MaxBlock())
	}
}

func TestProcess_Validation(t *testing.T) {
	c, err := NewBlockConvolver([]float64{1, 0.5}, 16)
	if err != nil {
		t.Fatalf("NewBlockConvolver: %v", err)
	}
	if err := c.Process(make([]float64, 4), make([]float64, 8)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("length mismatch: got %v", err)
	}
	if err := c.Process(make([]float64, 32), make([]float64, 32)); !errors.Is(err, ErrBlockTooLarge) {
		t.Errorf("oversized block: got %v", err)
	}
	if err := c.Process(nil, nil); err != nil {
		t.Errorf("empty block: got %v, want nil", err)
	}
}

func TestProcess_Impulse(t *testing.T) {
	kernel := []float64{0.5, -0.25, 0.125}
	c, err := NewBlockConvolver(kernel, 16)
	if err != nil {
		t.Fatalf("NewBlockConvolver: %v", err)
	}
	dst := make([]float64, 16)
	if err := c.Process(dst, testutil.Impulse(16, 0)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i := range dst {
		want := 0.0
		if i < len(kernel) {
			want = kernel[i]
		}
		if math.Abs(dst[i]-want) > 1e-12 {
			t.Errorf("sample %d: got %v, want %v", i, dst[i], want)
		}
	}
}

func TestProcess_MatchesDirectConvolution(t *testing.T) {
	kernel := testutil.DeterministicNoise(7, 0.5, 255)
	input := testutil.DeterministicNoise(11, 1.0, 4096)

	c, err := NewBlockConvolver(kernel, len(input))
	if err != nil {
		t.Fatalf("NewBlockConvolver: %v", err)
	}

	got := make([]float64, len(input))
	if err := c.Process(got, input); err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := make([]float64, len(input))
	fir.Convolve(want, input, kernel)

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-8)
}

func TestProcess_ZeroStatePerBlock(t *testing.T) {
	// Two identical blocks must produce identical output: no history leaks.
	kernel := []float64{0.25, 0.5, 0.25}
	input := testutil.DeterministicNoise(3, 1.0, 64)

	c, err := NewBlockConvolver(kernel, 64)
	if err != nil {
		t.Fatalf("NewBlockConvolver: %v", err)
	}

	first := make([]float64, 64)
	second := make([]float64, 64)
	if err := c.Process(first, input); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := c.Process(second, input); err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestProcess_ShortBlock(t *testing.T) {
	// Blocks shorter than capacity are supported.
	kernel := []float64{1, -1}
	c, err := NewBlockConvolver(kernel, 64)
	if err != nil {
		t.Fatalf("NewBlockConvolver: %v", err)
	}
	src := []float64{1, 3, 6}
	dst := make([]float64, 3)
	if err := c.Process(dst, src); err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := []float64{1, 2, 3}
	testutil.RequireSliceNearlyEqual(t, dst, want, 1e-10)
}

func BenchmarkProcess_255Taps4096(b *testing.B) {
	kernel := testutil.DeterministicNoise(7, 0.5, 255)
	input := testutil.DeterministicNoise(11, 1.0, 4096)
	c, err := NewBlockConvolver(kernel, len(input))
	if err != nil {
		b.Fatalf("NewBlockConvolver: %v", err)
	}
	dst := make([]float64, len(input))

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := c.Process(dst, input); err != nil {
			b.Fatal(err)
		}
	}
}
