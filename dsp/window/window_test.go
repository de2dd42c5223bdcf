package window

import (
	"math"
	"testing"
)

const eps = 1e-12

func TestGenerate_Lengths(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Errorf("length 0: got %v, want nil", got)
	}
	if got := Generate(TypeHann, -4); got != nil {
		t.Errorf("negative length: got %v, want nil", got)
	}
	got := Generate(TypeHamming, 1)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("length 1: got %v, want [1]", got)
	}
}

func TestGenerate_Rectangular(t *testing.T) {
	for _, v := range Generate(TypeRectangular, 16) {
		if v != 1 {
			t.Fatalf("rectangular coefficient: got %v, want 1", v)
		}
	}
}

func TestGenerate_Endpoints(t *testing.T) {
	cases := []struct {
		typ  Type
		edge float64
	}{
		{TypeHann, 0},
		{TypeHamming, 0.08},
		{TypeBlackman, 0},
	}
	for _, c := range cases {
		w := Generate(c.typ, 65)
		if math.Abs(w[0]-c.edge) > eps || math.Abs(w[64]-c.edge) > eps {
			t.Errorf("type %d edges: got %v, %v, want %v", c.typ, w[0], w[64], c.edge)
		}
		if math.Abs(w[32]-1) > eps {
			t.Errorf("type %d center: got %v, want 1", c.typ, w[32])
		}
	}
}

func TestGenerate_Symmetry(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman} {
		w := Generate(typ, 255)
		for i := range len(w) / 2 {
			if math.Abs(w[i]-w[len(w)-1-i]) > eps {
				t.Fatalf("type %d: asymmetry at %d: %v vs %v", typ, i, w[i], w[len(w)-1-i])
			}
		}
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	want := Generate(TypeHann, 5)
	Apply(TypeHann, buf)
	for i := range buf {
		if math.Abs(buf[i]-2*want[i]) > eps {
			t.Errorf("index %d: got %v, want %v", i, buf[i], 2*want[i])
		}
	}
}
