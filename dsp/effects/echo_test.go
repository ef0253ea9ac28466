package effects

import (
	"math"
	"testing"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/internal/testutil"
)

func TestAddEchoesIntegerDelay(t *testing.T) {
	x := testutil.Impulse(16, 0)
	y, err := AddEchoes(x, 3, 0.5, 2)
	if err != nil {
		t.Fatalf("AddEchoes error: %v", err)
	}

	want := make([]float64, 16)
	want[0], want[3], want[6] = 1, 0.5, 0.25
	testutil.RequireSliceNearlyEqual(t, y, want, 1e-15)
}

func TestAddEchoesFractionalDelayBlends(t *testing.T) {
	x := testutil.DeterministicNoise(9, 0.5, 512)

	lo, _ := AddEchoes(x, 100, 0.6, 1)
	hi, _ := AddEchoes(x, 101, 0.6, 1)
	mid, err := AddEchoes(x, 100.25, 0.6, 1)
	if err != nil {
		t.Fatalf("AddEchoes error: %v", err)
	}

	for i := range x {
		want := 0.75*lo[i] + 0.25*hi[i]
		if math.Abs(mid[i]-want) > 1e-12 {
			t.Fatalf("sample %d: %v, want %v", i, mid[i], want)
		}
	}
}

func TestAddEchoesContinuousInDelay(t *testing.T) {
	x := testutil.DeterministicSine(440, 44100, 0.8, 4096)
	a, _ := AddEchoes(x, 700, 0.5, 2)
	b, _ := AddEchoes(x, 700+1e-6, 0.5, 2)

	d, err := testutil.MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}
	if d > 1e-5 {
		t.Fatalf("tiny delay change moved output by %v", d)
	}
}

func TestEchoEffectRoundsEchoCount(t *testing.T) {
	e := NewEcho(44100)
	x := testutil.Impulse(4000, 0)

	// Normalized delay -0.5 maps to 100 samples; echoes are fixed at 2.
	y, orig, err := Apply(e, x, []float64{-0.5, 0.5, 0.3}, nil)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, orig, x, 0)

	if math.Abs(y[100]-0.9) > 1e-12 || math.Abs(y[200]-0.81) > 1e-12 || y[300] != 0 {
		t.Fatalf("echo taps = %v %v %v, want 0.9 0.81 0", y[100], y[200], y[300])
	}
	if x[100] != 0 {
		t.Fatal("Echo modified its input")
	}
}

func TestAddEchoesValidation(t *testing.T) {
	if _, err := AddEchoes([]float64{1}, -1, 0.5, 1); err == nil {
		t.Fatal("expected error for negative delay")
	}
	if _, err := AddEchoes([]float64{1}, 1, 0.5, -1); err == nil {
		t.Fatal("expected error for negative echo count")
	}
	y, err := AddEchoes([]float64{1, 2}, 10, 0.5, 2)
	if err != nil {
		t.Fatalf("AddEchoes error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y, core.Clone([]float64{1, 2}), 0)
}
