package effects

import (
	"math"
	"testing"

	"github.com/jraju9/signaltrain/internal/testutil"
)

func TestLowPassAttenuatesAboveCutoff(t *testing.T) {
	l, err := NewLowPass(44100)
	if err != nil {
		t.Fatalf("NewLowPass error: %v", err)
	}
	if l.Order() != 3 {
		t.Fatalf("Order() = %d, want 3", l.Order())
	}

	low := testutil.DeterministicSine(50, 44100, 1, 8192)
	high := testutil.DeterministicSine(8000, 44100, 1, 8192)

	yl, _, err := l.ProcessPhysical(low, []float64{500}, nil)
	if err != nil {
		t.Fatalf("ProcessPhysical error: %v", err)
	}
	yh, _, err := l.ProcessPhysical(high, []float64{500}, nil)
	if err != nil {
		t.Fatalf("ProcessPhysical error: %v", err)
	}

	if r := testutil.RMS(yl[4096:]) / testutil.RMS(low[4096:]); math.Abs(r-1) > 0.05 {
		t.Fatalf("passband gain %v, want ~1", r)
	}
	// Third order: 18 dB/octave, four octaves above cutoff.
	if r := testutil.RMS(yh[4096:]) / testutil.RMS(high[4096:]); r > 1e-3 {
		t.Fatalf("stopband gain %v, want < 1e-3", r)
	}
}

func TestLowPassStartsFromZeroState(t *testing.T) {
	l, err := NewLowPass(44100, WithOrder(1))
	if err != nil {
		t.Fatalf("NewLowPass error: %v", err)
	}
	y, _, err := l.ProcessPhysical(testutil.DC(1, 4), []float64{100}, nil)
	if err != nil {
		t.Fatalf("ProcessPhysical error: %v", err)
	}
	if y[0] >= 0.1 {
		t.Fatalf("first output %v, expected a rising step response", y[0])
	}
}

func TestLowPassValidation(t *testing.T) {
	if _, err := NewLowPass(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewLowPass(44100, WithOrder(0)); err == nil {
		t.Fatal("expected error for zero order")
	}
	l, _ := NewLowPass(1000)
	if _, _, err := l.ProcessPhysical([]float64{1}, []float64{600}, nil); err == nil {
		t.Fatal("expected error for cutoff above nyquist")
	}
}
