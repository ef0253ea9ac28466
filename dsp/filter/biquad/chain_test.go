package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func cascade() []Coefficients {
	return []Coefficients{resonant, averager}
}

func TestChainMatchesManualCascade(t *testing.T) {
	c := NewChain(cascade())
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	s0, s1 := NewSection(resonant), NewSection(averager)
	for i, x := range []float64{1, 0, -0.5, 0.25, 0.75} {
		want := s1.ProcessSample(s0.ProcessSample(x))
		if got := c.ProcessSample(x); !near(got, want, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestChainFilterKeepsInput(t *testing.T) {
	input := []float64{1, -1, 0.5, 0.3, -0.2, 0.9, 0}
	ref := NewChain(cascade())

	out := NewChain(cascade()).Filter(input)
	for i, x := range input {
		if want := ref.ProcessSample(x); !near(out[i], want, eps) {
			t.Fatalf("index %d: got %v, want %v", i, out[i], want)
		}
	}
	if input[0] != 1 {
		t.Fatal("Filter modified its input")
	}
}

func TestChainSteadyStateAndReset(t *testing.T) {
	c := NewChain(cascade())
	c.SetSteadyState(2)

	want := real(c.Response(0, 1)) * 2
	for i := range 32 {
		if got := c.ProcessSample(2); !near(got, want, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}

	c.Reset()
	fresh := NewChain(cascade())
	if a, b := c.ProcessSample(1), fresh.ProcessSample(1); a != b {
		t.Fatalf("after Reset: %v, want %v", a, b)
	}
}

func TestChainResponse(t *testing.T) {
	c := NewChain(cascade())
	f, sr := 1234.0, 44100.0

	want := resonant.Response(f, sr) * averager.Response(f, sr)
	if got := c.Response(f, sr); cmplx.Abs(got-want) > eps {
		t.Fatalf("Response = %v, want %v", got, want)
	}
	if got, wantDB := c.MagnitudeDB(f, sr), 20*math.Log10(cmplx.Abs(want)); !near(got, wantDB, 1e-9) {
		t.Fatalf("MagnitudeDB = %v, want %v", got, wantDB)
	}
}

func BenchmarkChainProcessBlock(b *testing.B) {
	c := NewChain(cascade())
	buf := make([]float64, 4096)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.01)
	}

	b.ResetTimer()
	for range b.N {
		c.ProcessBlock(buf)
	}
}
