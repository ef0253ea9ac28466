package knob

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jraju9/signaltrain/internal/testutil"
)

func TestRangeRoundTrip(t *testing.T) {
	ranges := []Range{{-30, 0}, {1, 5}, {10, 2048}, {1e-3, 4e-2}}
	for _, r := range ranges {
		for _, n := range []float64{-0.5, -0.25, 0, 0.1, 0.5} {
			p := r.ToPhysical(n)
			if p < math.Min(r.Min, r.Max)-1e-12 || p > math.Max(r.Min, r.Max)+1e-12 {
				t.Fatalf("%v: ToPhysical(%v) = %v out of range", r, n, p)
			}
			if got := r.ToNormalized(p); math.Abs(got-n) > 1e-12 {
				t.Fatalf("%v: round trip %v -> %v -> %v", r, n, p, got)
			}
		}
	}
}

func TestRangeEndpoints(t *testing.T) {
	r := Range{Min: 100, Max: 1500}
	if got := r.ToPhysical(-0.5); got != 100 {
		t.Fatalf("ToPhysical(-0.5) = %v, want 100", got)
	}
	if got := r.ToPhysical(0.5); got != 1500 {
		t.Fatalf("ToPhysical(0.5) = %v, want 1500", got)
	}
	if got := r.ToNormalized(800); got != 0 {
		t.Fatalf("ToNormalized(800) = %v, want 0", got)
	}
}

func TestDegenerateRange(t *testing.T) {
	r := Range{Min: 2, Max: 2}
	if got := r.ToNormalized(2); got != 0 {
		t.Fatalf("ToNormalized = %v, want 0", got)
	}
	if got := r.ToPhysical(0.37); got != 2 {
		t.Fatalf("ToPhysical = %v, want 2", got)
	}
}

func TestVectorDimensionMismatch(t *testing.T) {
	ranges := []Range{{0, 1}, {0, 2}}
	if _, err := ToPhysical(ranges, []float64{0}); !errors.Is(err, ErrDimension) {
		t.Fatalf("ToPhysical err = %v, want ErrDimension", err)
	}
	if _, err := ToNormalized(ranges, []float64{0, 0, 0}); !errors.Is(err, ErrDimension) {
		t.Fatalf("ToNormalized err = %v, want ErrDimension", err)
	}

	phys, err := ToPhysical(ranges, []float64{0, 0.5})
	if err != nil {
		t.Fatalf("ToPhysical error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, phys, []float64{0.5, 2}, 0)
}

func TestIntToKnobs(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		ranges []Range
		sp     int
		want   []float64
	}{
		{
			name:   "base10",
			index:  1234,
			ranges: []Range{{0, 9}, {0, 9}, {0, 9}, {0, 9}},
			sp:     10,
			want:   []float64{1, 2, 3, 4},
		},
		{
			name:   "dice",
			index:  100,
			ranges: []Range{{1, 6}, {1, 6}, {1, 6}},
			sp:     6,
			want:   []float64{3, 5, 5},
		},
		{
			name:   "normalized",
			index:  12345,
			ranges: []Range{{-0.5, 0.5}, {-0.5, 0.5}, {-0.5, 0.5}, {-0.5, 0.5}},
			sp:     12,
			want:   []float64{0.13636363636363635, -0.40909090909090906, 0.2272727272727273, 0.31818181818181823},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntToKnobs(tt.index, tt.ranges, tt.sp)
			if err != nil {
				t.Fatalf("IntToKnobs error: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-15)
		})
	}
}

func TestIntToKnobsSingleKnobIsIdentity(t *testing.T) {
	for i := range 10 {
		got, err := IntToKnobs(i, []Range{{0, 9}}, 10)
		if err != nil {
			t.Fatalf("IntToKnobs(%d) error: %v", i, err)
		}
		if got[0] != float64(i) {
			t.Fatalf("IntToKnobs(%d) = %v", i, got)
		}
	}
}

func TestIntToKnobsBijective(t *testing.T) {
	ranges := []Range{{0, 1}, {-2, 2}, {10, 20}}
	sp := 4
	seen := make(map[[3]float64]bool)

	for i := range GridSize(len(ranges), sp) {
		k, err := IntToKnobs(i, ranges, sp)
		if err != nil {
			t.Fatalf("IntToKnobs(%d) error: %v", i, err)
		}
		key := [3]float64{k[0], k[1], k[2]}
		if seen[key] {
			t.Fatalf("index %d repeats knob setting %v", i, k)
		}
		seen[key] = true
	}
	if len(seen) != 64 {
		t.Fatalf("visited %d settings, want 64", len(seen))
	}
}

func TestIntToKnobsErrors(t *testing.T) {
	ranges := []Range{{0, 1}, {0, 1}}
	if _, err := IntToKnobs(9, ranges, 3); !errors.Is(err, ErrIndexRange) {
		t.Fatalf("err = %v, want ErrIndexRange", err)
	}
	if _, err := IntToKnobs(-1, ranges, 3); !errors.Is(err, ErrIndexRange) {
		t.Fatalf("err = %v, want ErrIndexRange", err)
	}
	if _, err := IntToKnobs(0, ranges, 1); err == nil {
		t.Fatal("expected error for settingsPer < 2")
	}
}

func TestGridSize(t *testing.T) {
	if got := GridSize(3, 6); got != 216 {
		t.Fatalf("GridSize(3, 6) = %d, want 216", got)
	}
	if got := GridSize(0, 6); got != 1 {
		t.Fatalf("GridSize(0, 6) = %d, want 1", got)
	}
	if got := GridSize(100, 10); got != -1 {
		t.Fatalf("GridSize overflow = %d, want -1", got)
	}
}

func TestRandomEnds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	x := RandomEnds(rng, 20000)

	edges := 0
	for _, v := range x {
		if v < 0 || v > 1 {
			t.Fatalf("value %v outside [0, 1]", v)
		}
		if v < 0.1 || v > 0.9 {
			edges++
		}
	}
	// Uniform would put 20% in the outer deciles; Beta(0.8, 0.8) puts more.
	if frac := float64(edges) / float64(len(x)); frac <= 0.2 {
		t.Fatalf("edge fraction %.3f does not favor the boundaries", frac)
	}

	a := RandomNormalized(rand.New(rand.NewPCG(5, 5)), 8)
	b := RandomNormalized(rand.New(rand.NewPCG(5, 5)), 8)
	testutil.RequireSliceNearlyEqual(t, a, b, 0)
	for _, v := range a {
		if v < -0.5 || v > 0.5 {
			t.Fatalf("normalized value %v out of range", v)
		}
	}
}
