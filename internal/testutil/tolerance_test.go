package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "one off", a: []float64{1, 2, 3}, b: []float64{1, 2.1, 3}, want: 0.1},
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 0},
		{name: "empty", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxAbsDiff(tt.a, tt.b)
			if err != nil {
				t.Fatalf("MaxAbsDiff error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-15 {
				t.Fatalf("MaxAbsDiff = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffFloat32(t *testing.T) {
	got, err := MaxAbsDiff([]float32{0.5, -0.25}, []float32{0.5, 0.25})
	if err != nil || got != 0.5 {
		t.Fatalf("MaxAbsDiff = %v, %v; want 0.5", got, err)
	}
}

func TestRequireHelpersAccept(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-9}, 1e-6)
	RequireFloat32NearlyEqual(t, []float32{1, 2.5}, []float32{1, 2.5}, 0)
	RequireFloat32NearlyEqual(t, []float32{1}, []float32{1.0001}, 1e-3)
	RequireFinite(t, []float64{0, -1, 1e300})
}
