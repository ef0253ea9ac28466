package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{name: "inside", v: 0.5, lo: 0, hi: 1, want: 0.5},
		{name: "below", v: -1, lo: 0, hi: 1, want: 0},
		{name: "above", v: 2, lo: 0, hi: 1, want: 1},
		{name: "swapped", v: 2, lo: 1, hi: 0, want: 1},
		{name: "knob range", v: -0.7, lo: -0.5, hi: 0.5, want: -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestDBConversions(t *testing.T) {
	for _, db := range []float64{-60, -24, -6, 0, 12} {
		if got := LinearToDB(DBToLinear(db)); math.Abs(got-db) > 1e-10 {
			t.Fatalf("LinearToDB(DBToLinear(%v)) = %v", db, got)
		}
	}
	if got := DBToLinear(-20); math.Abs(got-0.1) > 1e-15 {
		t.Fatalf("DBToLinear(-20) = %v, want 0.1", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
