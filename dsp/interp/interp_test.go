package interp

import "testing"

func TestLinear(t *testing.T) {
	tests := []struct {
		a, b, frac float64
		want       float64
	}{
		{a: 2, b: 4, frac: 0, want: 2},
		{a: 2, b: 4, frac: 0.25, want: 2.5},
		{a: 2, b: 4, frac: 1, want: 4},
		{a: -1, b: 1, frac: 0.5, want: 0},
	}

	for _, tt := range tests {
		if got := Linear(tt.a, tt.b, tt.frac); got != tt.want {
			t.Fatalf("Linear(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.frac, got, tt.want)
		}
	}
}

func TestLinearContinuousAcrossFraction(t *testing.T) {
	const eps = 1e-9
	if d := Linear(3, 7, 0.5+eps) - Linear(3, 7, 0.5); d < 0 || d > 5*eps {
		t.Fatalf("step across 0.5 = %v, want O(eps)", d)
	}
}
