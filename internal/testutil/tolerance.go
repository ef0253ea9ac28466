package testutil

import (
	"fmt"
	"math"
	"testing"
)

// Sample is a float sample type used by signals and dataset items.
type Sample interface {
	~float32 | ~float64
}

// MaxAbsDiff returns max |a[i] - b[i]|. Slices of different length are an
// error.
func MaxAbsDiff[T Sample](a, b []T) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst := 0.0
	for i := range a {
		worst = max(worst, math.Abs(float64(a[i])-float64(b[i])))
	}

	return worst, nil
}

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and agree elementwise within eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	requireNear(t, got, want, eps)
}

// RequireFloat32NearlyEqual is RequireSliceNearlyEqual for dataset rows.
func RequireFloat32NearlyEqual(t *testing.T, got, want []float32, eps float64) {
	t.Helper()
	requireNear(t, got, want, eps)
}

func requireNear[T Sample](t *testing.T, got, want []T, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(float64(got[i]) - float64(want[i])); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t at the first NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
