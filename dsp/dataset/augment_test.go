package dataset

import (
	"testing"

	"github.com/jraju9/signaltrain/internal/testutil"
)

func TestAugmentTouchesOnlyLookback(t *testing.T) {
	opts := AugmentOptions{MultSome: true, AddSome: true}
	for seed := range uint64(20) {
		x := testutil.DeterministicSine(100, 8000, 0.5, 256)
		y := append([]float64(nil), x[192:]...)
		tailX := append([]float64(nil), x[192:]...)
		tailY := append([]float64(nil), y...)

		Augment(testutil.Rand(seed, 0), x, y, opts)

		testutil.RequireSliceNearlyEqual(t, x[192:], tailX, 0)
		testutil.RequireSliceNearlyEqual(t, y, tailY, 0)
	}
}

func TestAugmentChangesLookbackSometimes(t *testing.T) {
	opts := AugmentOptions{MultSome: true}
	changed := 0
	for seed := range uint64(20) {
		x := testutil.DeterministicSine(100, 8000, 0.5, 256)
		orig := append([]float64(nil), x...)
		Augment(testutil.Rand(seed, 0), x, x[128:], opts)
		if d, _ := testutil.MaxAbsDiff(x, orig); d > 0 {
			changed++
		}
	}
	if changed == 0 || changed == 20 {
		t.Fatalf("lookback changed in %d of 20 runs, want some but not all", changed)
	}
}

func TestAugmentInvertFlipsBoth(t *testing.T) {
	flipped := 0
	for seed := range uint64(20) {
		x := []float64{0.1, 0.2, 0.3}
		y := []float64{0.3}
		Augment(testutil.Rand(seed, 0), x, y, AugmentOptions{Invert: true})

		switch {
		case x[0] == -0.1 && y[0] == -0.3:
			flipped++
		case x[0] == 0.1 && y[0] == 0.3:
		default:
			t.Fatalf("seed %d: inconsistent inversion x=%v y=%v", seed, x, y)
		}
	}
	if flipped == 0 || flipped == 20 {
		t.Fatalf("inverted %d of 20 times", flipped)
	}
}

func TestAugmentNoLookback(t *testing.T) {
	x := []float64{1, 2}
	Augment(testutil.Rand(1, 0), x, []float64{1, 2}, AugmentOptions{MultSome: true, AddSome: true})
	testutil.RequireSliceNearlyEqual(t, x, []float64{1, 2}, 0)
}
