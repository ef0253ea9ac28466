package dataset

import (
	"math/rand/v2"
	"slices"
)

const (
	multFraction = 0.2
	addFraction  = 0.3
	addScale     = 1e-6
)

// AugmentOptions selects the perturbations Augment may apply. Each enabled
// perturbation fires with probability 1/2.
type AugmentOptions struct {
	// Invert negates both input and target.
	Invert bool
	// MultSome multiplies 20% of the lookback samples by factors in [-1, 1].
	MultSome bool
	// AddSome adds tiny noise, max(x)*1e-6 in scale, to 30% of the lookback
	// samples.
	AddSome bool
}

// DefaultAugmentOptions enables inversion and the additive perturbation.
func DefaultAugmentOptions() AugmentOptions {
	return AugmentOptions{Invert: true, AddSome: true}
}

// Augment perturbs x and y in place. Apart from inversion, only the
// lookback region x[:len(x)-len(y)] is touched, so targets stay exact.
func Augment(rng *rand.Rand, x, y []float64, opts AugmentOptions) {
	if opts.Invert && coin(rng) {
		for i := range x {
			x[i] = -x[i]
		}
		for i := range y {
			y[i] = -y[i]
		}
	}

	lookback := len(x) - len(y)
	if lookback <= 0 {
		return
	}

	if opts.MultSome && coin(rng) {
		for range int(float64(lookback) * multFraction) {
			x[rng.IntN(lookback)] *= 2*rng.Float64() - 1
		}
	}

	if opts.AddSome && coin(rng) {
		tiny := slices.Max(x) * addScale
		for range int(float64(lookback) * addFraction) {
			x[rng.IntN(lookback)] += tiny * (2*rng.Float64() - 1)
		}
	}
}

func coin(rng *rand.Rand) bool {
	return rng.IntN(2) == 0
}
