package knob

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// RandomEnds draws n values in [0, 1] from Beta(0.8, 0.8), a U-shaped
// distribution that visits the extremes of each knob more often than a
// uniform draw would.
func RandomEnds(rng *rand.Rand, n int) []float64 {
	beta := distuv.Beta{Alpha: 0.8, Beta: 0.8, Src: rng}

	out := make([]float64, n)
	for i := range out {
		out[i] = beta.Rand()
	}

	return out
}

// RandomNormalized draws n normalized knob values in [-0.5, 0.5] from RandomEnds.
func RandomNormalized(rng *rand.Rand, n int) []float64 {
	out := RandomEnds(rng, n)
	for i := range out {
		out[i] -= 0.5
	}

	return out
}
