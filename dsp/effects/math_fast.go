//go:build fastmath

package effects

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// dbPerNeper converts natural log to decibels: 20/ln(10).
const dbPerNeper = 20 / math.Ln10

// ampToDB computes 20*log10(x) using fast approximation.
func ampToDB(x float64) float64 {
	return approx.FastLog(x) * dbPerNeper
}

// dbToAmp computes 10^(db/20) using fast approximation.
func dbToAmp(db float64) float64 {
	return approx.FastExp(db / dbPerNeper)
}
