//go:build !fastmath

package effects

import "math"

// ampToDB computes 20*log10(x) using standard library math.
func ampToDB(x float64) float64 {
	return 20 * math.Log10(x)
}

// dbToAmp computes 10^(db/20) using standard library math.
func dbToAmp(db float64) float64 {
	return math.Pow(10, db/20)
}
