package resample

import (
	"errors"
	"math"
)

// designPrototype returns a windowed-sinc low-pass at the upsampled rate,
// scaled to a DC gain of up. The length is kept odd so the delay is a whole
// number of upsampled samples.
func designPrototype(up, down int, cfg config) ([]float64, error) {
	n := cfg.tapsPerPhase * up
	if n%2 == 0 {
		n--
	}

	fc := 0.5 / float64(max(up, down)) * cfg.cutoffScale

	h := make([]float64, n)
	center := 0.5 * float64(n-1)

	var sum float64

	for i := range h {
		h[i] = 2 * fc * sinc(2*fc*(float64(i)-center)) * kaiser(i, n, cfg.kaiserBeta)
		sum += h[i]
	}

	if sum == 0 {
		return nil, errors.New("resample: designed zero-sum filter")
	}

	scale := float64(up) / sum
	for i := range h {
		h[i] *= scale
	}

	return h, nil
}

func splitPhases(h []float64, up, taps int) [][]float64 {
	phases := make([][]float64, up)
	for p := range phases {
		branch := make([]float64, taps)
		for k := range taps {
			if i := p + k*up; i < len(h) {
				branch[taps-1-k] = h[i]
			}
		}

		phases[p] = branch
	}

	return phases
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1

	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the zeroth-order modified Bessel function by its power series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4

	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term

		if term < 1e-16*sum {
			break
		}
	}

	return sum
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
