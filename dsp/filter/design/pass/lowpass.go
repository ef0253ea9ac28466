package pass

import (
	"math"

	"github.com/jraju9/signaltrain/dsp/filter/biquad"
)

// ButterworthLP designs an order-n Butterworth lowpass with its -3 dB point
// at cutoff Hz. Second-order sections come first, ordered from the highest
// Q down; odd orders end with a first-order section.
//
// Returns nil for order <= 0. A cutoff outside (0, sampleRate/2) yields
// zero sections, which silence the signal.
func ButterworthLP(cutoff float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}

	k, ok := prewarp(cutoff, sampleRate)
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		if !ok {
			sections = append(sections, biquad.Coefficients{})
			continue
		}

		sections = append(sections, secondOrderLP(k, sectionQ(order, i)))
	}

	if order%2 == 1 {
		sections = append(sections, FirstOrderLP(cutoff, sampleRate))
	}

	return sections
}

// FirstOrderLP designs a one-pole, one-zero lowpass (B2 = A2 = 0).
//
// Passing sampleRate 2 expresses cutoff as a fraction of Nyquist; the
// envelope followers use FirstOrderLP(1/attack, 2).
func FirstOrderLP(cutoff, sampleRate float64) biquad.Coefficients {
	k, ok := prewarp(cutoff, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	g := k / (1 + k)

	return biquad.Coefficients{B0: g, B1: g, A1: (k - 1) / (1 + k)}
}

// prewarp returns tan(pi*cutoff/sampleRate) for the bilinear transform.
func prewarp(cutoff, sampleRate float64) (float64, bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) || !(cutoff > 0) || cutoff >= sampleRate/2 {
		return 0, false
	}

	return math.Tan(math.Pi * cutoff / sampleRate), true
}

// sectionQ is the quality factor of the i-th conjugate pole pair of an
// order-n Butterworth prototype.
func sectionQ(order, i int) float64 {
	return 1 / (2 * math.Sin(math.Pi*float64(2*i+1)/float64(2*order)))
}

func secondOrderLP(k, q float64) biquad.Coefficients {
	k2 := k * k
	a0 := 1 + k/q + k2
	b := k2 / a0

	return biquad.Coefficients{
		B0: b,
		B1: 2 * b,
		B2: b,
		A1: 2 * (k2 - 1) / a0,
		A2: (1 - k/q + k2) / a0,
	}
}
