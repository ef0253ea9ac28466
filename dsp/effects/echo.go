package effects

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"

	"github.com/jraju9/signaltrain/dsp/interp"
	"github.com/jraju9/signaltrain/dsp/knob"
)

// NameEcho is the registry name of Echo.
const NameEcho = "Echo"

// Echo adds decaying copies of the input at multiples of a fractional delay.
//
// Knobs: delay_samples [100, 1500], ratio [0.1, 0.9], echoes [2, 2].
// echoes is rounded to an integer; the delay is not, so the output varies
// continuously with it.
type Echo struct {
	desc Descriptor
}

// NewEcho returns an Echo.
func NewEcho(sampleRate float64) *Echo {
	return &Echo{desc: Descriptor{
		Name: NameEcho,
		Knobs: []knob.Knob{
			{Name: "delay_samples", Range: knob.Range{Min: 100, Max: 1500}},
			{Name: "ratio", Range: knob.Range{Min: 0.1, Max: 0.9}},
			{Name: "echoes", Range: knob.Range{Min: 2, Max: 2}},
		},
		SampleRate: sampleRate,
	}}
}

// Descriptor implements Effect.
func (e *Echo) Descriptor() Descriptor { return e.desc }

// ProcessPhysical implements Effect and returns (echoed, x).
func (e *Echo) ProcessPhysical(x, knobs []float64, _ *rand.Rand) ([]float64, []float64, error) {
	if err := e.desc.checkKnobs(knobs); err != nil {
		return nil, nil, err
	}

	y, err := AddEchoes(x, knobs[0], knobs[1], int(math.Round(knobs[2])))
	if err != nil {
		return nil, nil, err
	}

	return y, x, nil
}

// AddEchoes returns x + sum_{k=1..echoes} ratio^k * x delayed by k*delay.
// A fractional delay L blends the shifts floor(L) and floor(L)+1 with
// weights 1-frac and frac. Samples shifted in from before the start are zero.
func AddEchoes(x []float64, delay, ratio float64, echoes int) ([]float64, error) {
	if delay < 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return nil, fmt.Errorf("echo delay must be >= 0: %f", delay)
	}

	if echoes < 0 {
		return nil, fmt.Errorf("echo count must be >= 0: %d", echoes)
	}

	y := make([]float64, len(x))
	copy(y, x)

	tap := make([]float64, len(x))
	gain := 1.0

	for k := 1; k <= echoes; k++ {
		gain *= ratio

		length := float64(k) * delay
		whole := int(math.Floor(length))
		frac := length - float64(whole)

		if whole >= len(x) {
			break
		}

		// tap[j] is x read at j - frac, landing at y[j+whole].
		tap = tap[:len(x)-whole]
		for j := range tap {
			prev := 0.0
			if j > 0 {
				prev = x[j-1]
			}

			tap[j] = interp.Linear(x[j], prev, frac)
		}

		vecmath.ScaleBlock(tap, tap, gain)
		vecmath.AddBlockInPlace(y[whole:], tap)
	}

	return y, nil
}
