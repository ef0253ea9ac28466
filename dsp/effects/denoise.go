package effects

import (
	"math/rand/v2"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/knob"
)

// NameDenoise is the registry name of Denoise.
const NameDenoise = "Denoise"

// Denoise adds uniform noise of amplitude strength to x and swaps the pair,
// so a model trained on it learns to remove the noise.
//
// Knobs: strength [0.01, 0.5].
type Denoise struct {
	desc Descriptor
}

// NewDenoise returns a Denoise.
func NewDenoise(sampleRate float64) *Denoise {
	return &Denoise{desc: Descriptor{
		Name:       NameDenoise,
		Knobs:      []knob.Knob{{Name: "strength", Range: knob.Range{Min: 0.01, Max: 0.5}}},
		SampleRate: sampleRate,
		Inverse:    true,
	}}
}

// Descriptor implements Effect.
func (d *Denoise) Descriptor() Descriptor { return d.desc }

// ProcessPhysical implements Effect and returns (clean x, noisy x).
func (d *Denoise) ProcessPhysical(x, knobs []float64, rng *rand.Rand) ([]float64, []float64, error) {
	if err := d.desc.checkKnobs(knobs); err != nil {
		return nil, nil, err
	}

	if rng == nil {
		return nil, nil, ErrNoRand
	}

	strength := knobs[0]

	noisy := make([]float64, len(x))
	for i, v := range x {
		noisy[i] = v + strength*(2*rng.Float64()-1)
	}

	return core.Clone(x), noisy, nil
}
