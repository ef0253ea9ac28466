package effects

import (
	"math/rand/v2"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/knob"
	"github.com/jraju9/signaltrain/dsp/signal"
)

// NameTimeAlign is the registry name of TimeAlign.
const NameTimeAlign = "TimeAlign"

// timeAlignKinds are the waveforms with a well-defined onset.
var timeAlignKinds = []signal.Kind{signal.KindPluck, signal.KindBox, signal.KindNoisyBox, signal.KindNoisyPluck}

// TimeAlign ignores its input. It synthesizes a target with its onset in
// the middle of the chunk and derives the input by shifting the target up
// to strength*len samples either way, zero-filling the vacated samples.
//
// Knobs: strength [0.001, 0.5].
type TimeAlign struct {
	desc Descriptor
}

// NewTimeAlign returns a TimeAlign.
func NewTimeAlign(sampleRate float64) *TimeAlign {
	return &TimeAlign{desc: Descriptor{
		Name:       NameTimeAlign,
		Knobs:      []knob.Knob{{Name: "strength", Range: knob.Range{Min: 0.001, Max: 0.5}}},
		SampleRate: sampleRate,
		Inverse:    true,
	}}
}

// Descriptor implements Effect.
func (ta *TimeAlign) Descriptor() Descriptor { return ta.desc }

// ProcessPhysical implements Effect and returns (aligned target, shifted
// input), both len(x) samples long.
func (ta *TimeAlign) ProcessPhysical(x, knobs []float64, rng *rand.Rand) ([]float64, []float64, error) {
	if err := ta.desc.checkKnobs(knobs); err != nil {
		return nil, nil, err
	}

	if rng == nil {
		return nil, nil, ErrNoRand
	}

	gen := signal.NewGenerator(rng, core.WithSampleRate(ta.desc.SampleRate))
	kind := timeAlignKinds[rng.IntN(len(timeAlignKinds))]
	target := gen.Synthesize(gen.TimeAxis(len(x)), kind, signal.WithOnset(0.5))

	shift := int(float64(len(x)) * knobs[0] * (2*rng.Float64() - 1))

	return target, core.Shift(target, shift), nil
}
