package effects

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/jraju9/signaltrain/dsp/knob"
)

// Descriptor describes an effect's controls.
type Descriptor struct {
	Name       string
	Knobs      []knob.Knob
	SampleRate float64
	// Inverse effects return (clean target, derived input) instead of
	// (processed output, original input).
	Inverse bool
}

// KnobNames returns the knob names in order.
func (d Descriptor) KnobNames() []string { return knob.Names(d.Knobs) }

// Ranges returns the physical knob ranges in order.
func (d Descriptor) Ranges() []knob.Range { return knob.Ranges(d.Knobs) }

// NumKnobs returns the number of knobs.
func (d Descriptor) NumKnobs() int { return len(d.Knobs) }

// Info writes a human-readable summary of the effect and its knob ranges.
func (d Descriptor) Info(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Effect: %s.  Knobs:\n", d.Name); err != nil {
		return err
	}

	for _, k := range d.Knobs {
		if _, err := fmt.Fprintf(w, "    %s: %g to %g\n", k.Name, k.Range.Min, k.Range.Max); err != nil {
			return err
		}
	}

	return nil
}

func (d Descriptor) checkKnobs(knobs []float64) error {
	if len(knobs) != len(d.Knobs) {
		return fmt.Errorf("%s: %w: got %d knobs, want %d", d.Name, knob.ErrDimension, len(knobs), len(d.Knobs))
	}

	return nil
}

// Effect is an audio effect driven by knobs in physical units.
type Effect interface {
	Descriptor() Descriptor
	// ProcessPhysical returns (primary, counterpart). rng is only consulted
	// by stochastic effects.
	ProcessPhysical(x, knobs []float64, rng *rand.Rand) (primary, counterpart []float64, err error)
}

// ToPhysical maps normalized knobs in [-0.5, 0.5] to e's physical units.
func ToPhysical(e Effect, normalized []float64) ([]float64, error) {
	phys, err := knob.ToPhysical(e.Descriptor().Ranges(), normalized)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Descriptor().Name, err)
	}

	return phys, nil
}

// Apply converts normalized knobs to physical units and runs e.
func Apply(e Effect, x, normalized []float64, rng *rand.Rand) (y, xOut []float64, err error) {
	phys, err := ToPhysical(e, normalized)
	if err != nil {
		return nil, nil, err
	}

	return e.ProcessPhysical(x, phys, rng)
}

// Generic is an effect with a descriptor and no processor.
type Generic struct {
	desc Descriptor
}

// NewGeneric returns the placeholder effect with a single [0, 1] knob.
func NewGeneric(sampleRate float64) *Generic {
	return &Generic{desc: Descriptor{
		Name:       "Generic Effect",
		Knobs:      []knob.Knob{{Name: "knob", Range: knob.Range{Min: 0, Max: 1}}},
		SampleRate: sampleRate,
	}}
}

// Descriptor implements Effect.
func (g *Generic) Descriptor() Descriptor { return g.desc }

// ProcessPhysical always fails with ErrNotImplemented.
func (g *Generic) ProcessPhysical(_, _ []float64, _ *rand.Rand) ([]float64, []float64, error) {
	return nil, nil, fmt.Errorf("%s: %w", g.desc.Name, ErrNotImplemented)
}
