package effects

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/jraju9/signaltrain/dsp/effects/pitch"
	"github.com/jraju9/signaltrain/dsp/knob"
)

// NamePitchShifter is the registry name of PitchShifter.
const NamePitchShifter = "PitchShifter"

// PitchShifter shifts pitch by n_steps semitones, keeping duration.
//
// Knobs: n_steps [-12, 12].
type PitchShifter struct {
	desc Descriptor
	pool sync.Pool
}

// NewPitchShifter returns a PitchShifter. It is safe for concurrent use;
// each call borrows its own phase-vocoder state.
func NewPitchShifter(sampleRate float64, opts ...pitch.Option) (*PitchShifter, error) {
	if _, err := pitch.New(sampleRate, opts...); err != nil {
		return nil, fmt.Errorf("pitch shifter: %w", err)
	}

	p := &PitchShifter{desc: Descriptor{
		Name:       NamePitchShifter,
		Knobs:      []knob.Knob{{Name: "n_steps", Range: knob.Range{Min: -12, Max: 12}}},
		SampleRate: sampleRate,
	}}
	p.pool.New = func() any {
		s, _ := pitch.New(sampleRate, opts...)
		return s
	}

	return p, nil
}

// Descriptor implements Effect.
func (p *PitchShifter) Descriptor() Descriptor { return p.desc }

// ProcessPhysical implements Effect and returns (shifted, x).
func (p *PitchShifter) ProcessPhysical(x, knobs []float64, _ *rand.Rand) ([]float64, []float64, error) {
	if err := p.desc.checkKnobs(knobs); err != nil {
		return nil, nil, err
	}

	s, _ := p.pool.Get().(*pitch.Shifter)
	defer p.pool.Put(s)

	y, err := s.ShiftSemitones(x, knobs[0])
	if err != nil {
		return nil, nil, fmt.Errorf("pitch shifter: %w", err)
	}

	return y, x, nil
}
