package effects

import (
	"fmt"
	"math/rand/v2"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/filter/biquad"
	"github.com/jraju9/signaltrain/dsp/filter/design/pass"
	"github.com/jraju9/signaltrain/dsp/knob"
)

// NameLowPass is the registry name of LowPass.
const NameLowPass = "LowPass"

const defaultLowPassOrder = 3

// LowPass is a Butterworth lowpass run forward from zero state.
//
// Knobs: cutoff [10, 2000] Hz.
type LowPass struct {
	desc  Descriptor
	order int
}

// LowPassOption configures a LowPass.
type LowPassOption func(*LowPass)

// WithOrder sets the Butterworth order. Default is 3.
func WithOrder(order int) LowPassOption {
	return func(l *LowPass) { l.order = order }
}

// NewLowPass returns a LowPass.
func NewLowPass(sampleRate float64, opts ...LowPassOption) (*LowPass, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("lowpass sample rate must be positive and finite: %f", sampleRate)
	}

	l := &LowPass{
		desc: Descriptor{
			Name:       NameLowPass,
			Knobs:      []knob.Knob{{Name: "cutoff", Range: knob.Range{Min: 10, Max: 2000}}},
			SampleRate: sampleRate,
		},
		order: defaultLowPassOrder,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	if l.order <= 0 {
		return nil, fmt.Errorf("lowpass order must be > 0: %d", l.order)
	}

	return l, nil
}

// Descriptor implements Effect.
func (l *LowPass) Descriptor() Descriptor { return l.desc }

// Order returns the filter order.
func (l *LowPass) Order() int { return l.order }

// ProcessPhysical implements Effect and returns (filtered, x).
func (l *LowPass) ProcessPhysical(x, knobs []float64, _ *rand.Rand) ([]float64, []float64, error) {
	if err := l.desc.checkKnobs(knobs); err != nil {
		return nil, nil, err
	}

	cutoff := knobs[0]
	if !core.IsFinitePositive(cutoff) || cutoff >= l.desc.SampleRate/2 {
		return nil, nil, fmt.Errorf("lowpass cutoff must be in (0, %f): %f", l.desc.SampleRate/2, cutoff)
	}

	chain := biquad.NewChain(pass.ButterworthLP(cutoff, l.order, l.desc.SampleRate))

	return chain.Filter(x), x, nil
}
