package effects

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/knob"
)

// NameCompressor4c is the registry name of Compressor4c.
const NameCompressor4c = "Compressor_4c"

const (
	compressor4cFloor   = 1e-8
	compressor4cFloorDB = -96.0
)

// Compressor4c is a four-knob compressor. The static gain change is
// smoothed sample by sample with separate attack and release coefficients
// alpha = exp(-ln(9)/(sampleRate*time)).
//
// Knobs: thresh [-30, 0] dB, ratio [1, 5], attackTime and releaseTime
// [1e-3, 4e-2] s.
type Compressor4c struct {
	desc Descriptor
}

// NewCompressor4c returns a Compressor4c.
func NewCompressor4c(sampleRate float64) (*Compressor4c, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("compressor_4c sample rate must be positive and finite: %f", sampleRate)
	}

	timeRange := knob.Range{Min: 1e-3, Max: 4e-2}

	return &Compressor4c{desc: Descriptor{
		Name: NameCompressor4c,
		Knobs: []knob.Knob{
			{Name: "thresh", Range: knob.Range{Min: -30, Max: 0}},
			{Name: "ratio", Range: knob.Range{Min: 1, Max: 5}},
			{Name: "attackTime", Range: timeRange},
			{Name: "releaseTime", Range: timeRange},
		},
		SampleRate: sampleRate,
	}}, nil
}

// Descriptor implements Effect.
func (c *Compressor4c) Descriptor() Descriptor { return c.desc }

// ProcessPhysical implements Effect and returns (compressed, x).
func (c *Compressor4c) ProcessPhysical(x, knobs []float64, _ *rand.Rand) ([]float64, []float64, error) {
	if err := c.desc.checkKnobs(knobs); err != nil {
		return nil, nil, err
	}

	y, err := Compress4c(x, knobs[0], knobs[1], knobs[2], knobs[3], c.desc.SampleRate)
	if err != nil {
		return nil, nil, err
	}

	return y, x, nil
}

// Compress4c runs the attack/release compressor. The smoothed gain starts
// from 0 dB before the first sample.
func Compress4c(x []float64, thresholdDB, ratio, attackTime, releaseTime, sampleRate float64) ([]float64, error) {
	if !core.IsFinitePositive(attackTime) || !core.IsFinitePositive(releaseTime) {
		return nil, fmt.Errorf("compressor_4c attack and release must be > 0: %f, %f", attackTime, releaseTime)
	}

	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("compressor_4c ratio must be > 0: %f", ratio)
	}

	alphaA := math.Exp(-math.Log(9) / (sampleRate * attackTime))
	alphaR := math.Exp(-math.Log(9) / (sampleRate * releaseTime))
	slope := 1/ratio - 1

	y := make([]float64, len(x))
	if len(x) == 0 {
		return y, nil
	}

	gain := make([]float64, len(x))
	prev := 0.0

	for n, v := range x {
		level := max(ampToDB(math.Abs(v)+compressor4cFloor), compressor4cFloorDB)

		change := 0.0
		if level > thresholdDB {
			change = (level - thresholdDB) * slope
		}

		alpha := alphaR
		if change < prev {
			alpha = alphaA
		}

		prev = (1-alpha)*change + alpha*prev
		gain[n] = dbToAmp(prev)
	}

	vecmath.MulBlock(y, x, gain)

	return y, nil
}
