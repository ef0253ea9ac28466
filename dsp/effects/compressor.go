package effects

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"

	"github.com/jraju9/signaltrain/dsp/filter/biquad"
	"github.com/jraju9/signaltrain/dsp/filter/design/pass"
	"github.com/jraju9/signaltrain/dsp/knob"
)

// NameCompressor is the registry name of Compressor.
const NameCompressor = "Compressor"

const compressorFloor = 1e-6

// Compressor is a feed-forward compressor whose envelope is the dB level
// smoothed by a first-order Butterworth lowpass at 1/attack of Nyquist.
//
// Knobs: threshold [-30, 0] dB, ratio [1, 5], attackrelease [10, 2048] samples.
type Compressor struct {
	desc Descriptor
}

// NewCompressor returns a Compressor.
func NewCompressor(sampleRate float64) *Compressor {
	return &Compressor{desc: Descriptor{
		Name: NameCompressor,
		Knobs: []knob.Knob{
			{Name: "threshold", Range: knob.Range{Min: -30, Max: 0}},
			{Name: "ratio", Range: knob.Range{Min: 1, Max: 5}},
			{Name: "attackrelease", Range: knob.Range{Min: 10, Max: 2048}},
		},
		SampleRate: sampleRate,
	}}
}

// Descriptor implements Effect.
func (c *Compressor) Descriptor() Descriptor { return c.desc }

// ProcessPhysical implements Effect and returns (compressed, x).
func (c *Compressor) ProcessPhysical(x, knobs []float64, _ *rand.Rand) ([]float64, []float64, error) {
	if err := c.desc.checkKnobs(knobs); err != nil {
		return nil, nil, err
	}

	y, err := Compress(x, knobs[0], knobs[1], knobs[2])
	if err != nil {
		return nil, nil, err
	}

	return y, x, nil
}

// Compress applies downward compression above thresholdDB with the given
// ratio. attack is the smoothing time in samples and must exceed 1.
//
// The envelope filter starts in the steady state for the first sample's
// level, so a constant signal is compressed without an onset transient.
func Compress(x []float64, thresholdDB, ratio, attack float64) ([]float64, error) {
	if !(attack > 1) || math.IsInf(attack, 0) {
		return nil, fmt.Errorf("compressor attack must be > 1 sample: %f", attack)
	}

	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("compressor ratio must be > 0: %f", ratio)
	}

	y := make([]float64, len(x))
	if len(x) == 0 {
		return y, nil
	}

	env := make([]float64, len(x))
	for i, v := range x {
		env[i] = ampToDB(math.Abs(v) + compressorFloor)
	}

	biquad.NewSection(pass.FirstOrderLP(1/attack, 2)).ProcessPrimed(env)

	slope := 1/ratio - 1
	for i, level := range env {
		gainDB := 0.0
		if level > thresholdDB {
			gainDB = (level - thresholdDB) * slope
		}

		env[i] = dbToAmp(gainDB)
	}

	vecmath.MulBlock(y, x, env)

	return y, nil
}
