package effects

import (
	"fmt"
	"math"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/filter/biquad"
	"github.com/jraju9/signaltrain/dsp/filter/design/pass"
)

// FunctionNames lists the names accepted by Function.
var FunctionNames = []string{"id", "x^2", "clip", "sin", "dec_cos", "wiggle", "lpf", "delay", "echo", "comp"}

// Function applies one of the simple named transfer functions used for
// quick experiments. Unknown names fail with ErrUnknownFunction.
func Function(name string, x []float64) ([]float64, error) {
	switch name {
	case "id":
		return core.Clone(x), nil
	case "x^2":
		return mapSamples(x, func(v float64) float64 { return v * v }), nil
	case "clip":
		return mapSamples(x, func(v float64) float64 { return core.Clamp(v, -0.3, 0.3) }), nil
	case "sin":
		return mapSamples(x, func(v float64) float64 { return math.Sin(4 * v) }), nil
	case "dec_cos":
		return mapSamples(x, func(v float64) float64 { return math.Exp(-2*v) * math.Cos(40*v) }), nil
	case "wiggle":
		return mapSamples(x, func(v float64) float64 {
			return math.Exp(-(v+0.7))*math.Cos(20*v) + math.Exp(-40*(v-0.5)*(v-0.5))
		}), nil
	case "lpf":
		return smooth(x), nil
	case "delay", "echo":
		return AddEchoes(x, 1487, 0.6, 2)
	case "comp":
		return Compress(x, -24, 2, 2048)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
}

func mapSamples(x []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f(v)
	}

	return out
}

// smooth runs a first-order lowpass at 1/len(x) of Nyquist, started in the
// steady state of the first sample.
func smooth(x []float64) []float64 {
	if len(x) <= 2 {
		return core.Clone(x)
	}

	out := core.Clone(x)
	biquad.NewSection(pass.FirstOrderLP(1/float64(len(x)), 2)).ProcessPrimed(out)

	return out
}
