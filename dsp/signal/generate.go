package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jraju9/signaltrain/dsp/core"
)

const numSpikes = 50

// Generator draws random waveforms from an explicitly owned random source.
// A Generator is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	cfg core.ProcessorConfig
	rng *rand.Rand
}

// Option configures a single synthesis call.
type Option func(*synthConfig)

type synthConfig struct {
	onset    float64
	hasOnset bool
}

// WithOnset pins the onset (or phase reference for sines) to
// fraction*t_end instead of drawing it at random.
func WithOnset(fraction float64) Option {
	return func(c *synthConfig) {
		c.onset = fraction
		c.hasOnset = true
	}
}

// NewGenerator returns a Generator drawing from rng.
func NewGenerator(rng *rand.Rand, opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg: core.ApplyProcessorOptions(opts...),
		rng: rng,
	}
}

// NewSeededGenerator returns a Generator backed by a PCG source seeded with seed.
func NewSeededGenerator(seed uint64, opts ...core.ProcessorOption) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, 0)), opts...)
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Rand exposes the generator's random source.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// TimeAxis returns n time stamps at the generator's sample rate.
func (g *Generator) TimeAxis(n int) []float64 {
	return TimeAxis(n, g.cfg.SampleRate)
}

// TimeAxis returns t[i] = i/sampleRate for i in [0, n).
func TimeAxis(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}

	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / sampleRate
	}

	return t
}

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	}

	out := make([]float64, n)

	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + step*float64(i)
	}

	out[n-1] = b

	return out
}

// Random synthesizes a waveform of a kind chosen uniformly at random.
func (g *Generator) Random(t []float64, opts ...Option) []float64 {
	return g.Synthesize(t, Kind(g.rng.IntN(int(numKinds))), opts...)
}

// Synthesize produces one waveform of the given kind on time axis t.
// The returned slice has len(t) samples. Unknown kinds yield silence.
func (g *Generator) Synthesize(t []float64, kind Kind, opts ...Option) []float64 {
	var cfg synthConfig

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(t) == 0 {
		return []float64{}
	}

	switch kind {
	case KindSuperposition:
		a := g.basic(t, Kind(g.rng.IntN(int(KindSuperposition))), cfg)
		b := g.basic(t, Kind(g.rng.IntN(int(KindSuperposition))), cfg)

		for i := range a {
			a[i] = 0.5 * (a[i] + b[i])
		}

		return a
	default:
		return g.basic(t, kind, cfg)
	}
}

func (g *Generator) basic(t []float64, kind Kind, cfg synthConfig) []float64 {
	switch kind {
	case KindSine:
		return g.sine(t, cfg)
	case KindNoisySine:
		return g.addNoise(g.sine(t, cfg), 0.1)
	case KindPluck:
		return g.pluck(t, cfg)
	case KindTriangle:
		return g.triangle(t, cfg)
	case KindBox:
		return g.box(t, cfg)
	case KindSpikes:
		return g.spikes(t)
	case KindNoisyBox:
		x := g.box(t, cfg)
		for i := range x {
			x[i] *= g.uniformSym()
		}

		return x
	case KindNoisyPluck:
		x := g.pluck(t, cfg)
		return g.addNoise(x, g.uniform(0.1, 0.4))
	case KindWhiteNoise:
		return g.addNoise(make([]float64, len(t)), g.uniform(0.2, 0.8))
	default:
		return make([]float64, len(t))
	}
}

// Event returns the short decaying sinusoid used as a time-alignment event:
// amp*exp(-decay*t)*sin(freq*t) on t = linspace(0, 1, n).
func (g *Generator) Event(n int) []float64 {
	amp := g.uniform(0.3, 0.9) * g.sign()
	freq := 300 * g.rng.Float64()
	decay := 10 * g.rng.Float64()

	t := Linspace(0, 1, n)
	for i, ti := range t {
		t[i] = amp * math.Exp(-decay*ti) * math.Sin(freq*ti)
	}

	return t
}

func (g *Generator) sine(t []float64, cfg synthConfig) []float64 {
	tEnd := t[len(t)-1]
	nTones := 1 + g.rng.IntN(2)

	out := make([]float64, len(t))
	for range nTones {
		amp := g.uniform(0.2, 0.9)
		freq := g.uniform(5, 150)

		t0 := g.rng.Float64() * tEnd
		if cfg.hasOnset {
			t0 = cfg.onset * tEnd
		}

		for i, ti := range t {
			out[i] += amp * math.Cos(freq*(ti-t0))
		}
	}

	scale(out, 1/float64(nTones))

	return out
}

// pluck is a sum of sinusoids under an exponential envelope that is exactly
// zero before the onset.
func (g *Generator) pluck(t []float64, cfg synthConfig) []float64 {
	tEnd := t[len(t)-1]
	nTones := 1 + g.rng.IntN(3)

	out := make([]float64, len(t))
	for range nTones {
		amp := g.uniform(0.5, 0.95) * g.sign()

		tp := (2*g.rng.Float64() - 1) * 0.3 * tEnd
		if cfg.hasOnset {
			tp = cfg.onset * tEnd
		}

		freq := g.uniform(50, 6400)
		for i, ti := range t {
			out[i] += amp * math.Sin(freq*(ti-tp))
		}
	}

	t0 := 0.35 * g.rng.Float64() * tEnd
	if cfg.hasOnset {
		t0 = cfg.onset * tEnd
	}

	height := g.uniform(0.6, 0.95)
	decay := 12 * g.rng.Float64()

	for i, ti := range t {
		if ti < t0 {
			out[i] = 0
			continue
		}

		out[i] *= height * math.Exp(-decay*(ti-t0)) / float64(nTones)
	}

	return out
}

func (g *Generator) triangle(t []float64, cfg synthConfig) []float64 {
	tEnd := t[len(t)-1]
	height := g.uniform(0.4, 0.8) * g.sign()
	width := g.rng.Float64() / 4 * tEnd

	t0 := 2*width + 0.4*g.rng.Float64()*tEnd
	if cfg.hasOnset {
		t0 = cfg.onset * tEnd
	}

	out := make([]float64, len(t))

	if width > 0 {
		for i, ti := range t {
			if d := math.Abs(ti - t0); d <= width {
				out[i] = height * (1 - d/width)
			}
		}
	}

	return g.addNoise(out, g.uniform(0.02, 0.12))
}

// box is a pulse with linear edges 2*delta samples wide, zero outside.
func (g *Generator) box(t []float64, cfg synthConfig) []float64 {
	n := len(t)
	height := g.uniform(0.6, 0.95) * g.sign()
	delta := 1 + n/100

	up := delta + int(0.3*g.rng.Float64()*float64(n))
	if cfg.hasOnset {
		up = int(cfg.onset * float64(n))
	}

	dn := min(up+int((0.3+0.35*g.rng.Float64())*float64(n)), n-delta-1)
	edge := float64(2 * delta)

	out := make([]float64, n)
	for i := range out {
		rise := core.Clamp(float64(i-(up-delta))/edge, 0, 1)
		fall := core.Clamp(float64(dn+delta-i)/edge, 0, 1)
		out[i] = height * min(rise, fall)
	}

	return out
}

func (g *Generator) spikes(t []float64) []float64 {
	n := len(t)
	out := make([]float64, n)

	if n >= 3 {
		for range numSpikes {
			loc := 1 + g.rng.IntN(n-2)
			height := (2*g.rng.Float64() - 1) * 0.7
			out[loc] = height
			out[loc-1] = height / 2
			out[loc+1] = height / 2
		}
	}

	ampNoise := 0.1 * g.rng.Float64()
	for i := range out {
		out[i] += ampNoise * g.rng.NormFloat64()
	}

	return out
}

func (g *Generator) addNoise(x []float64, amp float64) []float64 {
	for i := range x {
		x[i] += amp * g.uniformSym()
	}

	return x
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

func (g *Generator) uniformSym() float64 {
	return 2*g.rng.Float64() - 1
}

func (g *Generator) sign() float64 {
	if g.rng.IntN(2) == 0 {
		return -1
	}

	return 1
}

func scale(x []float64, s float64) {
	for i := range x {
		x[i] *= s
	}
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	s := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * s
	}

	return out, nil
}
