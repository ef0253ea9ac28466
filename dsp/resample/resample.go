package resample

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidRatio indicates a non-positive up or down factor.
var ErrInvalidRatio = errors.New("resample: invalid ratio")

// Quality selects default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast uses short filters.
	QualityFast Quality = iota
	// QualityBalanced is the default.
	QualityBalanced
	// QualityBest uses long filters with deep stopband attenuation.
	QualityBest
)

func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityBest:
		return "best"
	default:
		return "balanced"
	}
}

// Profile holds the filter parameters of a quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

// Option configures a Resampler.
type Option func(*config)

// WithQuality selects a quality mode.
func WithQuality(q Quality) Option {
	return func(c *config) { c.quality = q }
}

// WithTapsPerPhase overrides the taps per polyphase branch. Values <= 0 are ignored.
func WithTapsPerPhase(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tapsPerPhase = n
		}
	}
}

// WithCutoffScale scales the anti-aliasing cutoff. 1 is the Nyquist limit of
// the slower rate. Values outside (0, 1] are ignored.
func WithCutoffScale(v float64) Option {
	return func(c *config) {
		if v > 0 && v <= 1 {
			c.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta. Negative values are ignored.
func WithKaiserBeta(beta float64) Option {
	return func(c *config) {
		if beta >= 0 {
			c.kaiserBeta = beta
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{quality: QualityBalanced, kaiserBeta: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := QualityProfile(cfg.quality)
	if cfg.tapsPerPhase <= 0 {
		cfg.tapsPerPhase = p.TapsPerPhase
	}

	if cfg.cutoffScale <= 0 {
		cfg.cutoffScale = p.CutoffScale
	}

	if cfg.kaiserBeta < 0 {
		cfg.kaiserBeta = p.KaiserBeta
	}

	return cfg
}

// Resampler converts by the rational factor up/down. Blocks passed to
// Process are treated as one continuous stream.
// It is not safe for concurrent use.
type Resampler struct {
	up, down int
	quality  Quality
	taps     int

	prototype []float64
	// phases[p] holds branch p reversed so that a dot product with the
	// input window ending at the current sample yields one output.
	phases [][]float64

	phase  int
	cursor int
	buf    []float64
}

// NewRational creates a Resampler for ratio up/down. The ratio is reduced
// by its greatest common divisor.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := applyOptions(opts)

	prototype, err := designPrototype(up, down, cfg)
	if err != nil {
		return nil, err
	}

	r := &Resampler{
		up:        up,
		down:      down,
		quality:   cfg.quality,
		taps:      cfg.tapsPerPhase,
		prototype: prototype,
		phases:    splitPhases(prototype, up, cfg.tapsPerPhase),
	}
	r.Reset()

	return r, nil
}

// Resample converts input by up/down in one shot. The filter delay is
// removed and the output holds ceil(len(input)*up/down) samples.
func Resample(input []float64, up, down int, opts ...Option) ([]float64, error) {
	r, err := NewRational(up, down, opts...)
	if err != nil {
		return nil, err
	}

	if len(input) == 0 {
		return []float64{}, nil
	}

	// Start the output clock half a prototype later to cancel its delay.
	delay := (len(r.prototype) - 1) / 2
	r.cursor += delay / r.up
	r.phase = delay % r.up

	n := (len(input)*r.up + r.down - 1) / r.down

	out := r.Process(input)
	out = append(out, r.Process(make([]float64, r.taps+1))...)

	return out[:min(n, len(out))], nil
}

// Reset clears the stream state.
func (r *Resampler) Reset() {
	r.phase = 0
	r.cursor = r.taps - 1
	r.buf = append(r.buf[:0], make([]float64, r.taps-1)...)
}

// Process converts the next block of the stream.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	r.buf = append(r.buf, input...)
	out := make([]float64, 0, len(input)*r.up/r.down+1)

	for r.cursor < len(r.buf) {
		start := r.cursor - r.taps + 1
		out = append(out, vecmath.DotProduct(r.phases[r.phase], r.buf[start:r.cursor+1]))

		r.phase += r.down
		r.cursor += r.phase / r.up
		r.phase %= r.up
	}

	drop := min(r.cursor-r.taps+1, len(r.buf))
	if drop > 0 {
		r.buf = r.buf[:copy(r.buf, r.buf[drop:])]
		r.cursor -= drop
	}

	return out
}

// Ratio returns the reduced up and down factors.
func (r *Resampler) Ratio() (up, down int) { return r.up, r.down }

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality { return r.quality }

// TapsPerPhase returns the length of each polyphase branch.
func (r *Resampler) TapsPerPhase() int { return r.taps }

// Latency returns the filter delay in output samples.
func (r *Resampler) Latency() float64 {
	return float64(len(r.prototype)-1) / 2 / float64(r.down)
}

// Prototype returns a copy of the prototype low-pass taps.
func (r *Resampler) Prototype() []float64 {
	out := make([]float64, len(r.prototype))
	copy(out, r.prototype)

	return out
}
