package dataset

import (
	"log/slog"
	"math/rand/v2"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/signal"
)

// Item is one model-facing training triple. Knobs are normalized to
// [-0.5, 0.5]. Target may be shorter than Input; the difference is the
// lookback.
type Item struct {
	Input  []float32
	Target []float32
	Knobs  []float32
}

// Default dataset settings.
const (
	DefaultDatapoints = 8000
	maxPreloadFiles   = 100000
)

// freshStreams offsets the seed of items generated on demand so they never
// share a PCG state with the recycled items of a dataset on the same seed.
const freshStreams = 0x9e3779b97f4a7c15

// freshRand returns the generator of the n-th on-demand item.
func freshRand(seed, n uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed^freshStreams, n))
}

// Option configures SynthDataset, FileDataset and WindowReader. Options a
// type has no use for are ignored.
type Option func(*config)

type config struct {
	sampleRate float64
	datapoints int
	recycle    bool
	ySize      int
	augment    bool
	augmentOpt AugmentOptions
	seed       uint64
	seedSet    bool
	kinds      []signal.Kind
	logger     *slog.Logger

	preload    bool
	skipFactor float64
	rerun      bool

	sequential bool
}

func defaultConfig() config {
	return config{
		sampleRate: core.DefaultSampleRate,
		datapoints: DefaultDatapoints,
		augment:    true,
		augmentOpt: DefaultAugmentOptions(),
		kinds: []signal.Kind{
			signal.KindSine, signal.KindNoisySine, signal.KindPluck,
			signal.KindBox, signal.KindNoisyBox, signal.KindNoisyPluck,
		},
		preload: true,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	if !cfg.seedSet {
		cfg.seed = rand.Uint64()
	}

	return cfg
}

// WithSampleRate sets the sample rate in Hz used for synthesis.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) { c.sampleRate = sampleRate }
}

// WithDatapoints sets Len(). Default is 8000.
func WithDatapoints(n int) Option {
	return func(c *config) { c.datapoints = n }
}

// WithRecycle makes a SynthDataset generate all items once at construction
// and serve the same items afterwards.
func WithRecycle(recycle bool) Option {
	return func(c *config) { c.recycle = recycle }
}

// WithYSize sets the target length. Default is the chunk size.
func WithYSize(n int) Option {
	return func(c *config) { c.ySize = n }
}

// WithAugment enables or disables augmentation with the given options.
func WithAugment(enabled bool, opts AugmentOptions) Option {
	return func(c *config) {
		c.augment = enabled
		c.augmentOpt = opts
	}
}

// WithDatasetSeed sets the base seed for item generation. Without it every
// dataset draws its own random seed, so two datasets never repeat each
// other's items; the seed in use is logged at construction.
func WithDatasetSeed(seed uint64) Option {
	return func(c *config) { c.seed, c.seedSet = seed, true }
}

// WithKinds restricts the waveform kinds a SynthDataset draws from.
func WithKinds(kinds ...signal.Kind) Option {
	return func(c *config) { c.kinds = kinds }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithPreload controls whether a FileDataset reads all pairs up front.
// Default is true.
func WithPreload(preload bool) Option {
	return func(c *config) { c.preload = preload }
}

// WithSkipFactor makes a FileDataset overwrite the first
// factor*chunkSize target samples of every item with the input.
func WithSkipFactor(factor float64) Option {
	return func(c *config) { c.skipFactor = factor }
}

// WithRerun makes a FileDataset recompute each target window by running
// the effect on the input window instead of using the target file.
func WithRerun(rerun bool) Option {
	return func(c *config) { c.rerun = rerun }
}

// WithSequential makes a WindowReader step through a file window by window
// instead of picking random windows.
func WithSequential(sequential bool) Option {
	return func(c *config) { c.sequential = sequential }
}
