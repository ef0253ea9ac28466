package dataset

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/effects"
	"github.com/jraju9/signaltrain/dsp/knob"
	"github.com/jraju9/signaltrain/dsp/signal"
)

// SynthDataset generates items on the fly: a synthetic waveform, random
// knobs and the effect's response to both.
//
// Item is safe for concurrent use. Recycled item i is generated from
// PCG(seed, i); without recycling each call draws from its own RNG on a
// separate set of streams, so a recycled validation set and a fresh
// training set on one seed never share items.
type SynthDataset struct {
	chunkSize int
	effect    effects.Effect
	cfg       config
	t         []float64

	calls    atomic.Uint64
	recycled []Item
}

// NewSynthDataset returns a SynthDataset producing chunkSize-sample inputs
// for effect.
func NewSynthDataset(chunkSize int, effect effects.Effect, opts ...Option) (*SynthDataset, error) {
	cfg := applyOptions(opts)

	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be > 0: %d", ErrChunkSize, chunkSize)
	}

	if cfg.ySize == 0 {
		cfg.ySize = chunkSize
	}

	if cfg.ySize < 0 || cfg.ySize > chunkSize {
		return nil, fmt.Errorf("%w: target size %d for chunk size %d", ErrChunkSize, cfg.ySize, chunkSize)
	}

	if !core.IsFinitePositive(cfg.sampleRate) {
		return nil, fmt.Errorf("dataset: sample rate must be positive and finite: %f", cfg.sampleRate)
	}

	if cfg.datapoints < 0 {
		return nil, fmt.Errorf("dataset: datapoints must be >= 0: %d", cfg.datapoints)
	}

	if len(cfg.kinds) == 0 {
		return nil, fmt.Errorf("dataset: at least one waveform kind is required")
	}

	if effect == nil {
		return nil, fmt.Errorf("dataset: effect is required")
	}

	d := &SynthDataset{
		chunkSize: chunkSize,
		effect:    effect,
		cfg:       cfg,
		t:         signal.TimeAxis(chunkSize, cfg.sampleRate),
	}

	cfg.logger.Info("synthetic dataset",
		slog.String("effect", effect.Descriptor().Name),
		slog.Int("chunk_size", chunkSize),
		slog.Int("y_size", cfg.ySize),
		slog.Int("datapoints", cfg.datapoints),
		slog.Bool("recycle", cfg.recycle),
		slog.Uint64("seed", cfg.seed))

	if cfg.recycle {
		if err := d.fillRecycled(); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *SynthDataset) fillRecycled() error {
	d.cfg.logger.Debug("generating recycled items", slog.Int("count", d.cfg.datapoints))

	d.recycled = make([]Item, d.cfg.datapoints)
	for i := range d.recycled {
		item, err := d.generate(rand.New(rand.NewPCG(d.cfg.seed, uint64(i))))
		if err != nil {
			return fmt.Errorf("dataset: recycled item %d: %w", i, err)
		}
		d.recycled[i] = item
	}

	return nil
}

// Len returns the number of items per epoch.
func (d *SynthDataset) Len() int { return d.cfg.datapoints }

// Seed returns the base seed, drawn at random unless WithDatasetSeed was
// given.
func (d *SynthDataset) Seed() uint64 { return d.cfg.seed }

// Effect returns the effect applied to every item.
func (d *SynthDataset) Effect() effects.Effect { return d.effect }

// Item returns item idx. Recycled datasets return the stored item and
// require idx in [0, Len()). Otherwise idx is ignored and a fresh item is
// generated.
func (d *SynthDataset) Item(idx int) (Item, error) {
	if d.recycled != nil {
		if idx < 0 || idx >= len(d.recycled) {
			return Item{}, fmt.Errorf("%w: %d of %d", ErrIndexRange, idx, len(d.recycled))
		}

		return d.recycled[idx], nil
	}

	return d.generate(freshRand(d.cfg.seed, d.calls.Add(1)))
}

func (d *SynthDataset) generate(rng *rand.Rand) (Item, error) {
	x, y, knobs, err := d.GenerateChunk(rng, nil, nil)
	if err != nil {
		return Item{}, err
	}

	return Item{
		Input:  core.ToFloat32(x),
		Target: core.ToFloat32(y),
		Knobs:  core.ToFloat32(knobs),
	}, nil
}

// GenerateChunk synthesizes one (input, target, normalized knobs) triple.
// A nil kind picks one of the configured kinds at random; nil knobs are
// drawn from knob.RandomNormalized. The target is trimmed to the configured
// target size and augmentation, when enabled, is applied last.
func (d *SynthDataset) GenerateChunk(rng *rand.Rand, kind *signal.Kind, knobs []float64) (x, y, normalized []float64, err error) {
	var k signal.Kind
	if kind != nil {
		k = *kind
	} else {
		k = d.cfg.kinds[rng.IntN(len(d.cfg.kinds))]
	}

	gen := signal.NewGenerator(rng, core.WithSampleRate(d.cfg.sampleRate))
	sig := gen.Synthesize(d.t, k)

	if knobs == nil {
		knobs = knob.RandomNormalized(rng, d.effect.Descriptor().NumKnobs())
	}

	y, x, err = effects.Apply(d.effect, sig, knobs, rng)
	if err != nil {
		return nil, nil, nil, err
	}

	y = core.Clone(core.Tail(y, d.cfg.ySize))
	x = core.Clone(x)

	if d.cfg.augment {
		Augment(rng, x, y, d.cfg.augmentOpt)
	}

	return x, y, knobs, nil
}
