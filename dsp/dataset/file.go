package dataset

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/effects"
	"github.com/jraju9/signaltrain/dsp/knob"
	"github.com/jraju9/signaltrain/internal/audiofile"
)

// FileDataset serves random windows of pre-rendered input_/target_ WAV
// pairs from one directory. The effect supplies knob ranges and, with
// WithRerun, recomputes targets.
//
// Item is safe for concurrent use.
type FileDataset struct {
	dir       string
	chunkSize int
	skip      int
	effect    effects.Effect
	cfg       config

	inputs  []string
	targets []string

	// Preloaded rows, one per file pair. Physical knob units.
	x, y, knobs [][]float64

	calls atomic.Uint64
}

// NewFileDataset pairs the input_* and target_* files in dir. Files are
// sorted by name and must pair by id. With preloading (the default) up to
// 100000 pairs are read into rows as wide as the first pair; longer files
// are truncated and shorter ones zero-padded.
func NewFileDataset(dir string, chunkSize int, effect effects.Effect, opts ...Option) (*FileDataset, error) {
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

	if effect == nil {
		return nil, fmt.Errorf("dataset: effect is required")
	}

	inputs, targets, err := pairFiles(dir)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	logger.Info("file dataset",
		slog.String("dir", dir),
		slog.Int("inputs", len(inputs)),
		slog.Int("targets", len(targets)),
		slog.Uint64("seed", cfg.seed))

	for i := range min(10, len(inputs)) {
		logger.Debug("pair",
			slog.Int("i", i),
			slog.String("input", filepath.Base(inputs[i])),
			slog.String("target", filepath.Base(targets[i])))
	}

	d := &FileDataset{
		dir:       dir,
		chunkSize: chunkSize,
		skip:      int(float64(chunkSize) * cfg.skipFactor),
		effect:    effect,
		cfg:       cfg,
		inputs:    inputs,
		targets:   targets,
	}

	if d.skip < 0 || d.skip > chunkSize {
		return nil, fmt.Errorf("dataset: skip factor must be in [0, 1]: %f", cfg.skipFactor)
	}

	if cfg.preload {
		if err := d.preload(); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func pairFiles(dir string) (inputs, targets []string, err error) {
	inputs, err = filepath.Glob(filepath.Join(dir, inputPrefix+"*"))
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: list %s: %w", dir, err)
	}

	targets, err = filepath.Glob(filepath.Join(dir, targetPrefix+"*"))
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: list %s: %w", dir, err)
	}

	sort.Strings(inputs)
	sort.Strings(targets)

	if len(inputs) != len(targets) {
		return nil, nil, fmt.Errorf("%w: %d inputs and %d targets in %s", ErrFilePairing, len(inputs), len(targets), dir)
	}

	if len(inputs) == 0 {
		return nil, nil, fmt.Errorf("%w: no files in %s", ErrFilePairing, dir)
	}

	for i := range inputs {
		if a, b := pairID(inputs[i]), pairID(targets[i]); a != b {
			return nil, nil, fmt.Errorf("%w: %s does not match %s", ErrFilePairing,
				filepath.Base(inputs[i]), filepath.Base(targets[i]))
		}
	}

	return inputs, targets, nil
}

func (d *FileDataset) preload() error {
	n := min(maxPreloadFiles, len(d.inputs))

	in, tg, _, err := d.readPair(0)
	if err != nil {
		return err
	}

	d.cfg.logger.Info("preloading",
		slog.Int("files", n),
		slog.Int("samples_per_file", len(in)),
		slog.Float64("seconds_per_file", float64(len(in))/d.cfg.sampleRate))

	d.x = newStack(n, len(in))
	d.y = newStack(n, len(tg))
	d.knobs = make([][]float64, n)

	for i := range n {
		in, tg, k, err := d.readPair(i)
		if err != nil {
			return err
		}

		copy(d.x[i], in)
		copy(d.y[i], tg)
		d.knobs[i] = k

		if (i+1)%1000 == 0 {
			d.cfg.logger.Debug("preload progress", slog.Int("done", i+1), slog.Int("of", n))
		}
	}

	if d.skip > 0 {
		d.cfg.logger.Info("skipping leading target samples", slog.Int("samples", d.skip))
		for i := range d.y {
			copy(d.y[i][:min(d.skip, len(d.y[i]))], d.x[i])
		}
	}

	return nil
}

// readPair reads pair i and its knobs. Inverse effects store the clean
// signal as input_, so the halves are swapped.
func (d *FileDataset) readPair(i int) (in, tg, knobs []float64, err error) {
	in, _, err = audiofile.Read(d.inputs[i])
	if err != nil {
		return nil, nil, nil, err
	}

	tg, _, err = audiofile.Read(d.targets[i])
	if err != nil {
		return nil, nil, nil, err
	}

	knobs, err = ParseKnobString(d.targets[i])
	if err != nil {
		return nil, nil, nil, err
	}

	if d.effect.Descriptor().Inverse {
		in, tg = tg, in
	}

	return in, tg, knobs, nil
}

// Len returns the number of items per epoch.
func (d *FileDataset) Len() int { return d.cfg.datapoints }

// NumPairs returns the number of file pairs found.
func (d *FileDataset) NumPairs() int { return len(d.inputs) }

// Item returns a random window of a random pair. idx is ignored.
func (d *FileDataset) Item(_ int) (Item, error) {
	rng := freshRand(d.cfg.seed, d.calls.Add(1))

	x, y, knobs, err := d.chunk(rng)
	if err != nil {
		return Item{}, err
	}

	return Item{
		Input:  core.ToFloat32(x),
		Target: core.ToFloat32(y),
		Knobs:  core.ToFloat32(knobs),
	}, nil
}

func (d *FileDataset) chunk(rng *rand.Rand) (x, y, normalized []float64, err error) {
	var in, tg, phys []float64

	if d.x != nil {
		i := rng.IntN(len(d.x))
		in, tg, phys = d.x[i], d.y[i], d.knobs[i]
	} else {
		in, tg, phys, err = d.readPair(rng.IntN(len(d.inputs)))
		if err != nil {
			return nil, nil, nil, err
		}
	}

	n := min(len(in), len(tg))
	if n <= d.chunkSize {
		return nil, nil, nil, fmt.Errorf("%w: file has %d samples, need more than %d", ErrChunkSize, n, d.chunkSize)
	}

	start := rng.IntN(n - d.chunkSize)
	x = core.Clone(in[start : start+d.chunkSize])
	y = core.Clone(tg[start : start+d.chunkSize])

	if d.cfg.rerun {
		y, x, err = d.effect.ProcessPhysical(x, phys, rng)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	if d.skip > 0 {
		copy(y[:d.skip], x)
	}

	y = core.Clone(core.Tail(y, d.cfg.ySize))

	normalized, err = knob.ToNormalized(d.effect.Descriptor().Ranges(), phys)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("dataset: knobs of %s: %w", d.effect.Descriptor().Name, err)
	}

	if d.cfg.augment {
		Augment(rng, x, y, d.cfg.augmentOpt)
	}

	return x, y, normalized, nil
}
