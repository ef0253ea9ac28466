package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/dataset"
	"github.com/jraju9/signaltrain/dsp/effects"
	"github.com/jraju9/signaltrain/dsp/knob"
	"github.com/jraju9/signaltrain/dsp/level"
	"github.com/jraju9/signaltrain/dsp/signal"
	"github.com/jraju9/signaltrain/internal/audiofile"
	"github.com/jraju9/signaltrain/internal/cli"
)

// GenerateCmd renders input_/target_ file pairs.
type GenerateCmd struct {
	Effect      string  `arg:"" help:"Effect name, see 'fxgen effects'."`
	Out         string  `short:"o" type:"path" default:"Train" help:"Output directory."`
	Files       int     `short:"n" default:"100" help:"Number of file pairs."`
	Start       int     `default:"0" help:"Id of the first pair."`
	Seconds     float64 `default:"5" help:"Length of each file in seconds."`
	SampleRate  int     `name:"sample-rate" default:"44100" help:"Sample rate in Hz."`
	ChunkSize   int     `name:"chunk-size" default:"4096" help:"Samples per synthesized segment."`
	SettingsPer int     `name:"settings-per" default:"0" help:"Walk a knob grid with this many settings per knob instead of drawing random knobs."`
	Seed        uint64  `default:"0" help:"Base random seed, 0 draws one at random. Pair id selects the stream."`
	Workers     int     `short:"j" default:"0" help:"Pairs rendered concurrently, 0 uses GOMAXPROCS."`
	BitDepth    int     `name:"bit-depth" default:"16" help:"PCM bit depth."`
}

// Run implements the generate command.
func (c *GenerateCmd) Run(ctx context.Context, logger *slog.Logger) error {
	job, err := c.job()
	if err != nil {
		return err
	}

	began := time.Now()
	levels, err := job.run(ctx, logger)
	if err != nil {
		return err
	}

	cli.PrintSummary(os.Stdout, "Generated", []cli.Field{
		{Key: "Effect", Value: job.effect.Descriptor().Name},
		{Key: "Pairs", Value: strconv.Itoa(job.files)},
		{Key: "Samples per file", Value: strconv.Itoa(job.length)},
		{Key: "Directory", Value: job.dir},
		{Key: "Seed", Value: strconv.FormatUint(job.seed, 10)},
		{Key: "Input peak / RMS", Value: formatLevels(levels.input)},
		{Key: "Target peak / RMS", Value: formatLevels(levels.target)},
		{Key: "Clipped samples", Value: fmt.Sprintf("%d in, %d out", levels.input.Clipped, levels.target.Clipped)},
		{Key: "Elapsed", Value: time.Since(began).Round(time.Millisecond).String()},
	})

	return nil
}

func (c *GenerateCmd) job() (*pairJob, error) {
	if c.Files < 0 || c.Start < 0 {
		return nil, fmt.Errorf("file count and start id must be >= 0: %d, %d", c.Files, c.Start)
	}

	length := int(c.Seconds * float64(c.SampleRate))
	if length <= 0 {
		return nil, fmt.Errorf("file length must be > 0 samples: %g s at %d Hz", c.Seconds, c.SampleRate)
	}

	e, err := effects.New(c.Effect,
		core.WithSampleRate(float64(c.SampleRate)),
		core.WithChunkSize(c.ChunkSize))
	if err != nil {
		return nil, err
	}

	// A fixed default seed would make every output directory a copy of
	// the first one.
	seed := c.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}

	return &pairJob{
		effect:      e,
		dir:         c.Out,
		files:       c.Files,
		start:       c.Start,
		length:      length,
		chunkSize:   max(c.ChunkSize, 1),
		settingsPer: c.SettingsPer,
		seed:        seed,
		workers:     c.Workers,
		sampleRate:  c.SampleRate,
		bitDepth:    c.BitDepth,
	}, nil
}

func formatLevels(s level.Stats) string {
	return fmt.Sprintf("%.1f / %.1f dBFS", s.PeakDB, s.RMSDB)
}

// jobLevels are the merged level statistics of all written files.
type jobLevels struct {
	input, target level.Stats
}

// pairJob renders pairs start..start+files-1 of one effect.
type pairJob struct {
	effect      effects.Effect
	dir         string
	files       int
	start       int
	length      int
	chunkSize   int
	settingsPer int
	seed        uint64
	workers     int
	sampleRate  int
	bitDepth    int
}

func (j *pairJob) run(ctx context.Context, logger *slog.Logger) (jobLevels, error) {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return jobLevels{}, fmt.Errorf("create %s: %w", j.dir, err)
	}

	gridSize := 0
	if j.settingsPer > 0 {
		gridSize = knob.GridSize(j.effect.Descriptor().NumKnobs(), j.settingsPer)
		if gridSize < 0 {
			return jobLevels{}, fmt.Errorf("knob grid with %d settings per knob is too large", j.settingsPer)
		}
	}

	logger.Info("generating",
		slog.String("effect", j.effect.Descriptor().Name),
		slog.Int("pairs", j.files),
		slog.Int("samples", j.length),
		slog.Int("grid", gridSize),
		slog.Uint64("seed", j.seed),
		slog.String("dir", j.dir))

	workers := j.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		done atomic.Int64
		mu   sync.Mutex
	)
	inMeter, tgMeter := level.NewMeter(), level.NewMeter()
	for id := j.start; id < j.start+j.files; id++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			in, tg, err := j.renderPair(id, gridSize)
			if err != nil {
				return fmt.Errorf("pair %d: %w", id, err)
			}

			mu.Lock()
			inMeter.Merge(in)
			tgMeter.Merge(tg)
			mu.Unlock()

			if n := done.Add(1); n%100 == 0 {
				logger.Debug("progress", slog.Int64("done", n), slog.Int("of", j.files))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return jobLevels{}, err
	}

	levels := jobLevels{input: inMeter.Result(), target: tgMeter.Result()}
	if levels.target.Clipped > 0 {
		logger.Warn("targets clip at full scale", slog.Int("samples", levels.target.Clipped))
	}

	return levels, ctx.Err()
}

// renderPair writes one pair and returns level meters of the written
// input and target signals.
func (j *pairJob) renderPair(id, gridSize int) (*level.Meter, *level.Meter, error) {
	rng := rand.New(rand.NewPCG(j.seed, uint64(id)))
	desc := j.effect.Descriptor()

	gen := signal.NewGenerator(rng, core.WithSampleRate(float64(j.sampleRate)))
	x := make([]float64, j.length)
	for at := 0; at < j.length; at += j.chunkSize {
		n := min(j.chunkSize, j.length-at)
		copy(x[at:], gen.Random(gen.TimeAxis(n)))
	}

	var (
		phys []float64
		err  error
	)
	if gridSize > 0 {
		phys, err = knob.IntToKnobs(id%gridSize, desc.Ranges(), j.settingsPer)
	} else {
		phys, err = knob.ToPhysical(desc.Ranges(), knob.RandomNormalized(rng, desc.NumKnobs()))
	}
	if err != nil {
		return nil, nil, err
	}

	y, xOut, err := j.effect.ProcessPhysical(x, phys, rng)
	if err != nil {
		return nil, nil, err
	}

	// Inverse effects keep the clean signal in input_; loaders swap back.
	in, tg := xOut, y
	if desc.Inverse {
		in, tg = y, xOut
	}

	opt := audiofile.WithBitDepth(j.bitDepth)
	if err := audiofile.Write(filepath.Join(j.dir, dataset.InputName(id)), in, j.sampleRate, opt); err != nil {
		return nil, nil, err
	}

	if err := audiofile.Write(filepath.Join(j.dir, dataset.TargetName(id, desc.Name, phys)), tg, j.sampleRate, opt); err != nil {
		return nil, nil, err
	}

	inMeter, tgMeter := level.NewMeter(), level.NewMeter()
	inMeter.Update(in)
	tgMeter.Update(tg)

	return inMeter, tgMeter, nil
}
