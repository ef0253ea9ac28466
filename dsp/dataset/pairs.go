package dataset

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jraju9/signaltrain/dsp/signal"
)

// PairOption configures the pair generators.
type PairOption func(*pairConfig)

type pairConfig struct {
	seed      uint64
	workers   int
	numEvents int
	strength  float64
}

func defaultPairConfig() pairConfig {
	return pairConfig{
		workers:   runtime.GOMAXPROCS(0),
		numEvents: 1,
		strength:  1,
	}
}

// WithSeed sets the base seed. Chunk i draws from PCG(seed, i).
func WithSeed(seed uint64) PairOption {
	return func(c *pairConfig) { c.seed = seed }
}

// WithWorkers bounds the number of chunks generated concurrently. Values
// below 2 generate sequentially. Default is GOMAXPROCS.
func WithWorkers(n int) PairOption {
	return func(c *pairConfig) { c.workers = n }
}

// WithNumEvents sets the number of misaligned events per time-align chunk.
// Default is 1.
func WithNumEvents(n int) PairOption {
	return func(c *pairConfig) { c.numEvents = n }
}

// WithStrength sets the time-align strength in [0, 1]: 1 moves target
// events onto the grid, 0 leaves them where the input has them. Default
// is 1.
func WithStrength(s float64) PairOption {
	return func(c *pairConfig) { c.strength = s }
}

func applyPairOptions(opts []PairOption) pairConfig {
	cfg := defaultPairConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// newStack allocates rows x cols zeros backed by one slice.
func newStack(rows, cols int) [][]float64 {
	flat := make([]float64, rows*cols)
	stack := make([][]float64, rows)
	for i := range stack {
		stack[i] = flat[i*cols : (i+1)*cols : (i+1)*cols]
	}

	return stack
}

// forEachChunk calls fn once per chunk index with that chunk's RNG, at most
// cfg.workers at a time. fn must only write row i.
func forEachChunk(ctx context.Context, cfg pairConfig, numChunks int, fn func(rng *rand.Rand, i int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.workers, 1))

	for i := range numChunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fn(rand.New(rand.NewPCG(cfg.seed, uint64(i))), i)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// TimeAlignPairs builds numChunks (input, target) rows of chunkSize samples.
// Each row starts with a base event shared by input and target, followed by
// events placed on a grid in the target and jittered by up to a fifth of an
// event length in the input. Strength blends the target position between
// the jittered and the grid position.
func TimeAlignPairs(ctx context.Context, chunkSize, numChunks int, opts ...PairOption) (input, target [][]float64, err error) {
	cfg := applyPairOptions(opts)

	if cfg.numEvents < 1 {
		return nil, nil, fmt.Errorf("dataset: number of events must be > 0: %d", cfg.numEvents)
	}

	if numChunks < 0 {
		return nil, nil, fmt.Errorf("dataset: number of chunks must be >= 0: %d", numChunks)
	}

	if math.IsNaN(cfg.strength) || cfg.strength < 0 || cfg.strength > 1 {
		return nil, nil, fmt.Errorf("dataset: strength must be in [0, 1]: %f", cfg.strength)
	}

	eventLen := 0
	if chunkSize > 0 {
		eventLen = chunkSize / (cfg.numEvents + 1)
	}

	if eventLen < 1 {
		return nil, nil, fmt.Errorf("%w: %d too small for %d events", ErrChunkSize, chunkSize, cfg.numEvents)
	}

	input = newStack(numChunks, chunkSize)
	target = newStack(numChunks, chunkSize)

	err = forEachChunk(ctx, cfg, numChunks, func(rng *rand.Rand, i int) {
		timeAlignChunk(rng, input[i], target[i], eventLen, cfg.numEvents, cfg.strength)
	})
	if err != nil {
		return nil, nil, err
	}

	return input, target, nil
}

func timeAlignChunk(rng *rand.Rand, in, tg []float64, eventLen, numEvents int, strength float64) {
	gen := signal.NewGenerator(rng)
	n := len(in)

	base := gen.Event(int(1.5 * float64(eventLen)))
	copy(tg, base)
	copy(in, base)

	for e := range numEvents {
		event := gen.Event(eventLen)

		grid := e*eventLen + n/2
		shift := int(float64(eventLen) / 5 * (2*rng.Float64() - 1))
		inputAt := grid + shift
		targetAt := int(strength*float64(grid) + (1-strength)*float64(inputAt))

		place(tg, event, targetAt)
		place(in, event, max(inputAt, 0))
	}
}

// place copies event into dst at start, clipped to dst.
func place(dst, event []float64, start int) {
	if start < 0 || start >= len(dst) {
		return
	}

	copy(dst[start:], event)
}

// PitchShiftedPairs builds numChunks rows where the input is a sum of
// numWaves random cosines and the target the matching sines with amplitude
// scaled by ampFac and frequency by freqFac. It approximates a pitch shift
// without any signal processing.
func PitchShiftedPairs(ctx context.Context, chunkSize, numChunks int, sampleRate, ampFac, freqFac float64, numWaves int, opts ...PairOption) (input, target [][]float64, err error) {
	cfg := applyPairOptions(opts)

	if chunkSize <= 0 {
		return nil, nil, fmt.Errorf("%w: chunk size must be > 0: %d", ErrChunkSize, chunkSize)
	}

	if numChunks < 0 {
		return nil, nil, fmt.Errorf("dataset: number of chunks must be >= 0: %d", numChunks)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, nil, fmt.Errorf("dataset: sample rate must be positive and finite: %f", sampleRate)
	}

	input = newStack(numChunks, chunkSize)
	target = newStack(numChunks, chunkSize)

	err = forEachChunk(ctx, cfg, numChunks, func(rng *rand.Rand, i int) {
		in, tg := input[i], target[i]
		for range numWaves {
			amp := 0.2 * rng.Float64()
			omega := 2 * math.Pi * (400 + 400*rng.Float64())

			for j := range in {
				ts := float64(j) / sampleRate
				in[j] += amp * math.Cos(omega*ts)
				tg[j] += ampFac * amp * math.Sin(freqFac*omega*ts)
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}

	return input, target, nil
}
