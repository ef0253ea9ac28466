package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/jraju9/signaltrain/dsp/effects"
	"github.com/jraju9/signaltrain/dsp/signal"
)

// Names of the GenAudio effects that generate input and target together.
const (
	EffectPitchShift = "ps"
	EffectTimeAlign  = "ta"
)

const (
	psSampleRate = 44100.0
	psNumWaves   = 20
	psAmpFac     = 0.43
	psFreqFac    = 0.31

	taStrength = 0.5

	clipsPerChunk = 4
)

// GenAudio produces sigLength/chunkSize (input, target) rows for effect.
//
// "ps" and "ta" use PitchShiftedPairs and TimeAlignPairs (strength 0.5
// unless overridden). Any name accepted by effects.Function synthesizes
// back-to-back plucks of chunkSize/4 samples, applies the function to the
// whole signal and chops both halves into rows. The input is halved first
// for "delay" to leave headroom for the echoes.
func GenAudio(ctx context.Context, sigLength, chunkSize int, effect string, opts ...PairOption) (input, target [][]float64, err error) {
	if chunkSize <= 0 || sigLength < chunkSize {
		return nil, nil, fmt.Errorf("%w: %d for signal length %d", ErrChunkSize, chunkSize, sigLength)
	}

	numChunks := sigLength / chunkSize

	switch effect {
	case EffectPitchShift:
		return PitchShiftedPairs(ctx, chunkSize, numChunks, psSampleRate, psAmpFac, psFreqFac, psNumWaves, opts...)
	case EffectTimeAlign:
		return TimeAlignPairs(ctx, chunkSize, numChunks, append([]PairOption{WithStrength(taStrength)}, opts...)...)
	}

	if !slices.Contains(effects.FunctionNames, effect) {
		return nil, nil, fmt.Errorf("%w: %q", effects.ErrUnknownFunction, effect)
	}

	clipSize := chunkSize / clipsPerChunk
	if clipSize < 2 {
		return nil, nil, fmt.Errorf("%w: %d leaves no room for %d clips", ErrChunkSize, chunkSize, clipsPerChunk)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	cfg := applyPairOptions(opts)
	gen := signal.NewGenerator(rand.New(rand.NewPCG(cfg.seed, 0)))
	t := signal.Linspace(0, 1, clipSize)

	sig := make([]float64, sigLength)
	for start := 0; start+clipSize <= sigLength; start += clipSize {
		copy(sig[start:], gen.Synthesize(t, signal.KindPluck))
	}

	if effect == "delay" {
		for i := range sig {
			sig[i] *= 0.5
		}
	}

	out, err := effects.Function(effect, sig)
	if err != nil {
		return nil, nil, err
	}

	if input, err = ChopNStack(sig, chunkSize); err != nil {
		return nil, nil, err
	}

	if target, err = ChopNStack(out, chunkSize); err != nil {
		return nil, nil, err
	}

	return input, target, nil
}
