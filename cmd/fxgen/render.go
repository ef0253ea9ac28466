package main

import (
	"fmt"
	"log/slog"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/effects"
	"github.com/jraju9/signaltrain/dsp/signal"
	"github.com/jraju9/signaltrain/internal/audiofile"
)

// RenderCmd writes one waveform, optionally through an effect.
type RenderCmd struct {
	Kind       string    `arg:"" help:"Waveform kind: sine, noisysine, pluck, triangle, box, spikes, noisybox, noisypluck, whitenoise, superposition."`
	Out        string    `arg:"" type:"path" help:"Output WAV file."`
	Seconds    float64   `default:"1" help:"Duration in seconds."`
	SampleRate int       `name:"sample-rate" default:"44100" help:"Sample rate in Hz."`
	Seed       uint64    `default:"1" help:"Random seed."`
	Onset      float64   `default:"-1" help:"Onset as a fraction of the duration. Negative draws it at random."`
	Peak       float64   `default:"0" help:"Normalize to this peak amplitude. 0 keeps the synthesized level."`
	Effect     string    `help:"Run the waveform through this effect."`
	Knobs      []float64 `help:"Normalized knob values in [-0.5, 0.5] for --effect. Missing knobs are centered."`
}

// Run implements the render command.
func (c *RenderCmd) Run(logger *slog.Logger) error {
	x, err := c.render()
	if err != nil {
		return err
	}

	if err := audiofile.Write(c.Out, x, c.SampleRate); err != nil {
		return err
	}

	logger.Info("rendered", slog.String("kind", c.Kind), slog.String("file", c.Out), slog.Int("samples", len(x)))

	return nil
}

func (c *RenderCmd) render() ([]float64, error) {
	kind, err := signal.ParseKind(c.Kind)
	if err != nil {
		return nil, err
	}

	n := int(c.Seconds * float64(c.SampleRate))
	if n <= 0 {
		return nil, fmt.Errorf("duration must be > 0 samples: %g s at %d Hz", c.Seconds, c.SampleRate)
	}

	gen := signal.NewSeededGenerator(c.Seed, core.WithSampleRate(float64(c.SampleRate)))

	var opts []signal.Option
	if c.Onset >= 0 {
		opts = append(opts, signal.WithOnset(c.Onset))
	}

	x := gen.Synthesize(gen.TimeAxis(n), kind, opts...)

	if c.Effect != "" {
		e, err := effects.New(c.Effect, core.WithSampleRate(float64(c.SampleRate)))
		if err != nil {
			return nil, err
		}

		knobs := make([]float64, e.Descriptor().NumKnobs())
		copy(knobs, c.Knobs)

		y, _, err := effects.Apply(e, x, knobs, gen.Rand())
		if err != nil {
			return nil, err
		}
		x = y
	}

	if c.Peak > 0 {
		return signal.Normalize(x, c.Peak)
	}

	return x, nil
}
