package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jraju9/signaltrain/dsp/core"
	"github.com/jraju9/signaltrain/dsp/effects"
)

// EffectsCmd lists the registered effects.
type EffectsCmd struct {
	SampleRate int  `name:"sample-rate" default:"44100" help:"Sample rate in Hz."`
	Functions  bool `help:"Also list the simple transfer functions."`
}

// Run implements the effects command.
func (c *EffectsCmd) Run() error {
	return listEffects(os.Stdout, float64(c.SampleRate), c.Functions)
}

func listEffects(w io.Writer, sampleRate float64, functions bool) error {
	for _, name := range effects.DefaultRegistry().Names() {
		e, err := effects.New(name, core.WithSampleRate(sampleRate))
		if err != nil {
			return err
		}

		d := e.Descriptor()
		if err := d.Info(w); err != nil {
			return err
		}

		if d.Inverse {
			if _, err := fmt.Fprintln(w, "    (inverse: input_ files hold the clean signal)"); err != nil {
				return err
			}
		}
	}

	if functions {
		if _, err := fmt.Fprintf(w, "Functions: %s\n", strings.Join(effects.FunctionNames, ", ")); err != nil {
			return err
		}
	}

	return nil
}
