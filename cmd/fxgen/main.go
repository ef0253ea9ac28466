// Command fxgen renders synthetic training data for audio-effect models.
//
// Usage:
//
//	fxgen <command> [flags]
//
// Commands:
//
//	generate  render input_/target_ WAV pairs for one effect
//	effects   list the available effects and their knob ranges
//	render    write one synthetic waveform to a WAV file
//
// Examples:
//
//	fxgen effects
//	fxgen generate Compressor_4c -o Train -n 2000 --seconds 5
//	fxgen generate Echo -o Val -n 100 --settings-per 10
//	fxgen render pluck pluck.wav --onset 0.25
package main

import (
	"context"
	"log/slog"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/jraju9/signaltrain/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Verbose bool        `short:"v" help:"Log at debug level."`
	Version versionFlag `help:"Show version information."`

	Generate GenerateCmd `cmd:"" help:"Render input/target WAV pairs for an effect."`
	Effects  EffectsCmd  `cmd:"" help:"List available effects and their knobs."`
	Render   RenderCmd   `cmd:"" help:"Write one synthetic waveform to a WAV file."`
}

type versionFlag bool

// BeforeReset prints the version and exits before commands are validated.
func (versionFlag) BeforeReset(app *kong.Kong) error {
	cli.PrintVersion(app.Stdout, version)
	app.Exit(0)
	return nil
}

func main() {
	args := &CLI{}
	kctx := kong.Parse(args,
		kong.Name("fxgen"),
		kong.Description("Synthetic effect-pair generator"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter("fxgen", "Synthetic effect-pair generator")),
	)

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(logger); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}
