package cli

import (
	"io"
	"os"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/internal/presentation/tui"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/presentation"
	"github.com/muesli/termenv"
)

// RunOptions contains all the configuration for the interactive session.
type RunOptions struct {
	Mode     domain.Mode
	Lang     string
	Headless bool
	Profile  termenv.Profile
	Input    io.Reader
	Output   io.Writer
}

// RunInteractive starts the read-calculate-print loop until EOF, "exit" or
// an interrupt. Interrupts end the session cleanly.
func RunInteractive(ctx *SignalContext, eng *knitcalc.Engine, opts RunOptions) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := knitcalc.NewRunner()
	r.Input = NewInterruptibleReader(opts.Input, ctx.Done())
	r.Output = opts.Output
	r.Headless = opts.Headless
	r.Lang = opts.Lang
	if opts.Mode.Valid() {
		r.Mode = opts.Mode
	}

	profile := opts.Profile
	r.Renderer = func(v presentation.View) string {
		return tui.Colorize(v, profile)
	}
	if profile != termenv.Ascii {
		r.Banner = func(w io.Writer, title string) {
			tui.PrintBanner(w, title, profile)
		}
	}

	return handleExecutionError(r.Run(ctx, eng))
}
