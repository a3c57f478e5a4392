package knitcalc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/locale"
	"github.com/aretw0/knitcalc/pkg/presentation"
)

// DefaultExample is the calculation shown when an interactive session starts.
var DefaultExample = domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease}

// Runner handles an interactive calculator session using provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
//
// Each input line is one of:
//
//	166 52        calculate with the current mode and language
//	dec | inc     switch mode (also "mode increase", "felle", "øke")
//	lang no       switch language
//	help          list commands
//	exit | quit   leave
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool // no banner, prompt or default example
	Renderer ViewRenderer
	Banner   func(w io.Writer, title string) // replaces the plain title line
	Mode     domain.Mode
	Lang     string
}

// ViewRenderer turns a rendered view into output text.
// This allows for terminal styling without coupling the core package.
type ViewRenderer func(presentation.View) string

// NewRunner creates a Runner that starts in decrease mode and English.
// Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{
		Mode: domain.Decrease,
		Lang: locale.DefaultLang,
	}
}

// Run executes the read-calculate-print loop until EOF or "exit".
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	mode := r.Mode
	if !mode.Valid() {
		mode = domain.Decrease
	}
	tbl := engine.Catalog().Lookup(r.Lang)

	if !r.Headless {
		title := tbl.T(locale.KeyTitle, nil)
		if r.Banner != nil {
			r.Banner(writer, title)
		} else {
			fmt.Fprintf(writer, "--- %s ---\n", title)
		}
		if err := r.show(ctx, engine, tbl, DefaultExample); err != nil {
			return err
		}
	}

	for {
		if !r.Headless {
			fmt.Fprintf(writer, "[%s] > ", tbl.T(modeKey(mode), nil))
		}

		text, err := lineReader.ReadString('\n')
		input := strings.TrimSpace(text)
		if err != nil && input == "" {
			if err == io.EOF {
				// Graceful exit on EOF
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		fields := strings.Fields(input)
		switch {
		case len(fields) == 0:
		case input == "exit" || input == "quit":
			fmt.Fprintln(writer, "Bye!")
			return nil
		case input == "help":
			fmt.Fprintln(writer, "Commands: <stitches> <changes> | dec | inc | mode <mode> | lang <tag> | exit")
		case fields[0] == "lang" && len(fields) == 2:
			tbl = engine.Catalog().Lookup(fields[1])
			fmt.Fprintf(writer, "%s (%s)\n", tbl.Name, tbl.Lang)
		case fields[0] == "mode" && len(fields) == 2:
			mode = r.switchMode(tbl, mode, fields[1])
		case len(fields) == 1 && !isNumeric(fields[0]):
			mode = r.switchMode(tbl, mode, fields[0])
		case len(fields) == 2:
			req, perr := domain.ParseRequest(fields[0], fields[1], string(mode))
			if perr != nil {
				// Non-numeric counts render as invalid input, like any other bad request.
				req = domain.Request{Stitches: -1, Changes: -1, Mode: mode}
			}
			if err := r.show(ctx, engine, tbl, req); err != nil {
				return err
			}
		default:
			fmt.Fprintln(writer, tbl.T(locale.KeyInvalidInput, nil))
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (r *Runner) switchMode(tbl *locale.Table, current domain.Mode, text string) domain.Mode {
	m, err := domain.ParseMode(text)
	if err != nil {
		fmt.Fprintln(r.Output, tbl.T(locale.KeyInvalidInput, nil))
		return current
	}
	fmt.Fprintln(r.Output, tbl.T(modeKey(m), nil))
	return m
}

func (r *Runner) show(ctx context.Context, engine *Engine, tbl *locale.Table, req domain.Request) error {
	res, err := engine.Calculate(ctx, req)
	if err != nil {
		return err
	}
	view := presentation.Render(presentation.Context{Mode: req.Mode, Locale: tbl}, res)

	output := view.Text()
	if r.Renderer != nil {
		output = r.Renderer(view)
	}
	fmt.Fprint(r.Output, output)
	return nil
}

func modeKey(m domain.Mode) locale.Key {
	if m == domain.Increase {
		return locale.KeyIncrease
	}
	return locale.KeyDecrease
}

func isNumeric(s string) bool {
	_, err := domain.ParseCount(s)
	return err == nil
}
