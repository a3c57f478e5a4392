package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/internal/dto"
	"github.com/aretw0/knitcalc/internal/presentation/tui"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/presentation"
	"github.com/muesli/termenv"
)

// Output formats for the calc command.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrRejected marks a calculation whose outcome is invalid input or too many
// decreases. The result has already been printed; callers exit non-zero.
var ErrRejected = errors.New("calculation rejected")

// CalcOptions contains the configuration for a single calculation.
type CalcOptions struct {
	Input       dto.DistributeInput
	DefaultMode domain.Mode
	Format      string
	// Profile is the terminal colour profile; termenv.Ascii prints plain text.
	Profile termenv.Profile
	// WordWrap limits glamour's line width for markdown; <= 0 keeps its default.
	WordWrap int
}

// Calc evaluates one request and writes it to w in the chosen format.
func Calc(ctx context.Context, eng *knitcalc.Engine, opts CalcOptions, w io.Writer) (domain.Result, error) {
	req, res, err := dto.Evaluate(ctx, eng, opts.Input, opts.DefaultMode)
	if err != nil {
		return res, err
	}

	tbl := eng.Catalog().Lookup(opts.Input.Lang)
	view := presentation.Render(presentation.Context{Mode: req.Mode, Locale: tbl}, res)

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dto.NewDistributeResponse(res, view, tbl.Lang, opts.Input.Expand)); err != nil {
			return res, err
		}
	case FormatMarkdown:
		out := view.Markdown()
		if opts.Profile != termenv.Ascii {
			rendered, err := tui.NewRenderer(opts.WordWrap)(out)
			if err == nil {
				out = rendered
			}
		}
		fmt.Fprint(w, out)
	case FormatText, "":
		fmt.Fprint(w, tui.Colorize(view, opts.Profile))
	default:
		return res, fmt.Errorf("unknown format %q (text, markdown, json)", opts.Format)
	}

	if res.IsError() {
		return res, ErrRejected
	}
	return res, nil
}
