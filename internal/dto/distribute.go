package dto

import (
	"context"
	"fmt"

	"github.com/aretw0/knitcalc/internal/runtime"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/ports"
	"github.com/aretw0/knitcalc/pkg/presentation"
	"github.com/mitchellh/mapstructure"
)

// DistributeInput is the loosely typed request shared by the HTTP, MCP and CLI
// surfaces. Counts are kept as text so "12", 12 and "12 sts" are all accepted.
type DistributeInput struct {
	Stitches string `json:"stitches" mapstructure:"stitches"`
	Changes  string `json:"changes" mapstructure:"changes"`
	Mode     string `json:"mode,omitempty" mapstructure:"mode"`
	Lang     string `json:"lang,omitempty" mapstructure:"lang"`
	Expand   bool   `json:"expand,omitempty" mapstructure:"expand"`
}

// DecodeInput reads a DistributeInput from decoded JSON or tool arguments.
// Numbers, strings and booleans are converted weakly; unknown keys are ignored.
func DecodeInput(raw map[string]any) (DistributeInput, error) {
	var in DistributeInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &in,
	})
	if err != nil {
		return in, err
	}
	if err := dec.Decode(raw); err != nil {
		return in, fmt.Errorf("decode input: %w", err)
	}
	return in, nil
}

// Request parses the input. An empty mode selects defaultMode.
func (in DistributeInput) Request(defaultMode domain.Mode) (domain.Request, error) {
	mode := in.Mode
	if mode == "" {
		mode = string(defaultMode)
	}
	return domain.ParseRequest(in.Stitches, in.Changes, mode)
}

// Evaluate parses and calculates in. Text that is not a count or a mode is an
// invalid outcome, not an error; the error is reserved for the calculator.
func Evaluate(ctx context.Context, calc ports.Calculator, in DistributeInput, defaultMode domain.Mode) (domain.Request, domain.Result, error) {
	req, err := in.Request(defaultMode)
	if err != nil {
		return req, runtime.Distribute(domain.Request{Stitches: -1, Changes: -1, Mode: req.Mode}), nil
	}
	res, err := calc.Calculate(ctx, req)
	return req, res, err
}

// TextBlock is the localized rendering carried inside a response.
type TextBlock struct {
	Header  string   `json:"header,omitempty"`
	Lines   []string `json:"lines,omitempty"`
	Footer  string   `json:"footer,omitempty"`
	Message string   `json:"message,omitempty"`
}

// DistributeResponse is the wire form of a calculation.
type DistributeResponse struct {
	domain.Result
	Lang    string          `json:"lang"`
	Actions []domain.Action `json:"actions,omitempty"`
	Text    TextBlock       `json:"text"`
}

// NewDistributeResponse pairs a result with its rendering. With expand set the
// per-action sequence is included next to the runs.
func NewDistributeResponse(res domain.Result, view presentation.View, lang string, expand bool) DistributeResponse {
	resp := DistributeResponse{
		Result: res,
		Lang:   lang,
		Text: TextBlock{
			Header:  view.Header,
			Footer:  view.Footer,
			Message: view.Message,
		},
	}
	for _, l := range view.Lines {
		resp.Text.Lines = append(resp.Text.Lines, l.String())
	}
	if expand && res.IsOK() {
		resp.Actions = runtime.ExpandRuns(res.Runs)
	}
	return resp
}
