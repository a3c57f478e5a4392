package domain

// Request is the input of a single calculation.
type Request struct {
	Stitches int  `json:"stitches"`
	Changes  int  `json:"changes"`
	Mode     Mode `json:"mode"`
}

// Outcome tags which variant a Result holds.
type Outcome string

const (
	// OutcomeInvalid means the inputs failed validation.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeNoChange means zero changes were requested.
	OutcomeNoChange Outcome = "no_change"
	// OutcomeTooManyDecreases means the row cannot absorb the requested decreases.
	OutcomeTooManyDecreases Outcome = "too_many_decreases"
	// OutcomeOK means Runs holds the distributed instructions.
	OutcomeOK Outcome = "ok"
)

// Result is the tagged outcome of a calculation.
//
// Which fields are meaningful depends on Outcome:
//   - OutcomeInvalid: only Mode (echoed when known).
//   - OutcomeNoChange: Stitches.
//   - OutcomeTooManyDecreases: Stitches, Changes and Max.
//   - OutcomeOK: Stitches, Changes, Runs and FinalStitches.
type Result struct {
	Outcome       Outcome `json:"outcome"`
	Mode          Mode    `json:"mode,omitempty"`
	Stitches      int     `json:"stitches"`
	Changes       int     `json:"changes"`
	Max           int     `json:"max,omitempty"`
	FinalStitches int     `json:"final_stitches,omitempty"`
	Runs          []Run   `json:"runs,omitempty"`
}

// InvalidResult reports inputs that failed validation.
func InvalidResult(mode Mode) Result {
	if !mode.Valid() {
		mode = ""
	}
	return Result{Outcome: OutcomeInvalid, Mode: mode}
}

// NoChangeResult reports a request with zero changes.
func NoChangeResult(req Request) Result {
	return Result{Outcome: OutcomeNoChange, Mode: req.Mode, Stitches: req.Stitches}
}

// TooManyDecreasesResult reports a decrease request the row cannot absorb.
// Each decrease consumes two stitches, so at most Stitches/2 are possible.
func TooManyDecreasesResult(req Request) Result {
	return Result{
		Outcome:  OutcomeTooManyDecreases,
		Mode:     req.Mode,
		Stitches: req.Stitches,
		Changes:  req.Changes,
		Max:      req.Stitches / 2,
	}
}

// OKResult wraps grouped runs for a successful calculation.
func OKResult(req Request, runs []Run) Result {
	final := req.Stitches + req.Changes
	if req.Mode == Decrease {
		final = req.Stitches - req.Changes
	}
	return Result{
		Outcome:       OutcomeOK,
		Mode:          req.Mode,
		Stitches:      req.Stitches,
		Changes:       req.Changes,
		FinalStitches: final,
		Runs:          runs,
	}
}

// IsOK reports whether the result carries instructions.
func (r Result) IsOK() bool {
	return r.Outcome == OutcomeOK
}

// IsError reports whether the result is one of the error variants.
func (r Result) IsError() bool {
	return r.Outcome == OutcomeInvalid || r.Outcome == OutcomeTooManyDecreases
}

// ActionCount returns the number of individual actions the runs expand to.
func (r Result) ActionCount() int {
	n := 0
	for _, run := range r.Runs {
		n += run.Count
	}
	return n
}
