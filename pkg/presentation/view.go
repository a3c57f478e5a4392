package presentation

import (
	"fmt"
	"strings"

	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/locale"
)

// Context carries everything rendering needs besides the result itself.
// It replaces the "current mode" and "current language" globals of a UI.
type Context struct {
	Mode   domain.Mode
	Locale *locale.Table
}

// Line is one grouped instruction: perform Instruction Count times.
type Line struct {
	Instruction string `json:"instruction"`
	Count       int    `json:"count"`
	Unit        string `json:"unit"`
}

// View is the localized, display-ready form of a Result.
// OK results fill Header, Lines and Footer; every other outcome fills Message.
type View struct {
	Outcome domain.Outcome `json:"outcome"`
	Header  string         `json:"header,omitempty"`
	Lines   []Line         `json:"lines,omitempty"`
	Footer  string         `json:"footer,omitempty"`
	Message string         `json:"message,omitempty"`
}

// IsError reports whether the view describes a rejected request.
func (v View) IsError() bool {
	return v.Outcome == domain.OutcomeInvalid || v.Outcome == domain.OutcomeTooManyDecreases
}

// Text renders the view as plain lines:
//
//	Decrease - distribute 52 decreases evenly across 166 stitches
//	*Knit 2 stitches, knit 2 together* 5 times
//	...
//	You now have 114 stitches on the needle
func (v View) Text() string {
	if v.Message != "" {
		return v.Message + "\n"
	}

	var sb strings.Builder
	sb.WriteString(v.Header)
	sb.WriteString("\n")
	for _, l := range v.Lines {
		fmt.Fprintf(&sb, "%s\n", l)
	}
	sb.WriteString(v.Footer)
	sb.WriteString("\n")
	return sb.String()
}

// String formats a line the way a pattern reads: "*instruction* N times".
func (l Line) String() string {
	return fmt.Sprintf("*%s* %d %s", l.Instruction, l.Count, l.Unit)
}

// Markdown renders the view as a small markdown document.
func (v View) Markdown() string {
	if v.Message != "" {
		if v.IsError() {
			return "> **" + v.Message + "**\n"
		}
		return v.Message + "\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", v.Header)
	for _, l := range v.Lines {
		fmt.Fprintf(&sb, "- *%s* %d %s\n", l.Instruction, l.Count, l.Unit)
	}
	fmt.Fprintf(&sb, "\n**%s**\n", v.Footer)
	return sb.String()
}
