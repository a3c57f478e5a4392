package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/knitcalc/pkg/presentation"
	"github.com/muesli/termenv"
)

// Palette colours, a soft yarn-like gradient.
const (
	colorHeader = "#a78bfa"
	colorLine   = "#f472b6"
	colorCount  = "#818cf8"
	colorError  = "#fb7185"
)

// PrintBanner writes the calculator title in colour.
func PrintBanner(w io.Writer, title string, p termenv.Profile) {
	rule := strings.Repeat("~", len([]rune(title))+4)
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.String(rule).Foreground(p.Color(colorCount)))
	fmt.Fprintln(w, p.String("  "+title).Foreground(p.Color(colorHeader)).Bold())
	fmt.Fprintln(w, p.String(rule).Foreground(p.Color(colorCount)))
	fmt.Fprintln(w)
}

// Colorize renders a view as plain text with terminal styling.
// termenv.Ascii yields the same output as View.Text.
func Colorize(v presentation.View, p termenv.Profile) string {
	if v.Message != "" {
		msg := p.String(v.Message)
		if v.IsError() {
			msg = msg.Foreground(p.Color(colorError)).Bold()
		}
		return msg.String() + "\n"
	}

	var sb strings.Builder
	sb.WriteString(p.String(v.Header).Foreground(p.Color(colorHeader)).String())
	sb.WriteString("\n")
	for _, l := range v.Lines {
		instr := p.String("*" + l.Instruction + "*").Foreground(p.Color(colorLine))
		count := p.String(fmt.Sprintf("%d", l.Count)).Foreground(p.Color(colorCount)).Bold()
		fmt.Fprintf(&sb, "%s %s %s\n", instr, count, l.Unit)
	}
	sb.WriteString(p.String(v.Footer).Bold().String())
	sb.WriteString("\n")
	return sb.String()
}
