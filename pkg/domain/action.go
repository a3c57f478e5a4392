package domain

import (
	"fmt"
	"strings"
)

// Mode selects whether changes remove or add stitches.
type Mode string

const (
	// Decrease merges two stitches into one ("knit 2 together").
	Decrease Mode = "decrease"
	// Increase creates one extra stitch.
	Increase Mode = "increase"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == Decrease || m == Increase
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// ParseMode resolves user supplied text into a Mode.
// Matching is case-insensitive and accepts the short and Norwegian forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decrease", "dec", "d", "felle", "fell":
		return Decrease, nil
	case "increase", "inc", "i", "øke", "oke", "øk":
		return Increase, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Action is a single step of a row: work PlainBefore stitches plain,
// then perform one change of the given Kind.
// Actions are plain values; two actions are equal iff both fields match.
type Action struct {
	Kind        Mode `json:"kind"`
	PlainBefore int  `json:"plain_before"`
}

// Run is an Action performed Count times consecutively.
type Run struct {
	Action
	Count int `json:"count"`
}
