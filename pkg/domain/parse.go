package domain

import (
	"fmt"
	"strings"
)

// MaxCount bounds stitch and change counts accepted from text.
// Real rows hold at most a few thousand stitches.
const MaxCount = 1_000_000

// ParseCount reads a leading integer from s.
// Surrounding whitespace is ignored, a single sign is allowed and anything
// after the digits is dropped ("12 sts" and "12.7" both read as 12).
func ParseCount(s string) (int, error) {
	t := strings.TrimSpace(s)
	neg := false
	if t != "" && (t[0] == '+' || t[0] == '-') {
		neg = t[0] == '-'
		t = t[1:]
	}

	n, digits := 0, 0
	for ; digits < len(t); digits++ {
		c := t[digits]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > MaxCount {
			return 0, fmt.Errorf("%w: %q exceeds %d", ErrCountTooLarge, s, MaxCount)
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}

	if neg {
		n = -n
	}
	return n, nil
}

// ParseRequest builds a Request from raw text fields.
func ParseRequest(stitches, changes, mode string) (Request, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Request{}, err
	}
	s, err := ParseCount(stitches)
	if err != nil {
		return Request{Mode: m}, fmt.Errorf("stitches: %w", err)
	}
	c, err := ParseCount(changes)
	if err != nil {
		return Request{Mode: m}, fmt.Errorf("changes: %w", err)
	}
	return Request{Stitches: s, Changes: c, Mode: m}, nil
}
