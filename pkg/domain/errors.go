package domain

import "errors"

// ErrUnknownMode is returned when a mode string is neither a decrease nor an increase.
var ErrUnknownMode = errors.New("unknown mode")

// ErrNotANumber is returned when a count contains no leading integer.
var ErrNotANumber = errors.New("not a number")

// ErrCountTooLarge is returned when a count exceeds MaxCount.
var ErrCountTooLarge = errors.New("count too large")

// ErrCacheMiss is returned by a ResultCache when no entry exists for a request.
var ErrCacheMiss = errors.New("cache miss")
