package ports

import (
	"context"
	"fmt"

	"github.com/aretw0/knitcalc/pkg/domain"
)

// ResultCache memoizes calculation results keyed by request.
// Dropping any entry must never change an answer, only its cost.
type ResultCache interface {
	// Get returns the cached result for req.
	// Returns domain.ErrCacheMiss if no entry exists.
	Get(ctx context.Context, req domain.Request) (domain.Result, error)

	// Set stores res for req, replacing any previous entry.
	Set(ctx context.Context, req domain.Request, res domain.Result) error
}

// CacheKey is the canonical key for a request, shared by cache implementations.
func CacheKey(req domain.Request) string {
	return fmt.Sprintf("%s:%d:%d", req.Mode, req.Stitches, req.Changes)
}
