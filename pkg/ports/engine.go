package ports

import (
	"context"

	"github.com/aretw0/knitcalc/pkg/domain"
)

// Calculator is the interface driving adapters (HTTP, MCP, CLI) use to run calculations.
type Calculator interface {
	// Calculate distributes the requested changes. Domain failures (invalid
	// input, too many decreases) are Result variants, not errors; an error
	// means the context was cancelled.
	Calculate(ctx context.Context, req domain.Request) (domain.Result, error)
}
