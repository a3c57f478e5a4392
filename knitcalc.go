package knitcalc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/knitcalc/internal/runtime"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/locale"
	"github.com/aretw0/knitcalc/pkg/ports"
	"github.com/aretw0/knitcalc/pkg/presentation"
	"golang.org/x/sync/singleflight"
)

// Engine is the high-level entry point for the knitcalc library.
// It wraps the pure distribution runtime with an optional result cache,
// lifecycle hooks and a locale catalog for rendering.
type Engine struct {
	cache   ports.ResultCache
	catalog *locale.Catalog
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	group   singleflight.Group
}

// Ensure Engine satisfies the port used by the adapters.
var _ ports.Calculator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithCache memoizes OK results in the given cache.
func WithCache(cache ports.ResultCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithCatalog sets the locale catalog used by Render.
func WithCatalog(catalog *locale.Catalog) Option {
	return func(e *Engine) {
		e.catalog = catalog
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine. Without options it computes every request
// directly and renders with the built-in English and Norwegian tables.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.catalog == nil {
		eng.catalog = locale.Default()
	}
	return eng
}

// Calculate distributes req, consulting the cache first when one is configured.
// Concurrent misses for the same request are computed once. Cache failures
// are logged and treated as misses; the returned error is only ever ctx.Err().
func (e *Engine) Calculate(ctx context.Context, req domain.Request) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}

	start := time.Now()
	res, cached := e.calculate(ctx, req)
	e.emit(ctx, req, res, cached, time.Since(start))

	return res, nil
}

func (e *Engine) calculate(ctx context.Context, req domain.Request) (domain.Result, bool) {
	if e.cache == nil || !req.Mode.Valid() {
		return runtime.Distribute(req), false
	}

	res, err := e.cache.Get(ctx, req)
	if err == nil {
		return res, true
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		e.logger.Warn("Cache lookup failed", "err", err, "key", ports.CacheKey(req))
	}

	v, _, shared := e.group.Do(ports.CacheKey(req), func() (any, error) {
		res := runtime.Distribute(req)
		if res.IsOK() {
			if err := e.cache.Set(ctx, req, res); err != nil {
				e.logger.Warn("Cache store failed", "err", err, "key", ports.CacheKey(req))
			}
		}
		return res, nil
	})

	res = v.(domain.Result)
	if shared {
		res.Runs = slices.Clone(res.Runs)
	}
	return res, false
}

func (e *Engine) emit(ctx context.Context, req domain.Request, res domain.Result, cached bool, d time.Duration) {
	e.logger.Debug("Calculated",
		"stitches", req.Stitches,
		"changes", req.Changes,
		"mode", req.Mode,
		"outcome", res.Outcome,
		"cached", cached,
	)

	if e.hooks.OnCalculate == nil {
		return
	}
	e.hooks.OnCalculate(ctx, &domain.CalculationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCalculate},
		Request:   req,
		Outcome:   res.Outcome,
		Runs:      len(res.Runs),
		Cached:    cached,
		Duration:  d,
	})
}

// Render calculates req and localizes the result for lang.
// lang is matched against the catalog ("nb-NO" resolves to Norwegian).
func (e *Engine) Render(ctx context.Context, req domain.Request, lang string) (domain.Result, presentation.View, error) {
	res, err := e.Calculate(ctx, req)
	if err != nil {
		return domain.Result{}, presentation.View{}, err
	}
	view := presentation.Render(presentation.Context{Mode: req.Mode, Locale: e.catalog.Lookup(lang)}, res)
	return res, view, nil
}

// Catalog returns the locale catalog used for rendering.
func (e *Engine) Catalog() *locale.Catalog {
	return e.catalog
}

// Distribute spreads req.Changes evenly over req.Stitches. It is pure and
// uncached; see Engine.Calculate for the cached variant.
func Distribute(req domain.Request) domain.Result {
	return runtime.Distribute(req)
}

// GroupRuns collapses consecutive equal actions into runs.
func GroupRuns(actions []domain.Action) []domain.Run {
	return runtime.GroupRuns(actions)
}

// ExpandRuns flattens runs back into individual actions.
func ExpandRuns(runs []domain.Run) []domain.Action {
	return runtime.ExpandRuns(runs)
}

// ParseRequest builds a Request from raw text fields.
func ParseRequest(stitches, changes, mode string) (domain.Request, error) {
	return domain.ParseRequest(stitches, changes, mode)
}
