package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/internal/adapters/memory"
	"github.com/aretw0/knitcalc/internal/adapters/redis"
	"github.com/aretw0/knitcalc/internal/config"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/locale"
	"github.com/aretw0/knitcalc/pkg/observability"
	"github.com/aretw0/knitcalc/pkg/ports"
)

// Setup is a configured engine together with the resources it holds.
type Setup struct {
	Engine  *knitcalc.Engine
	Metrics *observability.Metrics
	closers []func() error
}

// Close releases the cache backend.
func (s *Setup) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// EngineOptions tunes what BuildEngine wires in.
type EngineOptions struct {
	Debug   bool
	Metrics bool
}

// BuildEngine initializes an engine from the configuration: locale catalog,
// result cache backend and lifecycle hooks.
func BuildEngine(ctx context.Context, cfg config.Config, logger *slog.Logger, opts EngineOptions) (*Setup, error) {
	setup := &Setup{}
	engineOpts := []knitcalc.Option{knitcalc.WithLogger(logger)}

	// 1. Locales
	catalog, err := loadCatalog(cfg.LocalesDir, logger)
	if err != nil {
		return nil, err
	}
	engineOpts = append(engineOpts, knitcalc.WithCatalog(catalog))

	// 2. Cache
	cache, closer, err := createCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		engineOpts = append(engineOpts, knitcalc.WithCache(cache))
	}
	if closer != nil {
		setup.closers = append(setup.closers, closer)
	}

	// 3. Hooks
	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}
	if opts.Metrics {
		setup.Metrics = observability.NewMetrics()
		hooks = append(hooks, setup.Metrics.Hooks())
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, knitcalc.WithLifecycleHooks(combineHooks(hooks...)))
	}

	setup.Engine = knitcalc.New(engineOpts...)
	return setup, nil
}

func loadCatalog(dir string, logger *slog.Logger) (*locale.Catalog, error) {
	catalog := locale.Default()
	if dir == "" {
		return catalog, nil
	}
	loaded, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error loading locales: %w", err)
	}
	logger.Debug("Locales loaded", "dir", dir, "langs", loaded)
	return catalog, nil
}

// createCache builds the configured result cache. An unreachable redis is
// logged and kept: the engine treats cache failures as misses.
func createCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (ports.ResultCache, func() error, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return nil, nil, nil
	case config.BackendMemory:
		return memory.New(cfg.MaxEntries), nil, nil
	case config.BackendRedis:
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			logger.Warn("Redis cache unreachable, continuing without hits", "addr", cfg.Redis.Addr, "err", err)
		} else {
			logger.Debug("Redis cache connected", "addr", cfg.Redis.Addr)
		}
		return cache, cache.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculate: func(ctx context.Context, e *domain.CalculationEvent) {
			logger.Debug("Calculation",
				"stitches", e.Request.Stitches,
				"changes", e.Request.Changes,
				"mode", e.Request.Mode,
				"outcome", e.Outcome,
				"runs", e.Runs,
				"cached", e.Cached,
				"duration", e.Duration,
			)
		},
	}
}

// combineHooks fans each event out to every non-nil hook, in order.
func combineHooks(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculate: func(ctx context.Context, e *domain.CalculationEvent) {
			for _, h := range all {
				if h.OnCalculate != nil {
					h.OnCalculate(ctx, e)
				}
			}
		},
	}
}
