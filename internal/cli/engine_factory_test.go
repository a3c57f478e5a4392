package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/knitcalc/internal/config"
	"github.com/aretw0/knitcalc/internal/logging"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var req = domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease}

func TestBuildEngine_Backends(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("memory with metrics", func(t *testing.T) {
		cfg := config.Default()
		setup, err := BuildEngine(ctx, cfg, logger, EngineOptions{Metrics: true, Debug: true})
		require.NoError(t, err)
		defer setup.Close()

		for i := 0; i < 2; i++ {
			_, err := setup.Engine.Calculate(ctx, req)
			require.NoError(t, err)
		}
		require.NotNil(t, setup.Metrics)
		expected := `
# HELP knitcalc_cache_hits_total Calculations served from the result cache
# TYPE knitcalc_cache_hits_total counter
knitcalc_cache_hits_total 1
`
		assert.NoError(t, testutil.GatherAndCompare(setup.Metrics.Registry, strings.NewReader(expected), "knitcalc_cache_hits_total"))
	})

	t.Run("none", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = config.BackendNone
		setup, err := BuildEngine(ctx, cfg, logger, EngineOptions{})
		require.NoError(t, err)
		assert.Nil(t, setup.Metrics)
		assert.NoError(t, setup.Close())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default()
		cfg.Cache.Backend = config.BackendRedis
		cfg.Cache.Redis.Addr = mr.Addr()
		cfg.Cache.Redis.TTL = time.Minute

		setup, err := BuildEngine(ctx, cfg, logger, EngineOptions{})
		require.NoError(t, err)
		defer setup.Close()

		_, err = setup.Engine.Calculate(ctx, req)
		require.NoError(t, err)
		assert.True(t, mr.Exists("knitcalc:result:decrease:166:52"))
		assert.Equal(t, time.Minute, mr.TTL("knitcalc:result:decrease:166:52"))
	})

	t.Run("unreachable redis still calculates", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = config.BackendRedis
		cfg.Cache.Redis.Addr = "127.0.0.1:1"

		setup, err := BuildEngine(ctx, cfg, logger, EngineOptions{})
		require.NoError(t, err)
		defer setup.Close()

		res, err := setup.Engine.Calculate(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsOK())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = "disk"
		_, err := BuildEngine(ctx, cfg, logger, EngineOptions{})
		assert.Error(t, err)
	})
}

func TestBuildEngine_LocalesDir(t *testing.T) {
	dir := t.TempDir()
	en, err := os.ReadFile(filepath.Join("..", "..", "pkg", "locale", "locales", "en.yaml"))
	require.NoError(t, err)
	de := []byte(
		"lang: de\nname: Deutsch\n" +
			string(en[len("lang: en\nname: English\n"):]),
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.yaml"), de, 0644))

	cfg := config.Default()
	cfg.LocalesDir = dir
	setup, err := BuildEngine(context.Background(), cfg, logging.NewNop(), EngineOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "en", "no"}, setup.Engine.Catalog().Langs())
}

func TestCombineHooks(t *testing.T) {
	var calls []string
	hooks := combineHooks(
		domain.LifecycleHooks{OnCalculate: func(context.Context, *domain.CalculationEvent) { calls = append(calls, "a") }},
		domain.LifecycleHooks{},
		domain.LifecycleHooks{OnCalculate: func(context.Context, *domain.CalculationEvent) { calls = append(calls, "b") }},
	)
	hooks.OnCalculate(context.Background(), &domain.CalculationEvent{})
	assert.Equal(t, []string{"a", "b"}, calls)
}
