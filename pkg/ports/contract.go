package ports

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache implementation
// adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()

	req := domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease}
	res := domain.OKResult(req, []domain.Run{
		{Action: domain.Action{Kind: domain.Decrease, PlainBefore: 2}, Count: 5},
		{Action: domain.Action{Kind: domain.Decrease, PlainBefore: 1}, Count: 42},
		{Action: domain.Action{Kind: domain.Decrease, PlainBefore: 2}, Count: 5},
	})

	t.Run("Set and Get", func(t *testing.T) {
		err := cache.Set(ctx, req, res)
		require.NoError(t, err, "Set should not return error")

		got, err := cache.Get(ctx, req)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, res, got)
	})

	t.Run("Get Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, domain.Request{Stitches: 7, Changes: 3, Mode: domain.Increase})
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Mode Is Part Of Key", func(t *testing.T) {
		other := req
		other.Mode = domain.Increase
		_, err := cache.Get(ctx, other)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		req := domain.Request{Stitches: 20, Changes: 5, Mode: domain.Increase}
		first := domain.OKResult(req, []domain.Run{{Action: domain.Action{Kind: domain.Increase, PlainBefore: 4}, Count: 5}})
		require.NoError(t, cache.Set(ctx, req, domain.NoChangeResult(req)))
		require.NoError(t, cache.Set(ctx, req, first))

		got, err := cache.Get(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 1; i <= 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				r := domain.Request{Stitches: 100 + n, Changes: n, Mode: domain.Increase}
				_ = cache.Set(ctx, r, domain.OKResult(r, nil))
				_, _ = cache.Get(ctx, r)
			}(i)
		}
		wg.Wait()
	})
}
