package knitcalc_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/internal/adapters/memory"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingCache wraps a cache and counts calls, optionally failing them.
type countingCache struct {
	inner   *memory.Cache
	gets    atomic.Int32
	sets    atomic.Int32
	failGet bool
	failSet bool
}

func (c *countingCache) Get(ctx context.Context, req domain.Request) (domain.Result, error) {
	c.gets.Add(1)
	if c.failGet {
		return domain.Result{}, errors.New("backend down")
	}
	return c.inner.Get(ctx, req)
}

func (c *countingCache) Set(ctx context.Context, req domain.Request, res domain.Result) error {
	c.sets.Add(1)
	if c.failSet {
		return errors.New("backend down")
	}
	return c.inner.Set(ctx, req, res)
}

func TestEngine_Calculate_NoCache(t *testing.T) {
	eng := knitcalc.New()
	res, err := eng.Calculate(context.Background(), domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeOK, res.Outcome)
	assert.Equal(t, 114, res.FinalStitches)
	require.Len(t, res.Runs, 3)
	assert.Equal(t, []int{5, 42, 5}, []int{res.Runs[0].Count, res.Runs[1].Count, res.Runs[2].Count})
}

func TestEngine_Calculate_UsesCache(t *testing.T) {
	cache := &countingCache{inner: memory.New(8)}
	var events []domain.CalculationEvent
	eng := knitcalc.New(
		knitcalc.WithCache(cache),
		knitcalc.WithLifecycleHooks(domain.LifecycleHooks{
			OnCalculate: func(_ context.Context, e *domain.CalculationEvent) {
				events = append(events, *e)
			},
		}),
	)
	ctx := context.Background()
	req := domain.Request{Stitches: 20, Changes: 5, Mode: domain.Increase}

	first, err := eng.Calculate(ctx, req)
	require.NoError(t, err)
	second, err := eng.Calculate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), cache.sets.Load())
	require.Len(t, events, 2)
	assert.False(t, events[0].Cached)
	assert.True(t, events[1].Cached)
	assert.Equal(t, domain.EventCalculate, events[1].Type)
	assert.Equal(t, 1, events[1].Runs)
}

func TestEngine_Calculate_OnlyCachesOK(t *testing.T) {
	cache := &countingCache{inner: memory.New(8)}
	eng := knitcalc.New(knitcalc.WithCache(cache))
	ctx := context.Background()

	for _, req := range []domain.Request{
		{Stitches: 10, Changes: 0, Mode: domain.Increase},
		{Stitches: 10, Changes: 6, Mode: domain.Decrease},
		{Stitches: -1, Changes: 3, Mode: domain.Increase},
		{Stitches: 10, Changes: 3, Mode: "purl"},
	} {
		_, err := eng.Calculate(ctx, req)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(0), cache.sets.Load())
	assert.Equal(t, 0, cache.inner.Len())
}

func TestEngine_Calculate_CacheFailureIsAMiss(t *testing.T) {
	cache := &countingCache{inner: memory.New(8), failGet: true, failSet: true}
	eng := knitcalc.New(knitcalc.WithCache(cache))

	res, err := eng.Calculate(context.Background(), domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease})
	require.NoError(t, err)
	assert.True(t, res.IsOK())
	assert.Equal(t, int32(1), cache.gets.Load())
	assert.Equal(t, int32(1), cache.sets.Load())
}

func TestEngine_Calculate_Concurrent(t *testing.T) {
	cache := &countingCache{inner: memory.New(8)}
	eng := knitcalc.New(knitcalc.WithCache(cache))
	req := domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease}
	want := knitcalc.Distribute(req)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := eng.Calculate(context.Background(), req)
			assert.NoError(t, err)
			assert.Equal(t, want, res)
		}()
	}
	wg.Wait()

	// Coalescing is best effort; it must never store more often than it computes.
	assert.LessOrEqual(t, cache.sets.Load(), int32(16))
	assert.GreaterOrEqual(t, cache.sets.Load(), int32(1))
}

func TestEngine_Calculate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := knitcalc.New().Calculate(ctx, domain.Request{Stitches: 10, Changes: 2, Mode: domain.Increase})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Render(t *testing.T) {
	eng := knitcalc.New()

	res, view, err := eng.Render(context.Background(), domain.Request{Stitches: 10, Changes: 6, Mode: domain.Decrease}, "nb-NO")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeTooManyDecreases, res.Outcome)
	assert.Equal(t, "Du prøver å felle for mange masker. Maks antall fellinger for 10 masker er 5.", view.Message)
}

func TestFacade_PureFunctions(t *testing.T) {
	req, err := knitcalc.ParseRequest("166", "52", "dec")
	require.NoError(t, err)

	res := knitcalc.Distribute(req)
	seq := knitcalc.ExpandRuns(res.Runs)
	assert.Len(t, seq, 52)
	assert.Equal(t, res.Runs, knitcalc.GroupRuns(seq))
}
