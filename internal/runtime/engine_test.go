package runtime_test

import (
	"testing"

	"github.com/aretw0/knitcalc/internal/runtime"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(plain, count int) domain.Run {
	return domain.Run{Action: domain.Action{Kind: domain.Decrease, PlainBefore: plain}, Count: count}
}

func inc(plain, count int) domain.Run {
	return domain.Run{Action: domain.Action{Kind: domain.Increase, PlainBefore: plain}, Count: count}
}

func TestDistribute_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		req  domain.Request
		want domain.Result
	}{
		{
			name: "Decrease 52 over 166",
			req:  domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease},
			want: domain.Result{
				Outcome:       domain.OutcomeOK,
				Mode:          domain.Decrease,
				Stitches:      166,
				Changes:       52,
				FinalStitches: 114,
				Runs:          []domain.Run{dec(2, 5), dec(1, 42), dec(2, 5)},
			},
		},
		{
			name: "No Change",
			req:  domain.Request{Stitches: 10, Changes: 0, Mode: domain.Increase},
			want: domain.Result{Outcome: domain.OutcomeNoChange, Mode: domain.Increase, Stitches: 10},
		},
		{
			name: "Too Many Decreases",
			req:  domain.Request{Stitches: 10, Changes: 6, Mode: domain.Decrease},
			want: domain.Result{Outcome: domain.OutcomeTooManyDecreases, Mode: domain.Decrease, Stitches: 10, Changes: 6, Max: 5},
		},
		{
			name: "Even Increase",
			req:  domain.Request{Stitches: 20, Changes: 5, Mode: domain.Increase},
			want: domain.Result{
				Outcome:       domain.OutcomeOK,
				Mode:          domain.Increase,
				Stitches:      20,
				Changes:       5,
				FinalStitches: 25,
				Runs:          []domain.Run{inc(4, 5)},
			},
		},
		{
			name: "Decrease Every Stitch Pair Overflow",
			req:  domain.Request{Stitches: 5, Changes: 5, Mode: domain.Decrease},
			want: domain.Result{Outcome: domain.OutcomeTooManyDecreases, Mode: domain.Decrease, Stitches: 5, Changes: 5, Max: 2},
		},
		{
			name: "Negative Stitches",
			req:  domain.Request{Stitches: -1, Changes: 3, Mode: domain.Increase},
			want: domain.Result{Outcome: domain.OutcomeInvalid, Mode: domain.Increase},
		},
		{
			name: "Negative Changes",
			req:  domain.Request{Stitches: 10, Changes: -3, Mode: domain.Decrease},
			want: domain.Result{Outcome: domain.OutcomeInvalid, Mode: domain.Decrease},
		},
		{
			name: "Unknown Mode",
			req:  domain.Request{Stitches: 10, Changes: 2, Mode: "purl"},
			want: domain.Result{Outcome: domain.OutcomeInvalid},
		},
		{
			name: "Beyond MaxCount",
			req:  domain.Request{Stitches: domain.MaxCount + 1, Changes: 2, Mode: domain.Increase},
			want: domain.Result{Outcome: domain.OutcomeInvalid, Mode: domain.Increase},
		},
		{
			name: "Knit Two Together Across Row",
			req:  domain.Request{Stitches: 10, Changes: 5, Mode: domain.Decrease},
			want: domain.Result{
				Outcome:       domain.OutcomeOK,
				Mode:          domain.Decrease,
				Stitches:      10,
				Changes:       5,
				FinalStitches: 5,
				Runs:          []domain.Run{dec(0, 5)},
			},
		},
		{
			name: "Increase Every Stitch",
			req:  domain.Request{Stitches: 6, Changes: 6, Mode: domain.Increase},
			want: domain.Result{
				Outcome:       domain.OutcomeOK,
				Mode:          domain.Increase,
				Stitches:      6,
				Changes:       6,
				FinalStitches: 12,
				Runs:          []domain.Run{inc(1, 6)},
			},
		},
		{
			name: "Single Change Takes Whole Budget",
			req:  domain.Request{Stitches: 30, Changes: 1, Mode: domain.Decrease},
			want: domain.Result{
				Outcome:       domain.OutcomeOK,
				Mode:          domain.Decrease,
				Stitches:      30,
				Changes:       1,
				FinalStitches: 29,
				Runs:          []domain.Run{dec(28, 1)},
			},
		},
		{
			name: "Odd Remainder Lands At End",
			req:  domain.Request{Stitches: 13, Changes: 4, Mode: domain.Increase},
			// budget 13, base 3, extra 1 -> 0 heavy first, 3 light, 1 heavy last
			want: domain.Result{
				Outcome:       domain.OutcomeOK,
				Mode:          domain.Increase,
				Stitches:      13,
				Changes:       4,
				FinalStitches: 17,
				Runs:          []domain.Run{inc(3, 3), inc(4, 1)},
			},
		},
		{
			name: "Zero Stitches Increase",
			req:  domain.Request{Stitches: 0, Changes: 3, Mode: domain.Increase},
			want: domain.Result{
				Outcome:       domain.OutcomeOK,
				Mode:          domain.Increase,
				Changes:       3,
				FinalStitches: 3,
				Runs:          []domain.Run{inc(0, 3)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runtime.Distribute(tt.req)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Distribute(%+v) mismatch (-want +got):\n%s", tt.req, diff)
			}
		})
	}
}

func TestDistribute_ExpandsToScenarioSequence(t *testing.T) {
	res := runtime.Distribute(domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease})
	require.True(t, res.IsOK())

	seq := runtime.ExpandRuns(res.Runs)
	require.Len(t, seq, 52)

	for i, a := range seq {
		want := 1
		if i < 5 || i >= 47 {
			want = 2
		}
		assert.Equal(t, want, a.PlainBefore, "slot %d", i)
		assert.Equal(t, domain.Decrease, a.Kind)
	}
}

func TestDistribute_ZeroDecreasesOnEmptyRow(t *testing.T) {
	res := runtime.Distribute(domain.Request{Stitches: 0, Changes: 0, Mode: domain.Decrease})
	assert.Equal(t, domain.OutcomeNoChange, res.Outcome)
	assert.Equal(t, 0, res.Stitches)
}
