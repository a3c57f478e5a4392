package runtime

import (
	"github.com/aretw0/knitcalc/pkg/domain"
)

// slots describes how a plain budget is spread over the change slots of a row.
type slots struct {
	base       int // plain stitches before a light slot
	startExtra int // heavy slots (base+1) at the start of the row
	middle     int // light slots in the middle
	endExtra   int // heavy slots (base+1) at the end of the row
}

func planSlots(plainBudget, changes int) slots {
	base := plainBudget / changes
	extra := plainBudget % changes
	startExtra := extra / 2
	return slots{
		base:       base,
		startExtra: startExtra,
		middle:     changes - extra,
		endExtra:   extra - startExtra,
	}
}

// Distribute spreads req.Changes decreases or increases evenly over
// req.Stitches stitches.
//
// Validation runs first, in order: negative counts or an unknown mode yield
// Invalid, zero changes yield NoChange, and a decrease request needing more
// than Stitches/2 decreases yields TooManyDecreases.
//
// Any remainder of the plain budget is split across both ends of the row so
// the irregularity is symmetric: floor(extra/2) heavier slots first, the
// lighter slots in the middle, the rest of the heavier slots last.
func Distribute(req domain.Request) domain.Result {
	if res, ok := validate(req); !ok {
		return res
	}

	budget := plainBudget(req)
	seq := sequence(req.Mode, planSlots(budget, req.Changes))

	return domain.OKResult(req, GroupRuns(seq))
}

// validate returns the early result for requests that produce no instructions.
func validate(req domain.Request) (domain.Result, bool) {
	if req.Stitches < 0 || req.Changes < 0 || !req.Mode.Valid() {
		return domain.InvalidResult(req.Mode), false
	}
	if req.Stitches > domain.MaxCount || req.Changes > domain.MaxCount {
		return domain.InvalidResult(req.Mode), false
	}
	if req.Changes == 0 {
		return domain.NoChangeResult(req), false
	}
	if req.Mode == domain.Decrease && plainBudget(req) < 0 {
		return domain.TooManyDecreasesResult(req), false
	}
	return domain.Result{}, true
}

// plainBudget is the number of stitches worked plain across the row.
// A decrease consumes two stitches, an increase none.
func plainBudget(req domain.Request) int {
	if req.Mode == domain.Decrease {
		return req.Stitches - 2*req.Changes
	}
	return req.Stitches
}

// sequence lays out the individual actions of a row in placement order.
func sequence(mode domain.Mode, s slots) []domain.Action {
	seq := make([]domain.Action, 0, s.startExtra+s.middle+s.endExtra)
	heavy := domain.Action{Kind: mode, PlainBefore: s.base + 1}
	light := domain.Action{Kind: mode, PlainBefore: s.base}

	for i := 0; i < s.startExtra; i++ {
		seq = append(seq, heavy)
	}
	for i := 0; i < s.middle; i++ {
		seq = append(seq, light)
	}
	for i := 0; i < s.endExtra; i++ {
		seq = append(seq, heavy)
	}
	return seq
}
