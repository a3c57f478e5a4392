package runtime

import "github.com/aretw0/knitcalc/pkg/domain"

// GroupRuns collapses maximal runs of equal consecutive actions into
// (action, count) pairs, keeping their left-to-right order.
// The counts always sum to len(actions).
func GroupRuns(actions []domain.Action) []domain.Run {
	if len(actions) == 0 {
		return []domain.Run{}
	}

	out := []domain.Run{}
	cur := domain.Run{Action: actions[0], Count: 1}
	for _, a := range actions[1:] {
		if a == cur.Action {
			cur.Count++
			continue
		}
		out = append(out, cur)
		cur = domain.Run{Action: a, Count: 1}
	}
	return append(out, cur)
}

// ExpandRuns is the inverse of GroupRuns.
// Runs with a non-positive count contribute nothing.
func ExpandRuns(runs []domain.Run) []domain.Action {
	n := 0
	for _, r := range runs {
		if r.Count > 0 {
			n += r.Count
		}
	}

	out := make([]domain.Action, 0, n)
	for _, r := range runs {
		for i := 0; i < r.Count; i++ {
			out = append(out, r.Action)
		}
	}
	return out
}
