package presentation

import (
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/locale"
)

// Render converts a result into localized text.
// The mode in ctx is used when the result does not carry one (Invalid).
// A nil Locale renders with the built-in English table.
func Render(ctx Context, res domain.Result) View {
	tbl := ctx.Locale
	if tbl == nil {
		tbl = defaultTable()
	}
	mode := res.Mode
	if !mode.Valid() {
		mode = ctx.Mode
	}

	v := View{Outcome: res.Outcome}

	switch res.Outcome {
	case domain.OutcomeNoChange:
		word := locale.KeyNoChangesIncrease
		if mode == domain.Decrease {
			word = locale.KeyNoChangesDecrease
		}
		v.Message = tbl.T(locale.KeyNoChanges, locale.Params{
			"mode":  tbl.T(word, nil),
			"count": res.Stitches,
		})

	case domain.OutcomeTooManyDecreases:
		v.Message = tbl.T(locale.KeyTooManyDecreases, locale.Params{
			"count": res.Stitches,
			"max":   res.Max,
		})

	case domain.OutcomeOK:
		header := locale.KeyIncreaseDistribute
		if mode == domain.Decrease {
			header = locale.KeyDecreaseDistribute
		}
		v.Header = tbl.T(header, locale.Params{"changes": res.Changes, "stitches": res.Stitches})
		v.Lines = make([]Line, 0, len(res.Runs))
		for _, run := range res.Runs {
			unit := locale.KeyTimes
			if run.Count == 1 {
				unit = locale.KeyTime
			}
			v.Lines = append(v.Lines, Line{
				Instruction: Instruction(tbl, run.Action),
				Count:       run.Count,
				Unit:        tbl.T(unit, nil),
			})
		}
		v.Footer = tbl.T(locale.KeyFinalStitches, locale.Params{"count": res.FinalStitches})

	default:
		v.Outcome = domain.OutcomeInvalid
		v.Message = tbl.T(locale.KeyInvalidInput, nil)
	}

	return v
}

// Instruction phrases a single action, special-casing zero and one plain stitch.
func Instruction(tbl *locale.Table, a domain.Action) string {
	if a.Kind == domain.Decrease {
		switch {
		case a.PlainBefore <= 0:
			return tbl.T(locale.KeyKnit2Tog, nil)
		case a.PlainBefore == 1:
			return tbl.T(locale.KeyKnit1Then2Tog, nil)
		}
		return tbl.T(locale.KeyKnitNThen2Tog, locale.Params{"n": a.PlainBefore})
	}

	switch {
	case a.PlainBefore <= 0:
		return tbl.T(locale.KeyInc1, nil)
	case a.PlainBefore == 1:
		return tbl.T(locale.KeyKnit1ThenInc, nil)
	}
	return tbl.T(locale.KeyKnitNThenInc, locale.Params{"n": a.PlainBefore})
}

var builtinCatalog = locale.Default()

func defaultTable() *locale.Table {
	return builtinCatalog.Fallback()
}
