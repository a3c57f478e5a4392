package locale

import (
	"fmt"
	"sort"
	"strings"
)

// Key names a message in a locale table.
type Key string

const (
	KeyTitle              Key = "title"
	KeyDecrease           Key = "decrease"
	KeyIncrease           Key = "increase"
	KeyStitchesOnNeedle   Key = "stitchesOnNeedle"
	KeyChangeCount        Key = "changeCount"
	KeyCalculate          Key = "calculate"
	KeyResultPlaceholder  Key = "resultPlaceholder"
	KeyInvalidInput       Key = "invalidInput"
	KeyNoChanges          Key = "noChanges"
	KeyNoChangesDecrease  Key = "noChangesDecrease"
	KeyNoChangesIncrease  Key = "noChangesIncrease"
	KeyTooManyDecreases   Key = "tooManyDecreases"
	KeyDecreaseDistribute Key = "decreaseDistribute"
	KeyIncreaseDistribute Key = "increaseDistribute"
	KeyTimes              Key = "times"
	KeyTime               Key = "time"
	KeyFinalStitches      Key = "finalStitches"
	KeyKnit2Tog           Key = "knit2tog"
	KeyKnit1Then2Tog      Key = "knit1then2tog"
	KeyKnitNThen2Tog      Key = "knitNthen2tog"
	KeyInc1               Key = "inc1"
	KeyKnit1ThenInc       Key = "knit1thenInc"
	KeyKnitNThenInc       Key = "knitNthenInc"
)

// RequiredKeys are the messages every table must define to render any result.
var RequiredKeys = []Key{
	KeyInvalidInput,
	KeyNoChanges,
	KeyNoChangesDecrease,
	KeyNoChangesIncrease,
	KeyTooManyDecreases,
	KeyDecreaseDistribute,
	KeyIncreaseDistribute,
	KeyTimes,
	KeyTime,
	KeyFinalStitches,
	KeyKnit2Tog,
	KeyKnit1Then2Tog,
	KeyKnitNThen2Tog,
	KeyInc1,
	KeyKnit1ThenInc,
	KeyKnitNThenInc,
}

// Params holds named placeholder values for T.
type Params map[string]any

// Table is a fixed key/value message set for one language.
type Table struct {
	Lang     string         `yaml:"lang" json:"lang"`
	Name     string         `yaml:"name" json:"name"`
	Aliases  []string       `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Messages map[Key]string `yaml:"messages" json:"messages"`
}

// T returns the message for key with every {name} placeholder replaced.
// A missing key renders as the key itself; unknown placeholders stay verbatim.
func (t *Table) T(key Key, params Params) string {
	text, ok := t.Messages[key]
	if !ok {
		text = string(key)
	}
	if len(params) == 0 {
		return text
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(params[name]))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Missing lists the required keys the table lacks.
func (t *Table) Missing() []Key {
	var missing []Key
	for _, k := range RequiredKeys {
		if strings.TrimSpace(t.Messages[k]) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// Validate checks that the table can render every result.
func (t *Table) Validate() error {
	if strings.TrimSpace(t.Lang) == "" {
		return fmt.Errorf("locale table %q: %w", t.Name, ErrMissingLang)
	}
	if missing := t.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, k := range missing {
			names[i] = string(k)
		}
		return fmt.Errorf("locale table %q: %w: %s", t.Lang, ErrMissingKeys, strings.Join(names, ", "))
	}
	return nil
}
