package knitcalc_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/presentation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, r *knitcalc.Runner, input string) string {
	t.Helper()
	var out bytes.Buffer
	r.Input = strings.NewReader(input)
	r.Output = &out
	require.NoError(t, r.Run(context.Background(), knitcalc.New()))
	return out.String()
}

func TestRunner_ShowsDefaultExample(t *testing.T) {
	out := runSession(t, knitcalc.NewRunner(), "exit\n")

	assert.Contains(t, out, "--- Increase / Decrease Calculator ---")
	assert.Contains(t, out, "*Knit 1 stitch, knit 2 together* 42 times")
	assert.Contains(t, out, "You now have 114 stitches on the needle")
	assert.Contains(t, out, "[Decrease] > ")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))
}

func TestRunner_HeadlessSession(t *testing.T) {
	r := knitcalc.NewRunner()
	r.Headless = true

	out := runSession(t, r, strings.Join([]string{
		"20 5",
		"inc",
		"20 5",
		"lang no",
		"10 0",
		"ten 2",
		"purl",
		"1",
	}, "\n"))

	want := strings.Join([]string{
		"Decrease - distribute 5 decreases evenly across 20 stitches",
		"*Knit 2 stitches, knit 2 together* 5 times",
		"You now have 15 stitches on the needle",
		"Increase",
		"Increase - distribute 5 increases evenly across 20 stitches",
		"*Knit 4 stitches, increase 1 stitch* 5 times",
		"You now have 25 stitches on the needle",
		"Norsk (no)",
		"Ingen økninger valgt. Du har fortsatt 10 masker på pinnen.",
		"Ugyldig inndata.",
		"Ugyldig inndata.",
		"Ugyldig inndata.",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRunner_CustomRenderer(t *testing.T) {
	r := knitcalc.NewRunner()
	r.Headless = true
	r.Mode = domain.Increase
	r.Renderer = func(v presentation.View) string { return v.Markdown() }

	out := runSession(t, r, "20 5\n")
	assert.Contains(t, out, "## Increase - distribute 5 increases evenly across 20 stitches")
	assert.Contains(t, out, "- *Knit 4 stitches, increase 1 stitch* 5 times")
}

func TestRunner_RequiresIO(t *testing.T) {
	err := knitcalc.NewRunner().Run(context.Background(), knitcalc.New())
	assert.Error(t, err)
}
