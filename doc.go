/*
Package knitcalc computes how to spread a number of increases or decreases
evenly across a row of knitting stitches.

Given the stitches currently on the needle and the number of changes to make,
the engine produces a compact knitting instruction: runs of identical actions
("knit 2 stitches, knit 2 together, 5 times") that together consume every
stitch in the row. Any uneven remainder is split between the start and the
end of the row so the pattern stays symmetric.

# Concept

The computation itself is pure (see Distribute). The Engine wraps it with the
pieces a host application usually wants: a result cache, lifecycle hooks for
metrics, and a locale catalog that turns results into localized text. The
same Engine backs the CLI, the HTTP API and the MCP server.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/knitcalc"
		"github.com/aretw0/knitcalc/pkg/domain"
	)

	func main() {
		eng := knitcalc.New()

		req := domain.Request{Stitches: 166, Changes: 52, Mode: domain.Decrease}
		_, view, err := eng.Render(context.Background(), req, "en")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(view.Text())
	}

Outcomes other than OK (invalid input, nothing to change, too many decreases)
are values, not errors: they come back as a Result with the matching Outcome
and render to a single localized message.
*/
package knitcalc
