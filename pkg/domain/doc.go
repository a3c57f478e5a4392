/*
Package domain contains the core value types of the knitcalc engine.

It defines the vocabulary shared by the distribution engine, the presentation
layer and every adapter. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Mode: Whether a calculation spreads decreases or increases across a row.
  - Action: "knit N plain, then change 1". Compared structurally.
  - Run: An Action repeated Count times in a row.
  - Request: The stitch count, change count and mode of one calculation.
  - Result: A tagged outcome (Invalid, NoChange, TooManyDecreases, OK).
*/
package domain
