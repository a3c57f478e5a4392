/*
Package ports defines the driven ports (interfaces) for the knitcalc engine.

These interfaces decouple the adapters from the concrete engine and the engine
from its cache backends.

# Key Interfaces

  - Calculator: Turns a Request into a Result (implemented by knitcalc.Engine).
  - ResultCache: Memoizes OK results (in memory or in Redis).

RunResultCacheContract is a reusable test suite every ResultCache must pass.
*/
package ports
