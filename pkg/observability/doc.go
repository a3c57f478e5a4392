/*
Package observability provides tools for monitoring the knitcalc engine.

Metrics subscribes to the engine's lifecycle hooks and exports Prometheus
counters and histograms for every calculation, including cache hits.
*/
package observability
