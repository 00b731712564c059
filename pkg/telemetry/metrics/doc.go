// Package metrics provides Prometheus instrumentation for the incident
// evaluation engine: evaluation counts and latencies, plus recommendation
// counts by type. Metrics register against a caller-supplied registry so
// embedding hosts control the scrape surface.
package metrics
