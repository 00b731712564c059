// Package telemetry groups the observability concerns of the engine:
// structured logging (telemetry/logging) and Prometheus metrics
// (telemetry/metrics).
package telemetry
