// Package incident defines the normalized incident event contract shared by
// the rule evaluator and the recommendation engine.
//
// Events are produced by an upstream detection pipeline and are read-only to
// this module: fields arrive already validated and normalized, and optional
// fields may be absent. Nothing here mutates an event after construction.
package incident
