// Package logging constructs the structured loggers used across the engine.
// All logging goes through log/slog; this package only owns level and format
// parsing so every binary configures logging the same way.
package logging
