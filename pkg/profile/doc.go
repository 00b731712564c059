// Package profile defines the discipline profile: the per-racing-category
// policy configuration that governs caution and penalty thresholds during
// incident evaluation.
//
// Profiles are immutable once loaded. The package provides a YAML file
// source, a thread-safe registry, and a debounced fsnotify watcher so a
// running session picks up profile edits without a restart. A SQLite-backed
// store lives in the store subpackage. How profiles are authored is out of
// scope; this package only loads, validates, and serves them.
package profile
