// Package config loads and validates the application configuration for the
// incident evaluation engine. Configuration is YAML-based with defaults
// applied before validation; environment variables using the BOXBOX_ prefix
// override file values.
package config
