// Package store provides a SQLite-backed discipline profile store: the
// durable counterpart to the YAML file source, suitable for deployments where
// profiles are provisioned per series rather than checked into a directory.
package store
