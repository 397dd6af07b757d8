// Package logging assembles the slog loggers used by framepass.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// helpers that tag log lines with frame ids, pass numbers and feature types
// taken from the context. Resolver decisions and invariant violations go
// through DecisionAttrs and ErrorWithContext so every component reports them
// with the same keys. NewNop serves tests and wiring code that cannot fail.
package logging
