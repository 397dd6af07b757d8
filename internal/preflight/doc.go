// Package preflight provides readiness checks for the filesystem paths and
// the journal that framepass depends on.
//
// `framepass config validate` runs RunAll and prints one status line per
// result. Each check is gated by its config toggle; a disabled journal or an
// empty log_dir is skipped rather than failed.
package preflight
