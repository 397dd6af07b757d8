// Package journal keeps a SQLite history of resolved frames.
//
// Each resolution, successful or not, becomes one row in frames keyed by the
// frame id, with the applied plan steps in a child table. The CLI records
// into it after `framepass resolve` and reads it back for `framepass
// history`. The schema is versioned; a mismatch is reported as
// ErrSchemaMismatch and the database must be cleared by hand.
package journal
