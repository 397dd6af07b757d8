// Package plan carries computed parameter blocks to the downstream command
// builder.
//
// A Node is one execution plan entry: it owns the calculator for its
// transform kind and exposes Apply, which hands the current block to a
// Builder by reference. Nodes come from a Pool keyed by (kind, engine); every
// checkout must be returned exactly once and a returned node must not be used
// again. Recorder is an in-memory Builder that snapshots what it is given,
// and Frame is the resolved plan the CLI renders and the journal stores.
package plan
