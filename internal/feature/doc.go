// Package feature defines the routing vocabulary shared by filter nodes and
// engine policies: transform kinds, engines, the (kind, engine) dispatch key,
// the per-pass capability set, and the per-node engine bitmap.
package feature
