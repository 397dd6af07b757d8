// Package policy resolves a frame's filter chain into execution plan nodes.
//
// A Registry is the dispatch table from (kind, engine) to a Handler. It is
// built once and shared by every frame. Handlers are tagged variants rather
// than an interface hierarchy: the scaler colour handler, the enhancement
// block colour handler, the enhancement block denoise handler, and the render
// adaptive-estimate handler.
//
// Each pass runs one cycle: nodes carried from a previous split are
// released, generic nodes are routed against the pass capability set, each
// handler moves (or splits) its nodes into the pass's executed chain, and
// finally each enabled handler turns its executed node into a plan node.
// Splits are pure functions that return two fresh nodes; the original node
// is replaced by the second-pass half.
//
// Inconsistencies between the capability set and the chain degrade the
// affected transform and are recorded as decisions. Shape violations,
// exhausted pools, and unimplemented paths fail the frame.
package policy
