// Package status defines the outcome taxonomy shared by the calculators,
// policies, and resolver, plus the context helpers that stamp frame and pass
// identifiers for logging.
//
// Key responsibilities:
//   - Sentinel markers (invalid argument, resource exhausted, unimplemented,
//     internal inconsistency) and the Wrap helper that tags a failure with the
//     component and operation that produced it.
//   - CodeOf and Degradable, which the resolver uses to decide whether a failed
//     transform aborts the frame or is simply dropped.
//   - Context helpers for frame id and pass number.
//
// A nil error is success. Every operation reports exactly one outcome and
// helpers propagate failures unchanged.
package status
