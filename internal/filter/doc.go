// Package filter holds the per-frame transform requests and the chain the
// resolver mutates.
//
// A Node pairs a request (CscParams or DenoiseParams) with its routing type
// and engine bitmap. A Chain groups nodes by input and output surface. The
// resolver only accepts one-input-to-one-output chains; Shape classifies the
// others so the rejection can name what it saw.
//
// Nodes are values with pointer-held optional blocks. Clone produces a fully
// independent copy, which is what the two-pass split relies on.
package filter
