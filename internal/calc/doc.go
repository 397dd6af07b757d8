// Package calc turns a transform request plus the negotiated capability set
// into the engine-specific parameter block a command builder consumes.
//
// There is one calculator per transform kind. CscCalculator produces the
// scaler (SFC) and enhancement-block (VEBOX) colour blocks; DenoiseCalculator
// produces the VEBOX denoise block or the render descriptor for the adaptive
// strength estimate kernel. A calculator owns the blocks it returns: each call
// zeroes and refills them, so a returned pointer is only valid until the next
// Calculate on the same calculator.
//
// The chroma resampling coefficients live in tables.go as fixed lookup tables
// indexed by canonical siting type. The values are hardware phase offsets and
// are kept exactly as the sampler expects them.
package calc
