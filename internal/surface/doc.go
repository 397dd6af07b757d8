// Package surface describes the pixel-level vocabulary the resolver reasons
// about: pixel formats and their static traits, colour spaces, chroma siting,
// and field sampling.
//
// Format traits come from a fixed descriptor table: bit depth (zero when the
// depth is not known), chroma subsampling class, alpha presence, and the
// enhancement-engine alignment entry used by the denoise height gate. Every
// enum implements encoding.TextUnmarshaler so frame descriptions can name
// values directly in TOML.
package surface
