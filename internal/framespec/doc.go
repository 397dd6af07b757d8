// Package framespec reads frame descriptions: a filter chain together with
// the capability sets of the passes it should be resolved against.
//
// Descriptions are TOML. Each [[pass]] table is one capability set, and each
// [[node]] table places a colour or denoise request on an input or output
// surface. Nodes without an engine are generic and get routed by the
// resolver. Frames without an id receive a random UUID.
package framespec
