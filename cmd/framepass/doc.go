// Command framepass resolves frame descriptions into per-pass execution
// plans and keeps a journal of the results.
//
// Subcommands:
//
//	resolve FRAME.toml   resolve a frame and print its plan (table, json, dot)
//	formats              list pixel formats and their enhancement-engine entries
//	history              list, show, or clear journaled resolutions
//	config init|validate manage the configuration file
package main
