// Package config loads, normalizes, and validates framepass configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the FRAMEPASS_LOG_LEVEL override.
// The resolver limits configured here feed the plan node pool and the pass
// cap applied to every frame description.
package config
