package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	if c.Journal.KeepFrames < 0 {
		return errors.New("journal.keep_frames must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.MaxPasses <= 0 {
		return errors.New("resolver.max_passes must be positive")
	}
	if c.Resolver.MaxOutstandingParams < 0 {
		return errors.New("resolver.max_outstanding_params must be >= 0")
	}
	return nil
}

// CheckWritable reports whether the process may create files in dir. A
// missing directory is checked through its nearest existing parent, since
// EnsureDirectories will create it.
func CheckWritable(dir string) error {
	target := dir
	for {
		info, err := os.Stat(target)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", target)
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", target, err)
		}
		parent := filepath.Dir(target)
		if parent == target {
			return fmt.Errorf("no existing parent for %s", dir)
		}
		target = parent
	}
	if err := unix.Access(target, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%s is not writable: %w", target, err)
	}
	return nil
}
