package testsupport

import (
	"path/filepath"
	"testing"

	"framepass/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithMaxOutstanding overrides the per-(kind, engine) plan node limit.
func WithMaxOutstanding(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Resolver.MaxOutstandingParams = limit
	}
}

// WithKeepFrames overrides journal retention.
func WithKeepFrames(keep int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.KeepFrames = keep
	}
}

// WithoutJournal disables the plan journal.
func WithoutJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithoutLogFile disables JSON file logging.
func WithoutLogFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
