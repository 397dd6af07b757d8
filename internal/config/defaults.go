package config

const (
	defaultConfigPath   = "~/.config/framepass/config.toml"
	projectConfigName   = "framepass.toml"
	defaultStateDir     = "~/.local/state/framepass"
	defaultLogDir       = "~/.local/state/framepass/logs"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultMaxPasses    = 4
	defaultMaxParams    = 8
	defaultKeepFrames   = 500
	journalFileName     = "journal.db"
	logFileName         = "framepass.log"
	logLevelEnvOverride = "FRAMEPASS_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Resolver: Resolver{
			MaxOutstandingParams: defaultMaxParams,
			MaxPasses:            defaultMaxPasses,
		},
		Journal: Journal{
			Enabled:    true,
			KeepFrames: defaultKeepFrames,
		},
	}
}
