package config

import "time"

// Defaults applied when a field is absent from configuration.
const (
	DefaultTokenEnv     = "GITHUB_TOKEN"
	DefaultFetchTimeout = 30 * time.Second
	DefaultCacheTTL     = 10 * time.Minute
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultConcurrency  = 4

	// DefaultMaxDiffChars caps fetched diff size before compression runs;
	// larger diffs are refused unless the fetch is forced.
	DefaultMaxDiffChars = 60000
)

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Platform: PlatformConfig{
			GitHub: GitHubConfig{
				TokenEnv:     DefaultTokenEnv,
				Timeout:      DefaultFetchTimeout.String(),
				MaxDiffChars: DefaultMaxDiffChars,
			},
		},
		Cache: CacheConfig{
			TTL: DefaultCacheTTL.String(),
		},
		Global: GlobalConfig{
			LogLevel:    DefaultLogLevel,
			LogFormat:   DefaultLogFormat,
			Concurrency: DefaultConcurrency,
		},
	}
}

// applyDefaults fills fields an explicit configuration left empty. Compress
// fields stay zero here; the engine owns those defaults.
func applyDefaults(cfg *Config) {
	if cfg.Platform.GitHub.TokenEnv == "" {
		cfg.Platform.GitHub.TokenEnv = DefaultTokenEnv
	}
	if cfg.Platform.GitHub.Timeout == "" {
		cfg.Platform.GitHub.Timeout = DefaultFetchTimeout.String()
	}
	if cfg.Platform.GitHub.MaxDiffChars == 0 {
		cfg.Platform.GitHub.MaxDiffChars = DefaultMaxDiffChars
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = DefaultCacheTTL.String()
	}
	if cfg.Global.LogLevel == "" {
		cfg.Global.LogLevel = DefaultLogLevel
	}
	if cfg.Global.LogFormat == "" {
		cfg.Global.LogFormat = DefaultLogFormat
	}
	if cfg.Global.Concurrency == 0 {
		cfg.Global.Concurrency = DefaultConcurrency
	}
}
