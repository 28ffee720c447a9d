// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config loads and validates diffpress configuration from YAML
// files and environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration.
type Config struct {
	Compress CompressConfig `yaml:"compress"`
	Platform PlatformConfig `yaml:"platform"`
	Cache    CacheConfig    `yaml:"cache"`
	Global   GlobalConfig   `yaml:"global"`
}

// CompressConfig tunes the diff compression engine. Zero values defer to
// the engine defaults.
type CompressConfig struct {
	MaxChars        int `yaml:"max_chars"`
	ContextLines    int `yaml:"context_lines"`
	MaxRunLines     int `yaml:"max_run_lines"`
	MaxHunksPerFile int `yaml:"max_hunks_per_file"`

	// ExcludedSuffixes replaces the built-in exclusion list when set.
	ExcludedSuffixes []string `yaml:"excluded_suffixes,omitempty"`

	// RescuePatterns replaces the built-in declaration patterns when set,
	// keyed by file extension including the dot.
	RescuePatterns map[string][]string `yaml:"rescue_patterns,omitempty"`
}

// PlatformConfig groups hosting platform settings.
type PlatformConfig struct {
	GitHub GitHubConfig `yaml:"github"`
}

// GitHubConfig configures the GitHub diff fetcher.
//
// Tokens are never stored in configuration files. TokenEnv names the
// environment variable holding the token; a "token" key in the file is an
// unknown field and fails loading.
type GitHubConfig struct {
	TokenEnv string `yaml:"token_env"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Timeout  string `yaml:"timeout"`

	// MaxDiffChars refuses diffs larger than this before compression;
	// the fetch command's --force flag overrides it.
	MaxDiffChars int `yaml:"max_diff_chars"`
}

// TimeoutDuration parses the configured timeout, falling back to the
// default when unset. Validate has already rejected unparseable values.
func (g *GitHubConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d <= 0 {
		return DefaultFetchTimeout
	}
	return d
}

// ResolveToken reads the token from the configured environment variable.
// An empty result means anonymous access.
func (g *GitHubConfig) ResolveToken() string {
	env := g.TokenEnv
	if env == "" {
		env = DefaultTokenEnv
	}
	return os.Getenv(env)
}

// CacheConfig configures the on-disk diff cache.
type CacheConfig struct {
	// Disabled turns caching off entirely.
	Disabled bool   `yaml:"disabled"`
	Dir      string `yaml:"dir,omitempty"`
	TTL      string `yaml:"ttl"`
}

// TTLDuration parses the configured TTL, falling back to the default.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return DefaultCacheTTL
	}
	return d
}

// ResolveDir returns the cache directory, defaulting to
// $XDG_CACHE_HOME/diffpress or ~/.cache/diffpress.
func (c *CacheConfig) ResolveDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "diffpress")
	}
	return ".diffpress-cache"
}

// GlobalConfig holds cross-cutting settings.
type GlobalConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Concurrency bounds parallel fetches in batch mode.
	Concurrency int `yaml:"concurrency"`
}
