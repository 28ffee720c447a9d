// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pr-review-toolkit/diffpress/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".diffpress.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
compress:
  max_chars: 12000
  context_lines: 2
  max_run_lines: 20
  max_hunks_per_file: 6
  excluded_suffixes: [".lock", ".snap"]
  rescue_patterns:
    ".go": ["^func "]
platform:
  github:
    token_env: MY_GH_TOKEN
    base_url: https://ghe.example.org
    timeout: 45s
    max_diff_chars: 90000
cache:
  disabled: true
  dir: /tmp/diffpress-cache
  ttl: 5m
global:
  log_level: debug
  log_format: json
  concurrency: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Compress.MaxChars != 12000 {
		t.Errorf("MaxChars = %d, want 12000", cfg.Compress.MaxChars)
	}
	if len(cfg.Compress.ExcludedSuffixes) != 2 {
		t.Errorf("ExcludedSuffixes = %v, want 2 entries", cfg.Compress.ExcludedSuffixes)
	}
	if cfg.Platform.GitHub.TokenEnv != "MY_GH_TOKEN" {
		t.Errorf("TokenEnv = %q, want MY_GH_TOKEN", cfg.Platform.GitHub.TokenEnv)
	}
	if got := cfg.Platform.GitHub.TimeoutDuration(); got != 45*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 45s", got)
	}
	if !cfg.Cache.Disabled {
		t.Error("Cache.Disabled = false, want true")
	}
	if got := cfg.Cache.TTLDuration(); got != 5*time.Minute {
		t.Errorf("TTLDuration() = %v, want 5m", got)
	}
	if cfg.Global.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Global.Concurrency)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "compress:\n  max_chars: 500\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Platform.GitHub.TokenEnv != DefaultTokenEnv {
		t.Errorf("TokenEnv = %q, want default %q", cfg.Platform.GitHub.TokenEnv, DefaultTokenEnv)
	}
	if cfg.Platform.GitHub.MaxDiffChars != DefaultMaxDiffChars {
		t.Errorf("MaxDiffChars = %d, want default %d",
			cfg.Platform.GitHub.MaxDiffChars, DefaultMaxDiffChars)
	}
	if cfg.Global.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want default %q", cfg.Global.LogLevel, DefaultLogLevel)
	}
	if cfg.Global.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want default %d", cfg.Global.Concurrency, DefaultConcurrency)
	}
	// Engine-owned knobs stay zero.
	if cfg.Compress.ContextLines != 0 {
		t.Errorf("ContextLines = %d, want 0 (engine default applies later)", cfg.Compress.ContextLines)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() error = %v for empty file", err)
	}
	if cfg.Platform.GitHub.TokenEnv != DefaultTokenEnv {
		t.Errorf("empty file did not yield defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "compress: [unclosed"},
		{"unknown top-level key", "compres:\n  max_chars: 1\n"},
		{"inline token forbidden", "platform:\n  github:\n    token: ghp_abc123\n"},
		{"bad log level", "global:\n  log_level: loud\n"},
		{"bad log format", "global:\n  log_format: xml\n"},
		{"negative max chars", "compress:\n  max_chars: -5\n"},
		{"bad timeout", "platform:\n  github:\n    timeout: soon\n"},
		{"negative timeout", "platform:\n  github:\n    timeout: -3s\n"},
		{"bad ttl", "cache:\n  ttl: forever\n"},
		{"negative concurrency", "global:\n  concurrency: -1\n"},
		{"token value in token_env", "platform:\n  github:\n    token_env: ghp_secretvalue\n"},
		{"rescue key without dot", "compress:\n  rescue_patterns:\n    go: [\"^func \"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !errors.IsType(err, errors.ErrConfig) {
				t.Errorf("error type = %v, want config error", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil for missing file, want error")
	}
	if !errors.IsType(err, errors.ErrConfig) {
		t.Errorf("error type = %v, want config error", err)
	}
}

func TestFindInParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".diffpress.yaml"),
		[]byte("global:\n  log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Global.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q from parent directory config", cfg.Global.LogLevel, "debug")
	}
}

func TestLoadFromEnvExplicitPath(t *testing.T) {
	path := writeConfig(t, "global:\n  log_level: error\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Global.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", cfg.Global.LogLevel, "error")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "compress:\n  max_chars: 1000\nglobal:\n  log_level: info\n")
	t.Setenv("DIFFPRESS_MAX_CHARS", "5000")
	t.Setenv("DIFFPRESS_LOG_LEVEL", "debug")
	t.Setenv("DIFFPRESS_CONCURRENCY", "2")

	cfg, err := LoadWithOverrides(path)
	if err != nil {
		t.Fatalf("LoadWithOverrides() error = %v", err)
	}
	if cfg.Compress.MaxChars != 5000 {
		t.Errorf("MaxChars = %d, want env override 5000", cfg.Compress.MaxChars)
	}
	if cfg.Global.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want env override debug", cfg.Global.LogLevel)
	}
	if cfg.Global.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want env override 2", cfg.Global.Concurrency)
	}
}

func TestEnvOverrideValidation(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("DIFFPRESS_LOG_LEVEL", "shouting")

	if _, err := LoadWithOverrides(path); err == nil {
		t.Error("LoadWithOverrides() error = nil for invalid env override, want error")
	}
}

func TestResolveToken(t *testing.T) {
	gh := GitHubConfig{TokenEnv: "DIFFPRESS_TEST_TOKEN"}
	t.Setenv("DIFFPRESS_TEST_TOKEN", "tok-abc")
	if got := gh.ResolveToken(); got != "tok-abc" {
		t.Errorf("ResolveToken() = %q, want %q", got, "tok-abc")
	}

	empty := GitHubConfig{}
	t.Setenv(DefaultTokenEnv, "fallback-tok")
	if got := empty.ResolveToken(); got != "fallback-tok" {
		t.Errorf("ResolveToken() = %q, want default env fallback", got)
	}
}

func TestDurationFallbacks(t *testing.T) {
	gh := GitHubConfig{}
	if got := gh.TimeoutDuration(); got != DefaultFetchTimeout {
		t.Errorf("TimeoutDuration() = %v, want default %v", got, DefaultFetchTimeout)
	}
	c := CacheConfig{}
	if got := c.TTLDuration(); got != DefaultCacheTTL {
		t.Errorf("TTLDuration() = %v, want default %v", got, DefaultCacheTTL)
	}
}
