// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pr-review-toolkit/diffpress/pkg/errors"
)

// defaultConfigFiles are searched in order, from the working directory up
// through its parents, before falling back to the user config directory.
var defaultConfigFiles = []string{
	".diffpress.yaml",
	".diffpress.yml",
	"diffpress.yaml",
	"diffpress.yml",
}

// EnvConfigPath names the environment variable that overrides the config
// file search.
const EnvConfigPath = "DIFFPRESS_CONFIG"

// Load reads and validates the configuration file at path. Unknown keys
// fail the load so typos and forbidden keys (like an inline token) surface
// immediately.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault searches the standard locations and loads the first config
// file found. With no file anywhere it returns DefaultConfig.
func LoadDefault() (*Config, error) {
	if path := findInParents(defaultConfigFiles); path != "" {
		return Load(path)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "diffpress", "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFromEnv resolves configuration the way the CLI does: DIFFPRESS_CONFIG
// names an explicit file, otherwise the standard search runs. Environment
// overrides are applied on top either way.
func LoadFromEnv() (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path := os.Getenv(EnvConfigPath); path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// LoadWithOverrides loads an explicit file and applies environment
// overrides on top.
func LoadWithOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// findInParents walks from the working directory to the filesystem root
// looking for any of names, nearest match first.
func findInParents(names []string) string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// applyEnvOverrides lets DIFFPRESS_* variables override file settings, so
// CI jobs can tune behavior without shipping a config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DIFFPRESS_LOG_LEVEL"); v != "" {
		cfg.Global.LogLevel = v
	}
	if v := os.Getenv("DIFFPRESS_LOG_FORMAT"); v != "" {
		cfg.Global.LogFormat = v
	}
	if v := os.Getenv("DIFFPRESS_MAX_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Compress.MaxChars = n
		}
	}
	if v := os.Getenv("DIFFPRESS_MAX_DIFF_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Platform.GitHub.MaxDiffChars = n
		}
	}
	if v := os.Getenv("DIFFPRESS_GITHUB_BASE_URL"); v != "" {
		cfg.Platform.GitHub.BaseURL = v
	}
	if v := os.Getenv("DIFFPRESS_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("DIFFPRESS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Global.Concurrency = n
		}
	}
}
