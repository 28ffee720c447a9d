// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pr-review-toolkit/diffpress/pkg/errors"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}

	// envNamePattern is the conventional shell variable shape. It keeps
	// token_env from smuggling a literal token into the config file.
	envNamePattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
)

// Validate checks the configuration for values that would fail later in a
// harder-to-diagnose place.
func (c *Config) Validate() error {
	if c.Compress.MaxChars < 0 {
		return errors.ConfigError("compress.max_chars must not be negative", nil)
	}
	if c.Compress.ContextLines < 0 {
		return errors.ConfigError("compress.context_lines must not be negative", nil)
	}
	if c.Compress.MaxRunLines < 0 {
		return errors.ConfigError("compress.max_run_lines must not be negative", nil)
	}
	if c.Compress.MaxHunksPerFile < 0 {
		return errors.ConfigError("compress.max_hunks_per_file must not be negative", nil)
	}

	gh := &c.Platform.GitHub
	if gh.TokenEnv != "" && !envNamePattern.MatchString(gh.TokenEnv) {
		return errors.ConfigError(fmt.Sprintf(
			"platform.github.token_env %q is not an environment variable name; "+
				"never put the token itself in the config file", gh.TokenEnv), nil)
	}
	if gh.Timeout != "" {
		if d, err := time.ParseDuration(gh.Timeout); err != nil || d <= 0 {
			return errors.ConfigError(fmt.Sprintf(
				"platform.github.timeout %q is not a positive duration", gh.Timeout), err)
		}
	}
	if gh.MaxDiffChars < 0 {
		return errors.ConfigError("platform.github.max_diff_chars must not be negative", nil)
	}

	if c.Cache.TTL != "" {
		if d, err := time.ParseDuration(c.Cache.TTL); err != nil || d <= 0 {
			return errors.ConfigError(fmt.Sprintf(
				"cache.ttl %q is not a positive duration", c.Cache.TTL), err)
		}
	}

	if !contains(validLogLevels, c.Global.LogLevel) {
		return errors.ConfigError(fmt.Sprintf(
			"global.log_level %q is not one of %s",
			c.Global.LogLevel, strings.Join(validLogLevels, ", ")), nil)
	}
	if !contains(validLogFormats, c.Global.LogFormat) {
		return errors.ConfigError(fmt.Sprintf(
			"global.log_format %q is not one of %s",
			c.Global.LogFormat, strings.Join(validLogFormats, ", ")), nil)
	}
	if c.Global.Concurrency < 1 {
		return errors.ConfigError("global.concurrency must be at least 1", nil)
	}

	for ext := range c.Compress.RescuePatterns {
		if !strings.HasPrefix(ext, ".") {
			return errors.ConfigError(fmt.Sprintf(
				"compress.rescue_patterns key %q must start with a dot", ext), nil)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
