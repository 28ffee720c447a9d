// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output renders compression statistics for people and machines.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pr-review-toolkit/diffpress/pkg/compress"
	"github.com/pr-review-toolkit/diffpress/pkg/errors"
)

// Format selects a stats rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// StatsFormatter renders compress.Stats in a fixed format.
type StatsFormatter struct {
	format Format
}

// NewStatsFormatter validates the format name and returns a formatter.
// An empty name selects text.
func NewStatsFormatter(format string) (*StatsFormatter, error) {
	switch Format(format) {
	case FormatText, "":
		return &StatsFormatter{format: FormatText}, nil
	case FormatJSON:
		return &StatsFormatter{format: FormatJSON}, nil
	}
	return nil, errors.ValidationError(
		fmt.Sprintf("unknown stats format %q (want text or json)", format), nil)
}

// Format renders stats. Text output is aligned for terminals; JSON output
// is a single indented object for scripts.
func (f *StatsFormatter) Format(stats compress.Stats) (string, error) {
	if f.format == FormatJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode stats: %w", err)
		}
		return string(data) + "\n", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "input chars:     %d\n", stats.InputChars)
	fmt.Fprintf(&b, "output chars:    %d\n", stats.OutputChars)
	fmt.Fprintf(&b, "ratio:           %.2f\n", stats.Ratio())
	fmt.Fprintf(&b, "files:           %d kept, %d excluded\n",
		stats.FilesTotal-stats.FilesExcluded, stats.FilesExcluded)
	fmt.Fprintf(&b, "hunks:           %d kept, %d omitted\n",
		stats.HunksTotal-stats.HunksOmitted, stats.HunksOmitted)
	fmt.Fprintf(&b, "lines collapsed: %d\n", stats.LinesCollapsed)
	fmt.Fprintf(&b, "truncated:       %v\n", stats.Truncated)
	return b.String(), nil
}
