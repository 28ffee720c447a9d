// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package compress turns arbitrarily large unified diffs into bounded
// summaries that preserve review-relevant signal: file identity, hunk
// headers, changed lines, and the declarations introduced by new code.
//
// The pipeline runs per file block, in input order: drop excluded files,
// cap hunks per file, collapse long line runs, and account every surviving
// line against a global character budget. Dropped content is always
// announced by an inline marker, never removed silently.
package compress

import (
	"path/filepath"
	"strings"

	"github.com/pr-review-toolkit/diffpress/pkg/diff"
	"github.com/pr-review-toolkit/diffpress/pkg/errors"
	"github.com/pr-review-toolkit/diffpress/pkg/observability"
)

// Tuning defaults. MaxChars tracks what a review prompt can absorb without
// crowding out the instructions around it.
const (
	DefaultMaxChars        = 24000
	DefaultContextLines    = 3
	DefaultMaxRunLines     = 30
	DefaultMaxHunksPerFile = 12
)

// Options tune a Compressor. The zero value of any field means "use the
// default", so Options{} compresses with the stock configuration.
type Options struct {
	// MaxChars is the global output ceiling, counted as len(line)+1 per
	// emitted line.
	MaxChars int

	// ContextLines is how many unchanged lines survive at each end of a
	// collapsed context run.
	ContextLines int

	// MaxRunLines is the longest added or removed run emitted whole.
	MaxRunLines int

	// MaxHunksPerFile caps how many hunks of one file are kept.
	MaxHunksPerFile int

	// ExcludedSuffixes overrides DefaultExcludedSuffixes when non-nil.
	ExcludedSuffixes []string

	// RescuePatterns overrides DefaultRescuePatterns when non-nil, keyed
	// by lowercase file extension including the dot.
	RescuePatterns map[string][]string
}

func (o *Options) applyDefaults() {
	if o.MaxChars == 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.ContextLines == 0 {
		o.ContextLines = DefaultContextLines
	}
	if o.MaxRunLines == 0 {
		o.MaxRunLines = DefaultMaxRunLines
	}
	if o.MaxHunksPerFile == 0 {
		o.MaxHunksPerFile = DefaultMaxHunksPerFile
	}
	if o.ExcludedSuffixes == nil {
		o.ExcludedSuffixes = DefaultExcludedSuffixes
	}
	if o.RescuePatterns == nil {
		o.RescuePatterns = DefaultRescuePatterns
	}
}

func (o *Options) validate() error {
	if o.MaxChars < 0 {
		return errors.ValidationError("max_chars must not be negative", nil)
	}
	if o.ContextLines < 0 {
		return errors.ValidationError("context_lines must not be negative", nil)
	}
	if o.MaxRunLines < 0 {
		return errors.ValidationError("max_run_lines must not be negative", nil)
	}
	if o.MaxHunksPerFile < 0 {
		return errors.ValidationError("max_hunks_per_file must not be negative", nil)
	}
	return nil
}

// Stats summarizes what one compression call kept and dropped.
type Stats struct {
	InputChars     int  `json:"input_chars"`
	OutputChars    int  `json:"output_chars"`
	FilesTotal     int  `json:"files_total"`
	FilesExcluded  int  `json:"files_excluded"`
	HunksTotal     int  `json:"hunks_total"`
	HunksOmitted   int  `json:"hunks_omitted"`
	LinesCollapsed int  `json:"lines_collapsed"`
	Truncated      bool `json:"truncated"`
}

// Ratio returns output size over input size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.InputChars == 0 {
		return 0
	}
	return float64(s.OutputChars) / float64(s.InputChars)
}

// Compressor applies the full compression pipeline to raw diff text. It is
// immutable after construction aside from the logger and metrics seams, so
// concurrent Compress calls are safe once configuration is done.
type Compressor struct {
	opts     Options
	filter   *fileFilter
	collapse *collapser
	log      observability.Logger
	metrics  *observability.Metrics
}

// New builds a Compressor, filling unset options with defaults and
// compiling the rescue patterns.
func New(opts Options) (*Compressor, error) {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	rescue, err := newRescueTable(opts.RescuePatterns)
	if err != nil {
		return nil, errors.ValidationError("bad rescue patterns", err)
	}
	return &Compressor{
		opts:   opts,
		filter: newFileFilter(opts.ExcludedSuffixes),
		collapse: &collapser{
			contextKeep: opts.ContextLines,
			maxRun:      opts.MaxRunLines,
			rescue:      rescue,
		},
		log: observability.NewNopLogger(),
	}, nil
}

// SetLogger replaces the no-op default. Call before the first Compress.
func (c *Compressor) SetLogger(log observability.Logger) {
	if log != nil {
		c.log = log
	}
}

// SetMetrics attaches a metrics sink. Call before the first Compress.
func (c *Compressor) SetMetrics(m *observability.Metrics) {
	c.metrics = m
}

// Compress rewrites raw unified-diff text into its bounded summary. It is
// total: any input, including text that is not a diff at all, produces a
// result, and equal input always produces equal output.
func (c *Compressor) Compress(raw string) (string, Stats) {
	stats := Stats{InputChars: len(raw)}
	w := newBudgetWriter(c.opts.MaxChars)

	for _, block := range diff.Parse(raw) {
		if !block.IsPreamble {
			stats.FilesTotal++
			if c.filter.Excluded(block.Filename) {
				stats.FilesExcluded++
				c.log.Debug("file excluded from diff",
					observability.String("file", block.Filename))
				continue
			}
		}
		if !c.writeBlock(w, block, &stats) {
			break
		}
	}

	out := w.Finish()
	stats.OutputChars = len(out)
	stats.Truncated = w.Truncated()

	c.metrics.RecordCompression(stats.InputChars, stats.OutputChars, stats.Truncated)
	c.metrics.RecordFilesExcluded(stats.FilesExcluded)
	c.metrics.RecordHunksOmitted(stats.HunksOmitted)
	c.metrics.RecordLinesCollapsed(stats.LinesCollapsed)
	c.log.Debug("diff compressed",
		observability.Int("input_chars", stats.InputChars),
		observability.Int("output_chars", stats.OutputChars),
		observability.Int("files_excluded", stats.FilesExcluded),
		observability.Int("hunks_omitted", stats.HunksOmitted),
		observability.Int("lines_collapsed", stats.LinesCollapsed),
		observability.Bool("truncated", stats.Truncated))
	return out, stats
}

// writeBlock emits one file block through the hunk cap and run collapser,
// charging every line to the budget. It returns false as soon as a line is
// refused; nothing after the refused line is emitted.
func (c *Compressor) writeBlock(w *budgetWriter, block diff.FileBlock, stats *Stats) bool {
	for _, line := range block.HeaderLines {
		if !w.TryAppend(line) {
			return false
		}
	}

	kept, omitted := limitHunks(block.Hunks, c.opts.MaxHunksPerFile)
	stats.HunksTotal += len(block.Hunks)
	stats.HunksOmitted += omitted

	ext := strings.ToLower(filepath.Ext(block.Filename))
	for _, h := range kept {
		if !w.TryAppend(h.Header) {
			return false
		}
		lines, hidden := c.collapse.collapseHunk(h.Lines, ext)
		stats.LinesCollapsed += hidden
		for _, line := range lines {
			if !w.TryAppend(line) {
				return false
			}
		}
	}

	if omitted > 0 {
		if !w.TryAppend(hunkOmissionMarker(omitted, block.DisplayName())) {
			return false
		}
	}
	return true
}
