// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package compress

import (
	"fmt"
	"regexp"
	"strings"
)

// runClass partitions hunk body lines by their leading character.
type runClass int8

const (
	classContext runClass = iota // ' '
	classAdded                   // '+'
	classRemoved                 // '-'
	classOther                   // anything else, passed through untouched
)

func classify(line string) runClass {
	if line == "" {
		return classOther
	}
	switch line[0] {
	case ' ':
		return classContext
	case '+':
		return classAdded
	case '-':
		return classRemoved
	}
	return classOther
}

// lineRun is a maximal stretch of consecutive same-class lines within one
// hunk. Runs never cross hunk boundaries.
type lineRun struct {
	class runClass
	lines []string
}

// splitRuns walks a hunk body once and groups it into runs. Lines of
// classOther (e.g. "\ No newline at end of file") each form a singleton
// run so they separate the runs around them.
func splitRuns(lines []string) []lineRun {
	var runs []lineRun
	for _, line := range lines {
		c := classify(line)
		n := len(runs)
		if n > 0 && runs[n-1].class == c && c != classOther {
			runs[n-1].lines = append(runs[n-1].lines, line)
			continue
		}
		runs = append(runs, lineRun{class: c, lines: []string{line}})
	}
	return runs
}

// collapser shortens long runs of lines inside hunks.
//
// Context runs keep contextKeep lines from each end. Added and removed runs
// longer than maxRun keep half from each end; added runs additionally keep
// any declaration lines found in the hidden middle, so new functions and
// classes stay visible by name.
type collapser struct {
	contextKeep int
	maxRun      int
	rescue      *rescueTable
}

// collapseHunk rewrites one hunk body and reports how many lines it hid.
func (c *collapser) collapseHunk(lines []string, ext string) ([]string, int) {
	out := make([]string, 0, len(lines))
	hidden := 0
	for _, run := range splitRuns(lines) {
		collapsed, h := c.collapseRun(run, ext)
		out = append(out, collapsed...)
		hidden += h
	}
	return out, hidden
}

func (c *collapser) collapseRun(run lineRun, ext string) ([]string, int) {
	switch run.class {
	case classContext:
		return c.collapseContext(run.lines)
	case classAdded:
		return c.collapseChanged(run.lines, "added", c.rescue.patternsFor(ext))
	case classRemoved:
		return c.collapseChanged(run.lines, "removed", nil)
	default:
		return run.lines, 0
	}
}

// collapseContext keeps the first and last contextKeep lines of a long
// unchanged run. Runs of at most 2*contextKeep lines pass through whole:
// a placeholder would not make them shorter.
func (c *collapser) collapseContext(lines []string) ([]string, int) {
	keep := c.contextKeep
	if len(lines) <= 2*keep {
		return lines, 0
	}
	hidden := len(lines) - 2*keep
	out := make([]string, 0, 2*keep+1)
	out = append(out, lines[:keep]...)
	out = append(out, fmt.Sprintf("... [%d unchanged lines collapsed] ...", hidden))
	out = append(out, lines[len(lines)-keep:]...)
	return out, hidden
}

// collapseChanged shortens an added or removed run longer than maxRun,
// keeping the head and tail halves. Middle lines matching a rescue pattern
// are kept between the placeholder and the tail, in source order; the
// placeholder counts only the lines actually hidden. If every middle line
// is rescued there is nothing left to hide and the run passes through.
func (c *collapser) collapseChanged(lines []string, direction string, rescue []*regexp.Regexp) ([]string, int) {
	if len(lines) <= c.maxRun {
		return lines, 0
	}
	head := c.maxRun / 2
	tail := c.maxRun - head
	middle := lines[head : len(lines)-tail]

	var rescued []string
	if len(rescue) > 0 {
		for _, line := range middle {
			if matchesAny(rescue, strings.TrimPrefix(line, "+")) {
				rescued = append(rescued, line)
			}
		}
	}

	hidden := len(middle) - len(rescued)
	if hidden <= 0 {
		return lines, 0
	}

	out := make([]string, 0, head+1+len(rescued)+tail)
	out = append(out, lines[:head]...)
	out = append(out, fmt.Sprintf("... [%d %s lines collapsed] ...", hidden, direction))
	out = append(out, rescued...)
	out = append(out, lines[len(lines)-tail:]...)
	return out, hidden
}
