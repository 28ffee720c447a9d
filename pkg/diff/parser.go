// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package diff parses unified diff text into per-file blocks and hunks.
//
// Parsing is a single forward pass with a three-state line classifier:
// outside any file, inside a file header, or inside a hunk body. It never
// fails; unrecognized content is preserved where it was found.
package diff

import (
	"regexp"
	"strings"
)

// fileHeaderPrefix marks the start of a new file block.
const fileHeaderPrefix = "diff --git "

// hunkHeaderRe matches hunk markers like "@@ -12,4 +12,6 @@" with optional
// trailing section text. Counts may be omitted for single-line ranges.
var hunkHeaderRe = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+\d+(?:,\d+)? @@`)

// fileHeaderRe extracts the post-image path from a file header line.
var fileHeaderRe = regexp.MustCompile(`^diff --git a/(.*) b/(.*)$`)

// Hunk is one @@-introduced change region of a file. Header is preserved
// verbatim; Lines hold the raw body lines including their prefix character.
type Hunk struct {
	Header string
	Lines  []string
}

// FileBlock is one file's region of a unified diff. HeaderLines hold the
// metadata lines before the first hunk (diff --git, index, ---, +++) in
// original order. A block constructed by the parser is never mutated;
// transformations downstream build new line slices.
type FileBlock struct {
	Filename    string
	HeaderLines []string
	Hunks       []Hunk

	// IsPreamble marks the synthetic block holding content found before any
	// file header: loose metadata lines, or hunks with no owning file.
	IsPreamble bool
}

// DisplayName returns the filename, or a stand-in for the preamble block.
func (b *FileBlock) DisplayName() string {
	if b.IsPreamble || b.Filename == "" {
		return "(preamble)"
	}
	return b.Filename
}

// parser states
type lineState int

const (
	stateOutsideFile lineState = iota
	stateFileHeader
	stateInHunk
)

// Parse splits raw unified-diff text into an ordered sequence of file
// blocks. Content appearing before the first file header is returned as a
// leading preamble block. Parse is total: any input yields a result, and
// identical input yields an identical result.
func Parse(raw string) []FileBlock {
	if raw == "" {
		return nil
	}

	lines := strings.Split(raw, "\n")
	// A trailing newline is a line terminator, not an extra empty line.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var (
		pre    = FileBlock{IsPreamble: true}
		blocks []FileBlock
		cur    *FileBlock
		hunk   *Hunk
		state  = stateOutsideFile
	)

	closeHunk := func() {
		if hunk == nil {
			return
		}
		if cur != nil {
			cur.Hunks = append(cur.Hunks, *hunk)
		} else {
			pre.Hunks = append(pre.Hunks, *hunk)
		}
		hunk = nil
	}
	closeFile := func() {
		closeHunk()
		if cur != nil {
			blocks = append(blocks, *cur)
			cur = nil
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, fileHeaderPrefix):
			closeFile()
			cur = &FileBlock{
				Filename:    filenameFromHeader(line),
				HeaderLines: []string{line},
			}
			state = stateFileHeader

		case hunkHeaderRe.MatchString(line):
			closeHunk()
			hunk = &Hunk{Header: line}
			state = stateInHunk

		default:
			switch state {
			case stateOutsideFile:
				pre.HeaderLines = append(pre.HeaderLines, line)
			case stateFileHeader:
				cur.HeaderLines = append(cur.HeaderLines, line)
			case stateInHunk:
				hunk.Lines = append(hunk.Lines, line)
			}
		}
	}
	closeFile()

	if len(pre.HeaderLines) > 0 || len(pre.Hunks) > 0 {
		blocks = append([]FileBlock{pre}, blocks...)
	}
	return blocks
}

// filenameFromHeader pulls the post-image path out of a "diff --git a/X b/Y"
// line. The b-side wins so renames report the new name. Malformed headers
// fall back to the raw remainder rather than failing the parse.
func filenameFromHeader(line string) string {
	if m := fileHeaderRe.FindStringSubmatch(line); m != nil {
		return m[2]
	}
	return strings.TrimSpace(strings.TrimPrefix(line, fileHeaderPrefix))
}
