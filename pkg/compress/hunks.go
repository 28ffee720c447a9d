package compress

import (
	"fmt"

	"github.com/pr-review-toolkit/diffpress/pkg/diff"
)

// limitHunks keeps at most max hunks of a file and reports how many were
// dropped. Hunks keep their original order; max <= 0 keeps everything.
func limitHunks(hunks []diff.Hunk, max int) ([]diff.Hunk, int) {
	if max <= 0 || len(hunks) <= max {
		return hunks, 0
	}
	return hunks[:max], len(hunks) - max
}

// hunkOmissionMarker renders the single line standing in for a file's
// dropped hunks, e.g. "... [ 3 additional hunks omitted for server.go ]".
func hunkOmissionMarker(omitted int, displayName string) string {
	return fmt.Sprintf("... [ %d additional hunks omitted for %s ]", omitted, displayName)
}
