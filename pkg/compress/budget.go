package compress

import "strings"

// TruncationMarker is emitted once, as the final line, when the output
// budget cut the diff short.
const TruncationMarker = "... [DIFF TRUNCATED DUE TO SIZE LIMIT] ..."

// budgetWriter accumulates output lines against a fixed character ceiling.
// Every line costs len(line)+1 for its terminating newline. Once a line is
// refused the writer is closed and refuses everything after it, so output
// is always a prefix of what an unbounded writer would have produced.
//
// A budgetWriter is owned by a single Compress call and is not safe for
// concurrent use.
type budgetWriter struct {
	limit     int
	used      int
	truncated bool
	buf       strings.Builder
}

func newBudgetWriter(limit int) *budgetWriter {
	return &budgetWriter{limit: limit}
}

// TryAppend writes line if it fits within the remaining budget and reports
// whether it did. The first line that would push the running total past the
// ceiling is rejected, not clipped.
func (w *budgetWriter) TryAppend(line string) bool {
	if w.truncated {
		return false
	}
	cost := len(line) + 1
	if w.used+cost > w.limit {
		w.truncated = true
		return false
	}
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
	w.used += cost
	return true
}

// Truncated reports whether any line has been refused.
func (w *budgetWriter) Truncated() bool { return w.truncated }

// Len returns the characters written so far, newlines included.
func (w *budgetWriter) Len() int { return w.used }

// Finish returns the accumulated output. If the budget was exhausted the
// truncation marker is appended as the final line; the marker itself is
// exempt from the budget so it is never dropped.
func (w *budgetWriter) Finish() string {
	if w.truncated {
		w.buf.WriteString(TruncationMarker)
		w.buf.WriteByte('\n')
	}
	return w.buf.String()
}
