package compress

import "strings"

// DefaultExcludedSuffixes lists the file suffixes dropped from compressed
// output: lockfiles, generated data, images, build artifacts, minified
// bundles, and prose. Matching is case-insensitive against the full
// filename, so compound suffixes like ".min.js" exclude minified bundles
// without touching ordinary ".js" files.
var DefaultExcludedSuffixes = []string{
	".lock",
	".json",
	".csv",
	".svg",
	".png",
	".jpg",
	".jpeg",
	".gif",
	".webp",
	".ico",
	".bmp",
	".map",
	".min.js",
	".min.css",
	".pyc",
	".pyo",
	".class",
	".md",
}

// fileFilter decides which files are omitted from the output entirely.
type fileFilter struct {
	suffixes []string
}

func newFileFilter(suffixes []string) *fileFilter {
	lowered := make([]string, len(suffixes))
	for i, s := range suffixes {
		lowered[i] = strings.ToLower(s)
	}
	return &fileFilter{suffixes: lowered}
}

// Excluded reports whether filename matches any excluded suffix.
func (f *fileFilter) Excluded(filename string) bool {
	name := strings.ToLower(filename)
	for _, suffix := range f.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
