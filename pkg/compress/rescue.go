package compress

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultRescuePatterns map source file extensions to regular expressions
// recognizing declaration lines: function, method, class, and type
// introducers. When a long run of added lines is collapsed, matching lines
// survive so the shape of new code stays visible even when its body does
// not. Patterns are matched against the line content after its "+" prefix.
var DefaultRescuePatterns = map[string][]string{
	".go": {
		`^func\s`,
		`^type\s+\w+\s+(struct|interface)\b`,
	},
	".py": {
		`^\s*(async\s+)?def\s`,
		`^\s*class\s`,
	},
	".js": {
		`^\s*(export\s+)?(default\s+)?(async\s+)?function\b`,
		`^\s*(export\s+)?(default\s+)?class\s`,
		`^\s*(export\s+)?(const|let|var)\s+\w+\s*=\s*(async\s*)?\(`,
	},
	".ts": {
		`^\s*(export\s+)?(default\s+)?(async\s+)?function\b`,
		`^\s*(export\s+)?(default\s+)?(abstract\s+)?class\s`,
		`^\s*(export\s+)?interface\s`,
		`^\s*(export\s+)?(const|let|var)\s+\w+\s*=\s*(async\s*)?\(`,
	},
	".java": {
		`^\s*(public|protected|private)\s+[\w<>\[\], ]+\s+\w+\s*\(`,
		`^\s*(public\s+|protected\s+|private\s+)?(abstract\s+|final\s+|static\s+)*(class|interface|enum)\s`,
	},
	".rb": {
		`^\s*def\s`,
		`^\s*class\s`,
		`^\s*module\s`,
	},
	".rs": {
		`^\s*(pub(\([\w:]+\))?\s+)?(async\s+)?fn\s`,
		`^\s*(pub(\([\w:]+\))?\s+)?(struct|enum|trait)\s`,
		`^\s*impl\b`,
	},
}

func init() {
	// Aliases sharing another extension's grammar.
	DefaultRescuePatterns[".jsx"] = DefaultRescuePatterns[".js"]
	DefaultRescuePatterns[".mjs"] = DefaultRescuePatterns[".js"]
	DefaultRescuePatterns[".tsx"] = DefaultRescuePatterns[".ts"]
}

// rescueTable holds the compiled per-extension declaration patterns.
type rescueTable struct {
	patterns map[string][]*regexp.Regexp
}

// newRescueTable compiles raw patterns, rejecting any that fail to compile
// so a bad configuration surfaces at construction instead of mid-run.
func newRescueTable(raw map[string][]string) (*rescueTable, error) {
	t := &rescueTable{patterns: make(map[string][]*regexp.Regexp, len(raw))}
	for ext, pats := range raw {
		key := strings.ToLower(ext)
		for _, p := range pats {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("invalid rescue pattern %q for %s: %w", p, ext, err)
			}
			t.patterns[key] = append(t.patterns[key], re)
		}
	}
	return t, nil
}

// patternsFor returns the compiled patterns for a file extension such as
// ".go", or nil when the extension has none.
func (t *rescueTable) patternsFor(ext string) []*regexp.Regexp {
	if t == nil || ext == "" {
		return nil
	}
	return t.patterns[strings.ToLower(ext)]
}

func matchesAny(patterns []*regexp.Regexp, content string) bool {
	for _, re := range patterns {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}
