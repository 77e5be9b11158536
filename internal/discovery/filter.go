package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test binaries by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the test binaries whose base name matches pattern.
// Patterns with wildcards match as globs ("cargo-*") or, failing that, when
// every non-empty part between the stars is a substring ("*unit*tests").
// Patterns without wildcards match as substrings. Table order is kept.
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	var filtered []string
	for _, test := range tests {
		if matchName(filepath.Base(test), pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	parts := strings.Split(pattern, "*")
	nonEmpty := 0
	for _, part := range parts {
		if part == "" {
			continue
		}
		nonEmpty++
		if !strings.Contains(name, part) {
			return false
		}
	}
	return nonEmpty > 0
}
