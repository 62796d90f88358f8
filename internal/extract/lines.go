package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinLineLength is the shortest line kept by Lines.
	MinLineLength = 6
	// MaxLineLength is the longest line kept by Lines. Longer lines are prose.
	MaxLineLength = 90
	// MaxLines caps the per-source output of Lines.
	MaxLines = 300
)

// Lines splits raw text into candidate course lines for a single source.
func Lines(raw string) []string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = clean(line)
		n := utf8.RuneCountInString(line)
		if n < MinLineLength || n > MaxLineLength {
			continue
		}
		if isNoise(line) {
			continue
		}
		kept = append(kept, line)
	}
	return dedupe(kept, MaxLines)
}

// clean collapses runs of whitespace and trims the line.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isNoise(line string) bool {
	lower := strings.ToLower(line)
	if boilerplate.contains(lower) {
		return true
	}
	if hasAnyPrefix(lower, metadataPrefixes) {
		return true
	}
	// A line without letters is either numbers or punctuation.
	if !hasLetter(line) {
		return true
	}
	return len(strings.Fields(line)) < 2
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupe removes case-insensitive duplicates, keeping first-seen order,
// and truncates to limit.
func dedupe(lines []string, limit int) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, min(len(lines), limit))
	for _, line := range lines {
		key := strings.ToLower(line)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}
