package extract

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinCourseLength is the shortest line kept by FinalFilter.
	MinCourseLength = 8
	// MaxCourses caps the output of FinalFilter.
	MaxCourses = 250
	// maxLabelWords is the longest colon line treated as a label.
	maxLabelWords = 4
)

// FinalFilter removes navigation chrome from the combined lines of every
// source of one institution.
func FinalFilter(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if keepCourse(line) {
			kept = append(kept, line)
		}
	}
	return dedupe(kept, MaxCourses)
}

func keepCourse(line string) bool {
	if utf8.RuneCountInString(line) < MinCourseLength {
		return false
	}
	lower := strings.ToLower(line)
	if creditVocabulary.MatchString(lower) {
		return false
	}
	if hasAnyPrefix(lower, finalPrefixes) {
		return false
	}
	// "Escuela Técnica Superior de Ingenieros Informáticos" is kept,
	// "Facultad de Derecho" is not.
	if containsAny(lower, institutionKeywords) && !courseSubject.MatchString(lower) {
		return false
	}
	if strings.Contains(line, ":") && len(strings.Fields(line)) <= maxLabelWords {
		return false
	}
	return true
}

// Extract runs both passes over a single source.
// Extract is idempotent: extracting the joined output again returns it unchanged.
func Extract(raw string) []string {
	return FinalFilter(Lines(raw))
}
