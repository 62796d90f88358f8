package model

import "strings"

// CourseName names one academic course.
// The underlying string keeps the original casing for display.
type CourseName string

// NewCourseName collapses internal whitespace and trims the name.
func NewCourseName(s string) CourseName {
	return CourseName(strings.Join(strings.Fields(s), " "))
}

// String returns the display form.
func (c CourseName) String() string {
	return string(c)
}

// Key returns the comparison form: lowercased with whitespace collapsed.
// Two course names are the same course when their keys are equal.
func (c CourseName) Key() string {
	return strings.ToLower(strings.Join(strings.Fields(string(c)), " "))
}

// CourseNames converts plain strings to course names, dropping empty ones.
func CourseNames(ss []string) []CourseName {
	out := make([]CourseName, 0, len(ss))
	for _, s := range ss {
		c := NewCourseName(s)
		if c == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Strings converts course names back to plain strings.
func Strings(cs []CourseName) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
