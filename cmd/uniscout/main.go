// Package main provides the entry point for the uniscout CLI.
//
// uniscout compares transfer destinations for a university student. For
// every target institution it discovers the official curriculum pages,
// extracts the course list, matches it against the student's own courses
// and combines the match with prestige and living cost into a ranking.
//
// Usage:
//
//	uniscout init
//	uniscout run -m mission.yaml
//	uniscout history
//
// See --help for all available options.
package main

// main is the entry point for uniscout.
func main() {
	Execute()
}
