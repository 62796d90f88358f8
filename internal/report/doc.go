// Package report renders a ranked comparison of transfer destinations.
//
// Writers for the supported output formats:
//   - CSVWriter: comparison.csv, one row per institution
//   - MarkdownWriter: report.md with the ranking, match notes and telemetry
//   - JSONWriter: comparison.json, the full Comparison
//   - SimpleWriter: a console table
//
// Writers implement the Writer interface, so they can be chosen by format
// name with New and composed with MultiWriter.
package report
