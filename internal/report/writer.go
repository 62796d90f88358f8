package report

import (
	"fmt"
	"io"

	"github.com/nao1215/uniscout/internal/model"
)

// Format names accepted by New.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// FileNames maps each file format to the file it is written to.
var FileNames = map[string]string{
	FormatCSV:      "comparison.csv",
	FormatMarkdown: "report.md",
	FormatJSON:     "comparison.json",
}

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the comparison to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(c *model.Comparison) (int, error)
}

// New returns the writer of format writing to output.
func New(format string, output io.Writer) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// MultiWriter writes to multiple Writers in order.
//
// Design decision: this is a separate type rather than io.MultiWriter
// because each format renders the comparison differently; the bytes are
// not shared.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the comparison to all configured Writers.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(c *model.Comparison) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(c)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// truncateString truncates s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
