package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/uniscout/internal/model"
)

// JSONWriter outputs the full comparison in JSON format.
//
// Design decision: standard encoding/json, matching the artifact files,
// so comparison.json and the per-stage artifacts share field names and
// escaping rules.
type JSONWriter struct {
	baseWriter

	// indentString is the indentation string. Empty means compact output.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent sets the indentation string.
func WithIndent(indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentString = indent
	}
}

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the comparison. URLs are written without HTML escaping.
func (w *JSONWriter) Write(c *model.Comparison) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := json.NewEncoder(cw)
	enc.SetEscapeHTML(false)
	if w.indentString != "" {
		enc.SetIndent("", w.indentString)
	}
	if err := enc.Encode(c); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}
