package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument is returned for zero-length input.
var ErrEmptyDocument = errors.New("empty document")

// pdfURLPattern matches URLs whose path ends in .pdf, with an optional query.
var pdfURLPattern = regexp.MustCompile(`(?i)\.pdf(?:\?.*)?$`)

// IsDocumentURL reports whether the URL points to a structured document.
func IsDocumentURL(rawURL string) bool {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}
	return pdfURLPattern.MatchString(rawURL)
}

// Text extracts the plain text of a PDF.
// Pages are separated by newlines. A malformed document returns an error
// instead of a panic.
func Text(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return string(b), nil
}
