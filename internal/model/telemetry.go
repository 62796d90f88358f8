package model

// ContentKind tells which fetch path produced a source's content.
type ContentKind string

const (
	// KindHTML is a page rendered through the browser session.
	KindHTML ContentKind = "html"
	// KindDocument is a structured document downloaded directly.
	KindDocument ContentKind = "document"
	// KindDocumentFallback is a document download attempted after the HTML path failed.
	KindDocumentFallback ContentKind = "document-fallback"
)

// FetchTelemetryEntry records the outcome of one fetch attempt.
// Entries are written once and persisted with the sources artifact for audit.
type FetchTelemetryEntry struct {
	// URL is the fetched URL.
	URL string `json:"url"`

	// Kind is the path that produced the content.
	Kind ContentKind `json:"kind"`

	// Lines is the number of candidate lines the source contributed
	// before the cross-source filter.
	Lines int `json:"lines"`

	// Error is the failure message, empty when the fetch succeeded.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the attempt ended in an error.
func (e FetchTelemetryEntry) Failed() bool {
	return e.Error != ""
}
