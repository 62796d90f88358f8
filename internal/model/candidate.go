package model

// CandidateURL is a discovered URL annotated with its heuristic relevance.
// Candidates are produced fresh by every discovery run and cached only as
// part of the discovery artifact.
type CandidateURL struct {
	// URL is the absolute URL as returned by the search provider.
	URL string `json:"url"`

	// Domain is the lowercased host name.
	Domain string `json:"domain"`

	// Score is the additive heuristic score. Higher is more relevant.
	Score int `json:"score"`

	// Reasons lists every score contribution, e.g. "+25 document".
	// Reasons are diagnostic only and never drive control flow.
	Reasons []string `json:"reasons"`

	// IsDocument is true when the URL points to a structured document (PDF).
	IsDocument bool `json:"is_document"`
}
