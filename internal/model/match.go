package model

// MatchMethod tells how a course was matched, or that it was not.
type MatchMethod string

const (
	// MethodSimilarity means the token-set similarity alone accepted the pair.
	MethodSimilarity MatchMethod = "similarity"
	// MethodClassifier means the language-model classifier accepted the pair.
	MethodClassifier MatchMethod = "classifier"
	// MethodNone means the course did not match any candidate.
	MethodNone MatchMethod = "none"
)

// MatchNote is the verdict for one of the user's courses.
// The ordered sequence of notes is the match report.
type MatchNote struct {
	// Course is the user's course name.
	Course string `json:"course"`

	// BestMatch is the highest scoring candidate, nil when there were no candidates.
	BestMatch *string `json:"best_match"`

	// Method is the decision path.
	Method MatchMethod `json:"method"`

	// Score is the token-set similarity (0-100) against BestMatch.
	Score int `json:"score"`

	// ClassifierConfidence is the classifier's confidence, 0 when it was not consulted.
	ClassifierConfidence float64 `json:"classifier_confidence"`

	// Reason is a human-readable explanation.
	Reason string `json:"reason"`
}

// Matched reports whether the note counts as a match.
func (n MatchNote) Matched() bool {
	return n.Method == MethodSimilarity || n.Method == MethodClassifier
}
