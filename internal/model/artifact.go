package model

// ArtifactKind names the pipeline stage an artifact belongs to.
// The kind is the file name prefix of the artifact.
type ArtifactKind string

const (
	// ArtifactDiscovery holds ranked candidate URLs.
	ArtifactDiscovery ArtifactKind = "discovery"
	// ArtifactSources holds fetch telemetry and extracted candidate lines.
	ArtifactSources ArtifactKind = "sources"
	// ArtifactMatches holds the match percentage and notes.
	ArtifactMatches ArtifactKind = "matches"
	// ArtifactLivingCost holds the monthly living cost estimate.
	ArtifactLivingCost ArtifactKind = "living_cost"
	// ArtifactPrestige holds the prestige estimate.
	ArtifactPrestige ArtifactKind = "prestige"
)

// ArtifactKinds lists every kind in pipeline order.
var ArtifactKinds = []ArtifactKind{
	ArtifactDiscovery,
	ArtifactSources,
	ArtifactMatches,
	ArtifactLivingCost,
	ArtifactPrestige,
}

// DiscoveryArtifact is the persisted output of the discovery stage.
type DiscoveryArtifact struct {
	University       string         `json:"university"`
	Queries          []string       `json:"queries"`
	PreferredDomains []string       `json:"preferred_domains"`
	Candidates       []CandidateURL `json:"candidates"`
	Selected         []string       `json:"selected"`
	Error            string         `json:"error,omitempty"`
}

// SourcesArtifact is the persisted output of the extraction stage.
type SourcesArtifact struct {
	University string                `json:"university"`
	Strategy   string                `json:"strategy"`
	Telemetry  []FetchTelemetryEntry `json:"telemetry"`
	Courses    []string              `json:"courses"`
	Error      string                `json:"error,omitempty"`
}

// MatchArtifact is the persisted output of the matching stage.
type MatchArtifact struct {
	University       string      `json:"university"`
	LinksUsed        []string    `json:"links_used"`
	MyCourses        int         `json:"my_courses"`
	CandidateCourses int         `json:"candidate_courses"`
	MatchPct         float64     `json:"match_pct"`
	Notes            []MatchNote `json:"notes"`
	Error            string      `json:"error,omitempty"`
}

// CostBreakdown is the monthly cost split by category, in EUR.
type CostBreakdown struct {
	Housing   CostRange `json:"housing"`
	Food      CostRange `json:"food"`
	Transport CostRange `json:"transport"`
	Utilities CostRange `json:"utilities"`
	Leisure   CostRange `json:"leisure"`
}

// CostRange is a min/mid/max estimate.
type CostRange struct {
	Min float64 `json:"min"`
	Mid float64 `json:"mid"`
	Max float64 `json:"max"`
}

// LivingCostArtifact is the persisted output of the living cost stage.
type LivingCostArtifact struct {
	City       string        `json:"city"`
	Currency   string        `json:"currency"`
	Monthly    CostRange     `json:"monthly"`
	Breakdown  CostBreakdown `json:"breakdown"`
	Source     string        `json:"source"`
	Confidence Confidence    `json:"confidence"`
	CostScore  float64       `json:"cost_score"`
	Error      string        `json:"error,omitempty"`
}

// PrestigeArtifact is the persisted output of the prestige stage.
type PrestigeArtifact struct {
	University string     `json:"university"`
	Score      float64    `json:"score"`
	Confidence Confidence `json:"confidence"`
	Sources    []string   `json:"sources"`
	Error      string     `json:"error,omitempty"`
}
