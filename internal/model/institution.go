package model

// Institution is one transfer destination evaluated by the pipeline.
// It is read from the mission file and never modified by the pipeline.
type Institution struct {
	// Name is the institution's display name. The artifact slug derives from it.
	Name string `yaml:"name" json:"name"`

	// City is used for the living cost lookup.
	City string `yaml:"city" json:"city"`

	// ProgramQuery is the free-text search query for the target program.
	ProgramQuery string `yaml:"program_query" json:"program_query"`

	// PreferredDomains restricts search with site: filters and boosts ranking.
	PreferredDomains []string `yaml:"preferred_domains,omitempty" json:"preferred_domains,omitempty"`

	// SeedURLs are explicit program pages that are always ranked first.
	SeedURLs []string `yaml:"program_urls,omitempty" json:"program_urls,omitempty"`

	// Settings overrides the pipeline defaults for this institution.
	// Zero fields keep the default.
	Settings Settings `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Settings holds the tunable knobs of the per-institution pipeline.
type Settings struct {
	// TopK is the number of ranked URLs kept by discovery.
	TopK int `yaml:"top_k,omitempty" json:"top_k,omitempty"`

	// MaxFetch is the number of selected URLs fetched by the html strategy.
	MaxFetch int `yaml:"max_fetch,omitempty" json:"max_fetch,omitempty"`

	// Strategy is the extraction strategy name ("html" or "document-first").
	Strategy string `yaml:"strategy,omitempty" json:"strategy,omitempty"`

	// Matching overrides the matcher thresholds.
	Matching MatchingSettings `yaml:"matching,omitempty" json:"matching,omitempty"`
}

// MatchingSettings holds matcher thresholds.
type MatchingSettings struct {
	SimilarityThreshold int     `yaml:"similarity_threshold,omitempty" json:"similarity_threshold,omitempty"`
	BandLow             int     `yaml:"band_low,omitempty" json:"band_low,omitempty"`
	BandHigh            int     `yaml:"band_high,omitempty" json:"band_high,omitempty"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold,omitempty" json:"confidence_threshold,omitempty"`

	// Scorer names the similarity scorer ("token-set" or "jaro-winkler").
	Scorer string `yaml:"scorer,omitempty" json:"scorer,omitempty"`
}
