package model

import "time"

// InstitutionReport accumulates the outputs of every pipeline step for one
// institution. Steps read the fields earlier steps filled in and write their
// own; the orchestrator persists each artifact as its step completes.
type InstitutionReport struct {
	// Institution is the target being evaluated.
	Institution Institution `json:"institution"`

	// Slug is the artifact key derived from the institution name.
	Slug string `json:"slug"`

	// Settings is the effective per-institution configuration.
	Settings Settings `json:"settings"`

	// MyCourses is the user's curriculum.
	MyCourses []CourseName `json:"-"`

	// Started is when processing began.
	Started time.Time `json:"started"`

	// Discovery is the discovery stage output.
	Discovery *DiscoveryArtifact `json:"discovery,omitempty"`

	// Sources is the extraction stage output.
	Sources *SourcesArtifact `json:"sources,omitempty"`

	// Matches is the matching stage output.
	Matches *MatchArtifact `json:"matches,omitempty"`

	// LivingCost is the living cost stage output.
	LivingCost *LivingCostArtifact `json:"living_cost,omitempty"`

	// Prestige is the prestige stage output.
	Prestige *PrestigeArtifact `json:"prestige,omitempty"`

	// PerformedStages lists the steps that ran, in order.
	PerformedStages []string `json:"performed_stages,omitempty"`

	// CachedStages lists the steps whose artifact came from the cache.
	CachedStages []string `json:"cached_stages,omitempty"`

	// Errors collects step errors. None of them aborts the batch.
	Errors []string `json:"errors,omitempty"`

	// Error is the last step error, if any.
	Error error `json:"-"`
}

// NewInstitutionReport creates a report for the given institution.
func NewInstitutionReport(inst Institution, slug string, mine []CourseName) *InstitutionReport {
	return &InstitutionReport{
		Institution: inst,
		Slug:        slug,
		Settings:    inst.Settings,
		MyCourses:   mine,
		Started:     time.Now(),
	}
}

// AddError records a step failure.
func (r *InstitutionReport) AddError(step string, err error) {
	if err == nil {
		return
	}
	r.Error = err
	r.Errors = append(r.Errors, step+": "+err.Error())
}

// SelectedURLs returns the URLs chosen by discovery, or nil.
func (r *InstitutionReport) SelectedURLs() []string {
	if r.Discovery == nil {
		return nil
	}
	return r.Discovery.Selected
}

// CandidateCourses returns the extracted candidate lines, or nil.
func (r *InstitutionReport) CandidateCourses() []string {
	if r.Sources == nil {
		return nil
	}
	return r.Sources.Courses
}
