package config

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/nao1215/uniscout/internal/matcher"
	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/pipeline"
)

// DefaultSettings returns the built-in per-institution pipeline settings.
func DefaultSettings() model.Settings {
	t := matcher.DefaultThresholds()
	return model.Settings{
		TopK:     pipeline.DefaultTopK,
		MaxFetch: pipeline.DefaultMaxFetch,
		Strategy: pipeline.StrategyHTML,
		Matching: model.MatchingSettings{
			SimilarityThreshold: int(t.SimilarityThreshold),
			BandLow:             int(t.BandLow),
			BandHigh:            int(t.BandHigh),
			ConfidenceThreshold: t.ConfidenceThreshold,
			Scorer:              matcher.ScorerTokenSet,
		},
	}
}

// ResolveSettings layers the mission defaults and then the institution
// overrides onto DefaultSettings. Zero fields never override.
func ResolveSettings(defaults, overrides model.Settings) (model.Settings, error) {
	out := DefaultSettings()
	if err := mergo.Merge(&out, defaults, mergo.WithOverride); err != nil {
		return model.Settings{}, fmt.Errorf("failed to merge default settings: %w", err)
	}
	if err := mergo.Merge(&out, overrides, mergo.WithOverride); err != nil {
		return model.Settings{}, fmt.Errorf("failed to merge overrides: %w", err)
	}

	if _, err := pipeline.LookupStrategy(out.Strategy); err != nil {
		return model.Settings{}, err
	}
	m := out.Matching
	if _, err := matcher.LookupScorer(m.Scorer); err != nil {
		return model.Settings{}, err
	}
	if m.BandLow > m.BandHigh {
		return model.Settings{}, fmt.Errorf("band_low %d exceeds band_high %d", m.BandLow, m.BandHigh)
	}
	if m.ConfidenceThreshold < 0 || m.ConfidenceThreshold > 1 {
		return model.Settings{}, fmt.Errorf("confidence_threshold must be between 0 and 1, got %v", m.ConfidenceThreshold)
	}
	return out, nil
}

// SettingsFor returns a resolver for pipeline.NewReports. Mission.Validate
// has already rejected invalid overrides, so a failure here falls back to
// the defaults.
func (m *Mission) SettingsFor() func(model.Institution) model.Settings {
	return func(inst model.Institution) model.Settings {
		s, err := ResolveSettings(m.Defaults, inst.Settings)
		if err != nil {
			return DefaultSettings()
		}
		return s
	}
}
