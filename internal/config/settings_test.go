package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/uniscout/internal/matcher"
	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/pipeline"
)

func TestResolveSettings(t *testing.T) {
	t.Parallel()

	t.Run("empty overrides keep the defaults", func(t *testing.T) {
		t.Parallel()

		got, err := ResolveSettings(model.Settings{}, model.Settings{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := model.Settings{
			TopK:     4,
			MaxFetch: 3,
			Strategy: pipeline.StrategyHTML,
			Matching: model.MatchingSettings{SimilarityThreshold: 75, BandLow: 55, BandHigh: 74, ConfidenceThreshold: 0.7, Scorer: matcher.ScorerTokenSet},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("institution overrides win over mission defaults", func(t *testing.T) {
		t.Parallel()

		defaults := model.Settings{MaxFetch: 2, Matching: model.MatchingSettings{SimilarityThreshold: 80}}
		overrides := model.Settings{TopK: 5, Strategy: pipeline.StrategyDocumentFirst, Matching: model.MatchingSettings{BandLow: 60}}

		got, err := ResolveSettings(defaults, overrides)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TopK != 5 || got.MaxFetch != 2 || got.Strategy != pipeline.StrategyDocumentFirst {
			t.Errorf("unexpected settings %+v", got)
		}
		if got.Matching.SimilarityThreshold != 80 || got.Matching.BandLow != 60 || got.Matching.BandHigh != 74 {
			t.Errorf("unexpected matching settings %+v", got.Matching)
		}
	})

	t.Run("unknown strategy is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ResolveSettings(model.Settings{}, model.Settings{Strategy: "ocr"})
		if !errors.Is(err, pipeline.ErrUnknownStrategy) {
			t.Errorf("expected ErrUnknownStrategy, got %v", err)
		}
	})

	t.Run("scorer can be overridden", func(t *testing.T) {
		t.Parallel()

		got, err := ResolveSettings(model.Settings{}, model.Settings{Matching: model.MatchingSettings{Scorer: matcher.ScorerJaroWinkler}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Matching.Scorer != matcher.ScorerJaroWinkler {
			t.Errorf("Scorer = %q, want %q", got.Matching.Scorer, matcher.ScorerJaroWinkler)
		}
	})

	t.Run("unknown scorer is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ResolveSettings(model.Settings{}, model.Settings{Matching: model.MatchingSettings{Scorer: "soundex"}})
		if !errors.Is(err, matcher.ErrUnknownScorer) {
			t.Errorf("expected ErrUnknownScorer, got %v", err)
		}
	})

	t.Run("inverted band is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ResolveSettings(model.Settings{}, model.Settings{Matching: model.MatchingSettings{BandLow: 80}})
		if err == nil {
			t.Error("expected error for band_low above band_high")
		}
	})

	t.Run("resolver falls back to defaults on invalid overrides", func(t *testing.T) {
		t.Parallel()

		m := &Mission{}
		got := m.SettingsFor()(model.Institution{Settings: model.Settings{Strategy: "ocr"}})
		if diff := cmp.Diff(DefaultSettings(), got); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})
}
