// Package prestige grades the standing of an institution on a 0-100 scale.
package prestige

import (
	"strings"

	"github.com/nao1215/uniscout/internal/cache"
	"github.com/nao1215/uniscout/internal/model"
)

const (
	// DefaultScore applies to institutions missing from the table.
	DefaultScore = 75.0
	// DegradedScore is used when no estimate could be produced.
	DegradedScore = 70.0
	// TableSource names the built-in table as a source.
	TableSource = "built-in table"
)

type entry struct {
	keywords []string
	score    float64
}

// table is checked in order. Keywords are matched against the slug of a name.
var table = []entry{
	{keywords: []string{"politecnica_de_madrid", "upm"}, score: 90},
	{keywords: []string{"politecnica_de_catalunya", "upc"}, score: 88},
	{keywords: []string{"politecnica_de_valencia", "upv"}, score: 85},
}

// Lookup returns the prestige estimate of the named institution.
func Lookup(name string) model.PrestigeArtifact {
	folded := cache.Slugify(name)
	for _, e := range table {
		for _, kw := range e.keywords {
			if strings.Contains(folded, kw) {
				return model.PrestigeArtifact{
					University: name,
					Score:      e.score,
					Confidence: model.ConfidenceHigh,
					Sources:    []string{TableSource},
				}
			}
		}
	}
	return model.PrestigeArtifact{
		University: name,
		Score:      DefaultScore,
		Confidence: model.ConfidenceMedium,
		Sources:    []string{},
	}
}

// Degraded returns the estimate used after a failure.
func Degraded(name string, err error) model.PrestigeArtifact {
	a := model.PrestigeArtifact{
		University: name,
		Score:      DegradedScore,
		Confidence: model.ConfidenceLow,
		Sources:    []string{},
	}
	if err != nil {
		a.Error = err.Error()
	}
	return a
}
