package matcher

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// ScorerTokenSet selects TokenSetScorer.
	ScorerTokenSet = "token-set"
	// ScorerJaroWinkler selects JaroWinklerScorer.
	ScorerJaroWinkler = "jaro-winkler"
)

// ErrUnknownScorer is returned for an unregistered scorer name.
var ErrUnknownScorer = errors.New("unknown scorer")

// LookupScorer returns the scorer registered under name.
// An empty name selects ScorerTokenSet.
func LookupScorer(name string) (Scorer, error) {
	switch name {
	case "", ScorerTokenSet:
		return TokenSetScorer{}, nil
	case ScorerJaroWinkler:
		return JaroWinklerScorer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (known: %s, %s)", ErrUnknownScorer, name, ScorerTokenSet, ScorerJaroWinkler)
	}
}

// Scorer rates the similarity of two course names from 0 to 100.
type Scorer interface {
	Score(a, b string) float64
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(a, b string) float64

// Score calls f(a, b).
func (f ScorerFunc) Score(a, b string) float64 {
	return f(a, b)
}

// TokenSetScorer compares the sets of words of two names, ignoring order,
// case, accents and repeated words.
type TokenSetScorer struct{}

// Score implements Scorer.
func (TokenSetScorer) Score(a, b string) float64 {
	return TokenSetRatio(a, b)
}

// JaroWinklerScorer scores whole normalized names with Jaro-Winkler.
// It suits short names whose words rarely reorder.
type JaroWinklerScorer struct{}

// Score implements Scorer.
func (JaroWinklerScorer) Score(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	return 100 * matchr.JaroWinkler(na, nb, false)
}

// TokenSetRatio returns the token-set similarity of a and b.
//
// Words shared by both names form the intersection. The score is the best
// indel ratio among (intersection vs intersection+rest of a),
// (intersection vs intersection+rest of b) and
// (intersection+rest of a vs intersection+rest of b), so a name whose words
// are a subset of the other's scores 100.
func TokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var sect, onlyA, onlyB []string
	for w := range ta {
		if _, ok := tb[w]; ok {
			sect = append(sect, w)
		} else {
			onlyA = append(onlyA, w)
		}
	}
	for w := range tb {
		if _, ok := ta[w]; !ok {
			onlyB = append(onlyB, w)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	s := strings.Join(sect, " ")
	da := strings.Join(onlyA, " ")
	db := strings.Join(onlyB, " ")

	if s == "" {
		return indelRatio(da, db)
	}
	sa, sb := s+" "+da, s+" "+db
	return max(indelRatio(sa, sb), indelRatio(s, sa), indelRatio(s, sb))
}

// indelRatio is 100 * (1 - indel distance / total length), where the indel
// distance counts insertions and deletions only.
func indelRatio(a, b string) float64 {
	lensum := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if lensum == 0 {
		return 100
	}
	lcs := matchr.LongestCommonSubsequence(a, b)
	dist := lensum - 2*lcs
	return 100 * (1 - float64(dist)/float64(lensum))
}

func tokenSet(s string) map[string]struct{} {
	words := strings.Fields(normalize(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// normalize lowercases, folds accents and collapses whitespace.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
