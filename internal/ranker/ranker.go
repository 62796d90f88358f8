package ranker

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/nao1215/uniscout/internal/document"
	"github.com/nao1215/uniscout/internal/model"
)

const (
	// PreferredDomainBonus is added when the URL is on a preferred domain.
	PreferredDomainBonus = 70
	// DocumentBonus is added when the URL is a structured document.
	DocumentBonus = 25
	// ThematicBonus is added when query and URL reference the same field.
	ThematicBonus = 10
	// SeedBonus ranks explicit seed URLs above any discovered URL.
	SeedBonus = 100
)

type weightedKeyword struct {
	keyword string
	points  int
}

// curriculumKeywords indicate a study plan, a course list or a course guide.
var curriculumKeywords = []weightedKeyword{
	{"plan-de-estudios", 40},
	{"plan_estudios", 40},
	{"plan de estudios", 30},
	{"asignaturas", 40},
	{"guia-docente", 40},
	{"guia_docente", 40},
	{"guía docente", 30},
	{"study-plan", 40},
	{"course-list", 40},
	{"curriculum", 30},
	{"ects", 20},
	{"plan", 15},
}

// noiseKeywords indicate news, events, blogs or rankings.
var noiseKeywords = []weightedKeyword{
	{"noticia", 20},
	{"news", 20},
	{"evento", 15},
	{"blog", 20},
	{"ranking", 20},
}

// fieldVariants maps a field keyword in the query to URL spellings of it.
var fieldVariants = map[string][]string{
	"informatica": {"informatica", "computer", "informatics"},
	"computer":    {"computer", "informatica", "informatics"},
}

// fieldOrder keeps the thematic check deterministic.
var fieldOrder = []string{"informatica", "computer"}

// socialHosts are never institutional.
var socialHosts = []string{
	"facebook.", "twitter.", "tiktok.", "instagram.", "linkedin.", "youtube.",
}

// academicSuffixes are host suffixes admitted without further checks.
var academicSuffixes = []string{".es", ".edu", ".edu.es", ".ac.uk"}

// Domain returns the lowercased host name of a URL, or "" when it cannot be parsed.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// MatchesPreferredDomain reports whether domain equals, is a subdomain of,
// or is a parent of one of the preferred domains.
func MatchesPreferredDomain(domain string, preferred []string) bool {
	if domain == "" {
		return false
	}
	for _, pd := range preferred {
		pd = strings.ToLower(strings.TrimSpace(pd))
		if pd == "" {
			continue
		}
		if domain == pd || strings.HasSuffix(domain, "."+pd) || strings.HasSuffix(pd, "."+domain) {
			return true
		}
	}
	return false
}

// Score returns the heuristic score of a URL and the reasons behind it.
func Score(rawURL, query string, preferred []string) (int, []string) {
	u := strings.ToLower(rawURL)
	domain := Domain(rawURL)
	score := 0
	reasons := make([]string, 0)

	if MatchesPreferredDomain(domain, preferred) {
		score += PreferredDomainBonus
		reasons = append(reasons, fmt.Sprintf("+%d preferred domain (%s)", PreferredDomainBonus, domain))
	}

	for _, kw := range curriculumKeywords {
		if strings.Contains(u, kw.keyword) {
			score += kw.points
			reasons = append(reasons, fmt.Sprintf("+%d contains '%s'", kw.points, kw.keyword))
		}
	}

	if document.IsDocumentURL(rawURL) {
		score += DocumentBonus
		reasons = append(reasons, fmt.Sprintf("+%d structured document", DocumentBonus))
	}

	for _, kw := range noiseKeywords {
		if strings.Contains(u, kw.keyword) {
			score -= kw.points
			reasons = append(reasons, fmt.Sprintf("-%d contains '%s' (noise)", kw.points, kw.keyword))
		}
	}

	q := strings.ToLower(query)
	for _, field := range fieldOrder {
		if !strings.Contains(q, field) {
			continue
		}
		if containsAny(u, fieldVariants[field]) {
			score += ThematicBonus
			reasons = append(reasons, fmt.Sprintf("+%d related to %s", ThematicBonus, field))
		}
		break
	}

	return score, reasons
}

// FilterOfficial drops social networks and non-academic hosts.
// Non-academic hosts are kept only when the URL is a structured document.
// The result is deduplicated in first-seen order.
func FilterOfficial(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		d := Domain(u)
		if d == "" {
			continue
		}
		if containsAny(d, socialHosts) || d == "x.com" || strings.HasSuffix(d, ".x.com") {
			continue
		}
		if isAcademic(d) || document.IsDocumentURL(u) {
			out = append(out, u)
		}
	}
	return Dedupe(out)
}

func isAcademic(domain string) bool {
	for _, s := range academicSuffixes {
		if strings.HasSuffix(domain, s) {
			return true
		}
	}
	// edu.ar, edu.mx and similar second-level academic zones.
	return strings.Contains(domain, ".edu.")
}

// Rank scores every URL and sorts the candidates by descending score.
// Equal scores keep their input order.
func Rank(urls []string, query string, preferred []string) []model.CandidateURL {
	cands := make([]model.CandidateURL, 0, len(urls))
	for _, u := range urls {
		score, reasons := Score(u, query, preferred)
		cands = append(cands, model.CandidateURL{
			URL:        u,
			Domain:     Domain(u),
			Score:      score,
			Reasons:    reasons,
			IsDocument: document.IsDocumentURL(u),
		})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	return cands
}

// Seeds turns explicit seed URLs into candidates that outrank any discovered URL.
func Seeds(urls []string, query string, preferred []string) []model.CandidateURL {
	cands := Rank(Dedupe(urls), query, preferred)
	for i := range cands {
		cands[i].Score += SeedBonus
		cands[i].Reasons = append([]string{fmt.Sprintf("+%d seed url", SeedBonus)}, cands[i].Reasons...)
	}
	return cands
}

// Select returns the URLs of the first k candidates. k is at least 1.
func Select(cands []model.CandidateURL, k int) []string {
	k = max(k, 1)
	out := make([]string, 0, min(k, len(cands)))
	for _, c := range cands {
		if len(out) == k {
			break
		}
		out = append(out, c.URL)
	}
	return out
}

// Dedupe removes exact duplicate URLs, keeping first-seen order.
func Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
