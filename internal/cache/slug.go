package cache

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxSlugLength is the maximum length of a slug.
	MaxSlugLength = 80

	// DefaultSlug is used when a name has no usable characters.
	DefaultSlug = "uni"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a filesystem-safe key from a name.
// Accents are folded first, so "Politécnica" becomes "politecnica".
func Slugify(name string) string {
	folded, _, err := transform.String(newFolder(), name)
	if err != nil {
		folded = name
	}
	s := nonAlnum.ReplaceAllString(strings.ToLower(folded), "_")
	s = strings.Trim(s, "_")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "_")
	}
	if s == "" {
		return DefaultSlug
	}
	return s
}

// newFolder returns a transformer that strips combining marks.
// Transformers carry state, so every call gets a fresh one.
func newFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
