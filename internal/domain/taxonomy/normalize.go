package taxonomy

import (
	"regexp"
	"strings"
)

var (
	wordSplit  = regexp.MustCompile(`\s+`)
	ukShoeSize = regexp.MustCompile(`^(\d{1,2})uk$`)

	synonymPatterns = buildSynonymPatterns()
)

type synonymPattern struct {
	re *regexp.Regexp
	to string
}

func buildSynonymPatterns() []synonymPattern {
	patterns := make([]synonymPattern, 0, len(ColorSynonyms)+len(MaterialSynonyms))
	for from, to := range ColorSynonyms {
		patterns = append(patterns, synonymPattern{
			re: regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
			to: to,
		})
	}
	for from, to := range MaterialSynonyms {
		patterns = append(patterns, synonymPattern{
			re: regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
			to: to,
		})
	}
	return patterns
}

// NormalizeText lower-cases, canonicalizes color and material synonyms on word
// boundaries, and collapses whitespace. Applied to search documents at catalog
// load and to queries before tokenization, so both sides agree on vocabulary.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	t := strings.ToLower(s)
	for _, p := range synonymPatterns {
		t = p.re.ReplaceAllString(t, p.to)
	}
	return strings.TrimSpace(wordSplit.ReplaceAllString(t, " "))
}

// NormalizeSize canonicalizes size labels: one-size variants collapse to
// "one_size", UK shoe sizes to "<n>uk", clothing sizes to their lower-cased
// token.
func NormalizeSize(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return ""
	}
	switch t {
	case "one size", "one-size", "onesize":
		return "one_size"
	}
	t = wordSplit.ReplaceAllString(t, "")
	if m := ukShoeSize.FindStringSubmatch(t); m != nil {
		return m[1] + "uk"
	}
	return t
}

// Tokenize normalizes text and splits it into non-empty tokens.
func Tokenize(s string) []string {
	norm := NormalizeText(s)
	if norm == "" {
		return nil
	}
	return strings.Fields(norm)
}
