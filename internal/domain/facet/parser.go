package facet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/taxonomy"
)

const amount = `[$₹]?\s?\d[\d,]*\.?\d*`

var (
	greyRe    = regexp.MustCompile(`\bgrey\b`)
	betweenRe = regexp.MustCompile(`\b(?:between|from)\s+(` + amount + `)\s+(?:and|to)\s+(` + amount + `)`)
	underRe   = regexp.MustCompile(`\b(?:under|below|less than|<=?)\s+(` + amount + `)`)
	overRe    = regexp.MustCompile(`\b(?:over|above|greater than|>=?)\s+(` + amount + `)`)
	bareRe    = regexp.MustCompile(`(?:^|\s)(?:[$₹]\s?\d[\d,]*\.?\d*|\d[\d,]*\.?\d*\s?[$₹]|(?:rs|inr|usd)\.?\s*\d[\d,]*\.?\d*)`)

	currencyPrefix = regexp.MustCompile(`^(usd|inr|rs\.?|rupees?|dollars?)`)
	currencySuffix = regexp.MustCompile(`(usd|inr|rs\.?|rupees?|dollars?)$`)
)

// Parse scans a lower-cased query for known facet values: canonical colors on
// word boundaries, vocabulary terms for the remaining facets (first match per
// facet, in listed order), and a price constraint by pattern priority
// (between > under > over > bare amount). Facets with no match stay absent;
// the parser never infers negative constraints.
func Parse(query string, vocab domain.Vocabulary) Set {
	q := strings.ToLower(query)
	var s Set

	for _, c := range taxonomy.Colors {
		if wordMatch(q, c) {
			s.Color = domain.NewAttr(c)
		}
	}
	if greyRe.MatchString(q) {
		s.Color = domain.NewAttr("gray")
	}

	s.Category = firstVocabMatch(q, vocab.Categories)
	s.Brand = firstVocabMatch(q, vocab.Brands)
	s.Material = firstVocabMatch(q, vocab.Materials)
	s.Occasion = firstVocabMatch(q, vocab.Occasions)
	if !s.Occasion.Known() {
		s.Occasion = occasionFromRules(q)
	}
	s.AgeGroup = firstVocabMatch(q, vocab.AgeGroups)
	s.Size = firstVocabMatch(q, vocab.Sizes)

	parsePrice(q, &s)
	return s
}

func parsePrice(q string, s *Set) {
	if m := betweenRe.FindStringSubmatch(q); m != nil {
		a, okA := parseAmount(m[1])
		b, okB := parseAmount(m[2])
		if okA && okB {
			lo, hi := min(a, b), max(a, b)
			s.PriceMin, s.PriceMax = &lo, &hi
			return
		}
	}
	if m := underRe.FindStringSubmatch(q); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			s.PriceMax = &v
			return
		}
	}
	if m := overRe.FindStringSubmatch(q); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			s.PriceMin = &v
			return
		}
	}
	if m := bareRe.FindString(q); m != "" {
		if v, ok := parseAmount(m); ok {
			lo, hi := v, v
			s.PriceMin, s.PriceMax = &lo, &hi
		}
	}
}

// parseAmount strips currency symbols, currency words, and thousands
// separators before parsing ("$2,000", "rs 2000", "2000$").
func parseAmount(s string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", " ", "", "$", "", "₹", "").Replace(strings.TrimSpace(s))
	cleaned = currencyPrefix.ReplaceAllString(cleaned, "")
	cleaned = currencySuffix.ReplaceAllString(cleaned, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// occasionFromRules maps occasion phrasings ("office", "gym") to their
// canonical occasion when no literal vocabulary term matched.
func occasionFromRules(q string) domain.Attr {
	for _, rule := range taxonomy.OccasionRules {
		for _, term := range rule.Terms {
			if wordMatch(q, term) {
				return domain.NewAttr(rule.Canonical)
			}
		}
	}
	return domain.Attr{}
}

func firstVocabMatch(q string, terms []string) domain.Attr {
	for _, t := range terms {
		if t != "" && wordMatch(q, t) {
			return domain.NewAttr(t)
		}
	}
	return domain.Attr{}
}

// wordMatch reports whether term appears in q on word boundaries. Terms may
// contain spaces or punctuation, so boundaries are checked manually rather
// than with \b around a quoted pattern.
func wordMatch(q, term string) bool {
	for start := 0; ; {
		idx := strings.Index(q[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		if boundaryBefore(q, idx) && boundaryAfter(q, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(q string, idx int) bool {
	return idx == 0 || !isWordByte(q[idx-1])
}

func boundaryAfter(q string, end int) bool {
	return end >= len(q) || !isWordByte(q[end])
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
