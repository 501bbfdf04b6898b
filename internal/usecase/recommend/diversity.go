package recommend

import "math"

// Diversity defaults.
const (
	// sameCategoryShare caps how much of topK the base item's own category
	// may occupy; other categories get 1.5x that cap.
	sameCategoryShare  = 0.7
	otherCategoryScale = 1.5

	// maxPerBrand caps how many items a single brand may contribute.
	maxPerBrand = 2

	// diversityThreshold is the minimum score for any result after the first.
	diversityThreshold = 0.3
)

// diversify walks the score-ordered list once, admitting items under
// per-category and per-brand caps. Relative order of admitted items is
// preserved.
func diversify(ranked []Recommendation, baseCategory string, maxSameCategory int) []Recommendation {
	results := make([]Recommendation, 0, len(ranked))
	categoryCount := map[string]int{}
	brandCount := map[string]int{}

	maxOtherCategory := int(math.Ceil(float64(maxSameCategory) * otherCategoryScale))

	for _, rec := range ranked {
		categoryKey := attrKey(rec.Item.Category.Norm())
		brandKey := attrKey(rec.Item.Brand.Norm())

		maxCategory := maxOtherCategory
		if categoryKey == baseCategory {
			maxCategory = maxSameCategory
		}

		if categoryCount[categoryKey] >= maxCategory {
			continue
		}
		if brandCount[brandKey] >= maxPerBrand {
			continue
		}
		if len(results) > 0 && rec.Score < diversityThreshold {
			continue
		}

		results = append(results, rec)
		categoryCount[categoryKey]++
		brandCount[brandKey]++
	}
	return results
}

func attrKey(norm string) string {
	if norm == "" {
		return "unknown"
	}
	return norm
}
