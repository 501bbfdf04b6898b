package heuristic

import (
	"strings"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/similarity"
	"github.com/vasupatel610/retailrank/internal/domain/taxonomy"
)

// Tier identifies which expansion set a candidate fell into. TierFallback
// marks candidates ranked by semantic similarity alone.
type Tier int

const (
	TierFallback Tier = 0
	Tier1        Tier = 1
	Tier2        Tier = 2
	Tier3        Tier = 3
)

// Name returns the human-readable tier label.
func (t Tier) Name() string {
	switch t {
	case Tier1:
		return "Exact Intent Match"
	case Tier2:
		return "Close Substitutes"
	case Tier3:
		return "Broader Exploration"
	default:
		return "Semantic Fallback"
	}
}

// classify assigns a candidate to the tightest tier it qualifies for.
func classify(base, cand *domain.Item) Tier {
	switch {
	case inTier1(base, cand):
		return Tier1
	case inTier2(base, cand):
		return Tier2
	case inTier3(base, cand):
		return Tier3
	default:
		return TierFallback
	}
}

// inTier1: same category plus a strong color match or the same brand.
func inTier1(base, cand *domain.Item) bool {
	if !base.Category.Equals(cand.Category) {
		return false
	}
	return similarity.Color(base.Color, cand.Color) > 0.6 || base.Brand.Equals(cand.Brand)
}

// inTier2: both categories fall in the same substitute family. Membership is
// by substring containment in either direction, so "running shoes" matches
// the "shoes" family entries and vice versa.
func inTier2(base, cand *domain.Item) bool {
	bc, cc := base.Category.Norm(), cand.Category.Norm()
	if bc == "" || cc == "" {
		return false
	}
	for _, group := range taxonomy.CategoryGroups {
		if inGroup(bc, group) && inGroup(cc, group) {
			return true
		}
	}
	return false
}

func inGroup(category string, group taxonomy.CategoryGroup) bool {
	for _, list := range [][]string{group.Core, group.Related} {
		for _, entry := range list {
			if strings.Contains(category, entry) || strings.Contains(entry, category) {
				return true
			}
		}
	}
	return false
}

// inTier3: shared style bucket (by occasion substring) or the same brand.
func inTier3(base, cand *domain.Item) bool {
	bo, co := base.Occasion.Norm(), cand.Occasion.Norm()
	for _, occasions := range taxonomy.StyleBuckets {
		if inBucket(bo, occasions) && inBucket(co, occasions) {
			return true
		}
	}
	return base.Brand.Equals(cand.Brand)
}

func inBucket(occasion string, occasions []string) bool {
	for _, occ := range occasions {
		if strings.Contains(occasion, occ) {
			return true
		}
	}
	return false
}
