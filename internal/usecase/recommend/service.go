// Package recommend implements heuristic product recommendations: a weighted
// multi-factor similarity score over the catalog, re-balanced per purpose and
// post-processed with diversity controls.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/purpose"
)

// Request defaults.
const (
	DefaultTopK     = 5
	MaxTopK         = 100
	DefaultMinScore = 0.1
)

// Recommendation is a scored candidate with its full breakdown.
type Recommendation struct {
	Item      domain.Item
	Score     float64
	Breakdown Breakdown
}

// Service ranks catalog items against a base item.
type Service struct {
	catalog CatalogReader
}

// New creates a recommendation service.
func New(cat CatalogReader) *Service {
	return &Service{catalog: cat}
}

// Options tunes a recommendation request. The zero value selects topK=5,
// purpose=similar, minScore=0.1 and purpose-derived weights.
type Options struct {
	TopK     int
	Purpose  purpose.Purpose
	Context  Context
	MinScore float64
	// Weights, when non-nil, replaces the purpose-derived weights for this
	// call only. Must pass Weights.Validate.
	Weights *Weights
}

// Recommend scores every other catalog item against the base item and returns
// the diversified top results. An unknown base ID fails with
// domain.ErrItemNotFound; an invalid weight override fails with
// domain.ErrInvalidWeights.
func (s *Service) Recommend(baseID string, opts Options) ([]Recommendation, error) {
	snap := s.catalog.Snapshot()
	if snap == nil {
		return nil, fmt.Errorf("recommend %q: %w", baseID, domain.ErrItemNotFound)
	}

	base, ok := snap.ItemByID(baseID)
	if !ok {
		return nil, fmt.Errorf("recommend %q: %w", baseID, domain.ErrItemNotFound)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	p := opts.Purpose
	if p == "" {
		p = purpose.Similar
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("unsupported purpose: %q", p)
	}

	minScore := opts.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}

	weights := WeightsFor(p)
	if opts.Weights != nil {
		if err := opts.Weights.Validate(); err != nil {
			return nil, err
		}
		weights = *opts.Weights
	}

	ranked := make([]Recommendation, 0, len(snap.Items))
	for i := range snap.Items {
		cand := &snap.Items[i]
		if cand.ID == base.ID {
			continue
		}
		b := Score(base, cand, weights, opts.Context)
		if b.Score < minScore {
			continue
		}
		ranked = append(ranked, Recommendation{Item: *cand, Score: b.Score, Breakdown: b})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	maxSameCategory := int(math.Ceil(float64(topK) * sameCategoryShare))
	diverse := diversify(ranked, attrKey(base.Category.Norm()), maxSameCategory)

	if len(diverse) > topK {
		diverse = diverse[:topK]
	}
	return diverse, nil
}
