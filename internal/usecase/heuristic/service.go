// Package heuristic implements tiered rule-based recommendations. Candidates
// are partitioned into expansion tiers of decreasing intent match, each tier
// is scored with its own four-factor blend, and the final list interleaves a
// fixed share from each tier.
package heuristic

import (
	"fmt"
	"math"
	"sort"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/similarity"
)

// Request defaults and tier shares.
const (
	DefaultTopK     = 12
	MaxTopK         = 100
	DefaultMinScore = 0.1

	tier1Share = 0.5
	tier2Share = 0.3
	tier3Share = 0.2
)

// Breakdown records the per-factor scores and the blend that produced a
// tier score.
type Breakdown struct {
	Semantic float64     `json:"semantic"`
	Category float64     `json:"category"`
	Color    float64     `json:"color"`
	Brand    float64     `json:"brand"`
	Weights  TierWeights `json:"weights"`
}

// Recommendation is a scored candidate with its tier assignment.
type Recommendation struct {
	Item      domain.Item
	Score     float64
	Tier      Tier
	Breakdown Breakdown
}

// Distribution reports how many results each tier contributed.
type Distribution struct {
	Tier1    int `json:"set1"`
	Tier2    int `json:"set2"`
	Tier3    int `json:"set3"`
	Fallback int `json:"other"`
}

// Metadata describes how a result list was assembled.
type Metadata struct {
	BaseID          string       `json:"base_id"`
	BaseName        string       `json:"base_name"`
	BaseCategory    string       `json:"base_category"`
	Distribution    Distribution `json:"distribution"`
	TotalCandidates int          `json:"total_candidates"`
	Weights         Weights      `json:"weights"`
}

// Result is a full heuristic recommendation response.
type Result struct {
	Recommendations []Recommendation
	Metadata        Metadata
}

// Counts overrides the per-tier result quotas. Fields that are zero or
// negative keep the default share of topK (50/30/20%, rounded up).
type Counts struct {
	Tier1 int
	Tier2 int
	Tier3 int
}

// Options tunes a heuristic request. The zero value selects topK=12,
// minScore=0.1, the default tier shares and the default tier weights.
type Options struct {
	TopK     int
	MinScore float64
	// Counts, when non-nil, overrides the per-tier quotas for this call only.
	Counts *Counts
	// Weights, when non-nil, replaces the default tier blends for this call
	// only. Must pass Weights.Validate.
	Weights *Weights
}

// Service produces tiered heuristic recommendations.
type Service struct {
	catalog CatalogReader
}

// New creates a heuristic recommendation service.
func New(cat CatalogReader) *Service {
	return &Service{catalog: cat}
}

// Recommend classifies every other catalog item into a tier, scores it with
// that tier's blend, and assembles the tier-quota result list. An unknown
// base ID fails with domain.ErrItemNotFound.
func (s *Service) Recommend(baseID string, opts Options) (Result, error) {
	snap := s.catalog.Snapshot()
	if snap == nil {
		return Result{}, fmt.Errorf("heuristic recommend %q: %w", baseID, domain.ErrItemNotFound)
	}
	base, ok := snap.ItemByID(baseID)
	if !ok {
		return Result{}, fmt.Errorf("heuristic recommend %q: %w", baseID, domain.ErrItemNotFound)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	minScore := opts.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}

	weights := DefaultWeights()
	if opts.Weights != nil {
		if err := opts.Weights.Validate(); err != nil {
			return Result{}, err
		}
		weights = *opts.Weights
	}

	var tiers [4][]Recommendation // indexed by Tier; 0 is the fallback
	candidates := 0
	for i := range snap.Items {
		cand := &snap.Items[i]
		if cand.ID == base.ID {
			continue
		}
		candidates++

		semantic := similarity.Cosine(base.Embedding, cand.Embedding)
		tier := classify(base, cand)

		if tier == TierFallback {
			if semantic >= minScore {
				tiers[0] = append(tiers[0], Recommendation{
					Item: *cand, Score: semantic, Tier: TierFallback,
					Breakdown: Breakdown{Semantic: semantic},
				})
			}
			continue
		}

		tw := weights.tierWeights(tier)
		rec := score(base, cand, tier, tw, semantic)
		if rec.Score >= minScore {
			tiers[tier] = append(tiers[tier], rec)
		}
	}

	for i := range tiers {
		t := tiers[i]
		sort.SliceStable(t, func(a, b int) bool { return t[a].Score > t[b].Score })
	}

	tier1Count := ceilShare(topK, tier1Share)
	tier2Count := ceilShare(topK, tier2Share)
	tier3Count := ceilShare(topK, tier3Share)
	if c := opts.Counts; c != nil {
		if c.Tier1 > 0 {
			tier1Count = c.Tier1
		}
		if c.Tier2 > 0 {
			tier2Count = c.Tier2
		}
		if c.Tier3 > 0 {
			tier3Count = c.Tier3
		}
	}

	final := make([]Recommendation, 0, topK)
	final = append(final, take(tiers[1], tier1Count)...)
	final = append(final, take(tiers[2], tier2Count)...)
	final = append(final, take(tiers[3], tier3Count)...)

	remaining := topK - len(final)
	if remaining > 0 {
		final = append(final, take(tiers[0], remaining)...)
	}

	sort.SliceStable(final, func(a, b int) bool { return final[a].Score > final[b].Score })
	if len(final) > topK {
		final = final[:topK]
	}

	return Result{
		Recommendations: final,
		Metadata: Metadata{
			BaseID:       base.ID,
			BaseName:     base.Name,
			BaseCategory: base.Category.String(),
			Distribution: Distribution{
				Tier1:    minInt(len(tiers[1]), tier1Count),
				Tier2:    minInt(len(tiers[2]), tier2Count),
				Tier3:    minInt(len(tiers[3]), tier3Count),
				Fallback: minInt(len(tiers[0]), maxInt(remaining, 0)),
			},
			TotalCandidates: candidates,
			Weights:         weights,
		},
	}, nil
}

// Analysis reports raw tier membership without scoring or quotas.
type Analysis struct {
	BaseID       string       `json:"base_id"`
	BaseName     string       `json:"base_name"`
	BaseCategory string       `json:"base_category"`
	Distribution Distribution `json:"distribution"`
}

// Analyze partitions all candidates into tiers and returns the counts. Used
// to inspect how a catalog clusters around an item.
func (s *Service) Analyze(baseID string) (Analysis, error) {
	snap := s.catalog.Snapshot()
	if snap == nil {
		return Analysis{}, fmt.Errorf("analyze %q: %w", baseID, domain.ErrItemNotFound)
	}
	base, ok := snap.ItemByID(baseID)
	if !ok {
		return Analysis{}, fmt.Errorf("analyze %q: %w", baseID, domain.ErrItemNotFound)
	}

	var dist Distribution
	for i := range snap.Items {
		cand := &snap.Items[i]
		if cand.ID == base.ID {
			continue
		}
		switch classify(base, cand) {
		case Tier1:
			dist.Tier1++
		case Tier2:
			dist.Tier2++
		case Tier3:
			dist.Tier3++
		default:
			dist.Fallback++
		}
	}

	return Analysis{
		BaseID:       base.ID,
		BaseName:     base.Name,
		BaseCategory: base.Category.String(),
		Distribution: dist,
	}, nil
}

// score computes one tier-weighted candidate score, capped at 1.
func score(base, cand *domain.Item, tier Tier, tw TierWeights, semantic float64) Recommendation {
	b := Breakdown{
		Semantic: semantic,
		Category: similarity.Category(base.Category, cand.Category),
		Color:    similarity.Color(base.Color, cand.Color),
		Brand:    similarity.Brand(base.Brand, cand.Brand),
		Weights:  tw,
	}
	total := tw.Alpha*b.Semantic + tw.Beta*b.Category + tw.Gamma*b.Color + tw.Delta*b.Brand
	return Recommendation{Item: *cand, Score: math.Min(1, total), Tier: tier, Breakdown: b}
}

func (w Weights) tierWeights(t Tier) TierWeights {
	switch t {
	case Tier1:
		return w.Tier1
	case Tier2:
		return w.Tier2
	default:
		return w.Tier3
	}
}

func ceilShare(n int, share float64) int {
	return int(math.Ceil(float64(n) * share))
}

func take(recs []Recommendation, n int) []Recommendation {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
