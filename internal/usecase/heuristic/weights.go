package heuristic

import (
	"math"

	"github.com/vasupatel610/retailrank/internal/domain"
)

// TierWeights is the four-factor blend for one tier:
// score = Alpha*semantic + Beta*category + Gamma*color + Delta*brand.
type TierWeights struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Delta float64 `json:"delta"`
}

// Weights holds the per-tier blends.
type Weights struct {
	Tier1 TierWeights `json:"set1"`
	Tier2 TierWeights `json:"set2"`
	Tier3 TierWeights `json:"set3"`
}

// DefaultWeights returns the stock per-tier blends. Tighter tiers lean on
// attribute agreement; the exploratory tier leans on the embedding.
func DefaultWeights() Weights {
	return Weights{
		Tier1: TierWeights{Alpha: 0.4, Beta: 0.3, Gamma: 0.2, Delta: 0.1},
		Tier2: TierWeights{Alpha: 0.5, Beta: 0.25, Gamma: 0.1, Delta: 0.15},
		Tier3: TierWeights{Alpha: 0.6, Beta: 0.1, Gamma: 0.05, Delta: 0.25},
	}
}

// Validate checks that every tier weight is finite and non-negative and that
// each tier carries some weight. Violations wrap domain.ErrInvalidWeights.
func (w Weights) Validate() error {
	tiers := []struct {
		name string
		tw   TierWeights
	}{
		{"set1", w.Tier1},
		{"set2", w.Tier2},
		{"set3", w.Tier3},
	}
	for _, t := range tiers {
		factors := []struct {
			name  string
			value float64
		}{
			{t.name + ".alpha", t.tw.Alpha},
			{t.name + ".beta", t.tw.Beta},
			{t.name + ".gamma", t.tw.Gamma},
			{t.name + ".delta", t.tw.Delta},
		}
		sum := 0.0
		for _, f := range factors {
			if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
				return domain.NewInvalidWeights(f.name, "must be a finite number")
			}
			if f.value < 0 {
				return domain.NewInvalidWeights(f.name, "must be non-negative")
			}
			sum += f.value
		}
		if sum == 0 {
			return domain.NewInvalidWeights(t.name, "at least one weight must be positive")
		}
	}
	return nil
}
