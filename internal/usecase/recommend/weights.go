package recommend

import (
	"math"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/purpose"
)

// Weights controls the contribution of each similarity factor to the final
// recommendation score. Weights are passed explicitly through every call:
// nothing here is ever mutated in place.
type Weights struct {
	Semantic float64 `json:"semantic"`
	Category float64 `json:"category"`
	Brand    float64 `json:"brand"`
	Color    float64 `json:"color"`
	Material float64 `json:"material"`
	Occasion float64 `json:"occasion"`
	Price    float64 `json:"price"`
	AgeGroup float64 `json:"age_group"`
	Size     float64 `json:"size"`
}

// DefaultWeights returns the baseline factor weights.
func DefaultWeights() Weights {
	return Weights{
		Semantic: 0.25,
		Category: 0.15,
		Brand:    0.12,
		Color:    0.12,
		Material: 0.10,
		Occasion: 0.10,
		Price:    0.08,
		AgeGroup: 0.05,
		Size:     0.03,
	}
}

// WeightsFor returns the default weights re-balanced for the given purpose.
func WeightsFor(p purpose.Purpose) Weights {
	w := DefaultWeights()
	switch p {
	case purpose.Similar:
		w.Semantic = 0.35
		w.Category = 0.25
		w.Brand = 0.15
	case purpose.Outfit:
		w.Color = 0.20
		w.Category = 0.05
		w.Occasion = 0.15
		w.Material = 0.15
	case purpose.Occasion:
		w.Occasion = 0.30
		w.Material = 0.20
		w.Category = 0.10
	case purpose.Brand:
		w.Brand = 0.40
		w.Semantic = 0.20
	case purpose.Budget:
		w.Price = 0.25
		w.Semantic = 0.20
	}
	return w
}

// Validate checks that every weight is a finite non-negative number and that
// at least one factor carries weight. Violations wrap domain.ErrInvalidWeights.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"semantic", w.Semantic},
		{"category", w.Category},
		{"brand", w.Brand},
		{"color", w.Color},
		{"material", w.Material},
		{"occasion", w.Occasion},
		{"price", w.Price},
		{"age_group", w.AgeGroup},
		{"size", w.Size},
	}

	sum := 0.0
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return domain.NewInvalidWeights(f.name, "must be a finite number")
		}
		if f.value < 0 {
			return domain.NewInvalidWeights(f.name, "must be non-negative")
		}
		sum += f.value
	}
	if sum == 0 {
		return domain.NewInvalidWeights("weights", "at least one weight must be positive")
	}
	return nil
}
