package recommend

import (
	"math"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/similarity"
)

// Business adjustment magnitudes.
const (
	stockBoost         = 0.05
	budgetBoost        = 0.03
	crossCategoryBonus = 0.04
	duplicatePenalty   = -0.02
)

// crossCategoryPairs lists category pairs that complement each other in an
// outfit; a candidate from the paired category earns a bonus.
var crossCategoryPairs = [][2]string{
	{"clothing", "footwear"},
	{"clothing", "accessories"},
	{"footwear", "accessories"},
}

// Range is an inclusive price range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Context carries optional request-level signals that shift scoring.
type Context struct {
	// Occasion overrides the base item's occasion for material compatibility.
	Occasion domain.Attr
	// Budget enables the in-budget price boost.
	Budget *Range
}

// Components holds the raw per-factor similarity scores before weighting.
type Components struct {
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

// Adjustments holds the business rule deltas applied after weighting.
type Adjustments struct {
	StockBoost         float64 `json:"stock_boost"`
	BudgetBoost        float64 `json:"price_range_boost"`
	CrossCategoryBonus float64 `json:"cross_category_bonus"`
	DuplicatePenalty   float64 `json:"diversity_penalty"`
	Total              float64 `json:"total"`
}

// Breakdown is the full scoring transparency record: the final score is
// reconstructable as sum(Components*Weights) + Adjustments.Total, clamped
// to [0, 1].
type Breakdown struct {
	Score       float64     `json:"score"`
	Components  Components  `json:"breakdown"`
	Adjustments Adjustments `json:"adjustments"`
	Weights     Weights     `json:"weights"`
}

// Score computes the weighted multi-factor similarity of a candidate against
// the base item.
func Score(base, cand *domain.Item, w Weights, ctx Context) Breakdown {
	materialOccasion := base.Occasion
	if ctx.Occasion.Known() {
		materialOccasion = ctx.Occasion
	}

	comps := Components{
		Semantic: similarity.Cosine(base.Embedding, cand.Embedding),
		Category: similarity.Category(base.Category, cand.Category),
		Brand:    similarity.Brand(base.Brand, cand.Brand),
		Color:    similarity.Color(base.Color, cand.Color),
		Material: similarity.Material(base.Material, cand.Material, materialOccasion),
		Occasion: similarity.Occasion(base.Occasion, cand.Occasion),
		Price:    similarity.Price(base.Price, cand.Price),
		AgeGroup: similarity.AgeGroup(base.AgeGroup, cand.AgeGroup),
		Size:     similarity.Size(base.Size, cand.Size, cand.Category),
	}

	adj := adjustments(base, cand, ctx)

	score := comps.Semantic*w.Semantic +
		comps.Category*w.Category +
		comps.Brand*w.Brand +
		comps.Color*w.Color +
		comps.Material*w.Material +
		comps.Occasion*w.Occasion +
		comps.Price*w.Price +
		comps.AgeGroup*w.AgeGroup +
		comps.Size*w.Size

	score += adj.Total
	score = math.Max(0, math.Min(1, score))

	return Breakdown{Score: score, Components: comps, Adjustments: adj, Weights: w}
}

func adjustments(base, cand *domain.Item, ctx Context) Adjustments {
	var adj Adjustments

	if cand.InStock {
		adj.StockBoost = stockBoost
	}

	if ctx.Budget != nil {
		price := math.Max(cand.Price, 0)
		if price >= ctx.Budget.Min && price <= ctx.Budget.Max {
			adj.BudgetBoost = budgetBoost
		}
	}

	if !base.Category.Equals(cand.Category) {
		bc, cc := base.Category.Norm(), cand.Category.Norm()
		for _, pair := range crossCategoryPairs {
			if (bc == pair[0] && cc == pair[1]) || (bc == pair[1] && cc == pair[0]) {
				adj.CrossCategoryBonus = crossCategoryBonus
				break
			}
		}
	}

	// Near-duplicates of the base item rank slightly lower.
	if base.Category.Equals(cand.Category) &&
		base.Brand.Equals(cand.Brand) &&
		base.Color.Equals(cand.Color) {
		adj.DuplicatePenalty = duplicatePenalty
	}

	adj.Total = adj.StockBoost + adj.BudgetBoost + adj.CrossCategoryBonus + adj.DuplicatePenalty
	return adj
}
