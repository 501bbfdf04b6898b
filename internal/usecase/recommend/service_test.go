package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/vasupatel610/retailrank/internal/catalog"
	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/purpose"
)

func attr(s string) domain.Attr { return domain.NewAttr(s) }

func fixtureItems() []domain.Item {
	return []domain.Item{
		{ID: "base", Name: "Red Cotton Dress", Category: attr("clothing"), Brand: attr("zara"),
			Color: attr("red"), Material: attr("cotton"), Occasion: attr("casual"),
			AgeGroup: attr("adults"), Size: attr("m"), Price: 1200, InStock: true,
			Embedding: []float32{1, 0}},
		{ID: "c1", Name: "Crimson Cotton Dress", Category: attr("clothing"), Brand: attr("zara"),
			Color: attr("red"), Material: attr("cotton"), Occasion: attr("casual"),
			AgeGroup: attr("adults"), Size: attr("m"), Price: 1100, InStock: true,
			Embedding: []float32{0.9, 0.1}},
		{ID: "c2", Name: "Blue Denim Jacket", Category: attr("clothing"), Brand: attr("levis"),
			Color: attr("blue"), Material: attr("denim"), Occasion: attr("casual"),
			AgeGroup: attr("adults"), Size: attr("m"), Price: 2400, InStock: true,
			Embedding: []float32{0.7, 0.3}},
		{ID: "f1", Name: "White Sneakers", Category: attr("footwear"), Brand: attr("nike"),
			Color: attr("white"), Material: attr("canvas"), Occasion: attr("sports"),
			AgeGroup: attr("adults"), Size: attr("9"), Price: 3000, InStock: true,
			Embedding: []float32{0.5, 0.5}},
		{ID: "a1", Name: "Leather Belt", Category: attr("accessories"), Brand: attr("zara"),
			Color: attr("brown"), Material: attr("leather"), Occasion: attr("formal"),
			AgeGroup: attr("adults"), Size: attr("one_size"), Price: 800, InStock: false,
			Embedding: []float32{0.4, 0.6}},
	}
}

func fixtureService() *Service {
	return New(catalog.New(catalog.BuildSnapshot(fixtureItems())))
}

func TestRecommend_UnknownBase(t *testing.T) {
	_, err := fixtureService().Recommend("missing", Options{})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("Recommend() error = %v, want ErrItemNotFound", err)
	}
}

func TestRecommend_ExcludesBaseAndSorts(t *testing.T) {
	recs, err := fixtureService().Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	for i, rec := range recs {
		if rec.Item.ID == "base" {
			t.Error("base item included in its own recommendations")
		}
		if i > 0 && rec.Score > recs[i-1].Score {
			t.Errorf("results not sorted at %d: %f > %f", i, rec.Score, recs[i-1].Score)
		}
	}
}

func TestRecommend_BreakdownReconstructsScore(t *testing.T) {
	recs, err := fixtureService().Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, rec := range recs {
		b := rec.Breakdown
		c, w := b.Components, b.Weights
		raw := c.Semantic*w.Semantic + c.Category*w.Category + c.Brand*w.Brand +
			c.Color*w.Color + c.Material*w.Material + c.Occasion*w.Occasion +
			c.Price*w.Price + c.AgeGroup*w.AgeGroup + c.Size*w.Size +
			b.Adjustments.Total
		want := math.Max(0, math.Min(1, raw))
		if math.Abs(want-rec.Score) > 1e-6 {
			t.Errorf("item %s: breakdown reconstructs %f, score is %f", rec.Item.ID, want, rec.Score)
		}
		if rec.Score < 0 || rec.Score > 1 {
			t.Errorf("item %s: score %f out of [0,1]", rec.Item.ID, rec.Score)
		}
	}
}

func TestRecommend_NearDuplicateIsPenalized(t *testing.T) {
	recs, err := fixtureService().Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, rec := range recs {
		if rec.Item.ID == "c1" {
			// Same category, brand, and color as the base.
			if rec.Breakdown.Adjustments.DuplicatePenalty != duplicatePenalty {
				t.Errorf("DuplicatePenalty = %f, want %f",
					rec.Breakdown.Adjustments.DuplicatePenalty, duplicatePenalty)
			}
			return
		}
	}
	t.Fatal("near-duplicate c1 not present in results")
}

func TestRecommend_CrossCategoryBonus(t *testing.T) {
	recs, err := fixtureService().Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, rec := range recs {
		if rec.Item.ID == "f1" {
			if rec.Breakdown.Adjustments.CrossCategoryBonus != crossCategoryBonus {
				t.Errorf("CrossCategoryBonus = %f, want %f",
					rec.Breakdown.Adjustments.CrossCategoryBonus, crossCategoryBonus)
			}
			return
		}
	}
	t.Fatal("footwear item f1 not present in results")
}

func TestRecommend_BudgetBoost(t *testing.T) {
	opts := Options{TopK: 10, Context: Context{Budget: &Range{Min: 1000, Max: 2000}}}
	recs, err := fixtureService().Recommend("base", opts)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, rec := range recs {
		got := rec.Breakdown.Adjustments.BudgetBoost
		inBudget := rec.Item.Price >= 1000 && rec.Item.Price <= 2000
		if inBudget && got != budgetBoost {
			t.Errorf("item %s in budget: BudgetBoost = %f, want %f", rec.Item.ID, got, budgetBoost)
		}
		if !inBudget && got != 0 {
			t.Errorf("item %s out of budget: BudgetBoost = %f, want 0", rec.Item.ID, got)
		}
	}
}

func TestRecommend_CustomWeightsValidation(t *testing.T) {
	bad := Weights{Semantic: -1}
	_, err := fixtureService().Recommend("base", Options{Weights: &bad})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Errorf("Recommend() error = %v, want ErrInvalidWeights", err)
	}

	nan := DefaultWeights()
	nan.Price = math.NaN()
	_, err = fixtureService().Recommend("base", Options{Weights: &nan})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Errorf("Recommend() error = %v, want ErrInvalidWeights for NaN", err)
	}

	zero := Weights{}
	_, err = fixtureService().Recommend("base", Options{Weights: &zero})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Errorf("Recommend() error = %v, want ErrInvalidWeights for all-zero", err)
	}
}

func TestRecommend_CustomWeightsDoNotMutateDefaults(t *testing.T) {
	before := DefaultWeights()
	custom := DefaultWeights()
	custom.Brand = 0.9
	if _, err := fixtureService().Recommend("base", Options{Weights: &custom}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if DefaultWeights() != before {
		t.Error("DefaultWeights() changed after a custom-weight call")
	}
}

func TestWeightsFor_PurposeOverrides(t *testing.T) {
	tests := []struct {
		purpose purpose.Purpose
		check   func(Weights) bool
		desc    string
	}{
		{purpose.Similar, func(w Weights) bool { return w.Semantic == 0.35 && w.Category == 0.25 && w.Brand == 0.15 }, "similar emphasizes semantic"},
		{purpose.Outfit, func(w Weights) bool { return w.Color == 0.20 && w.Category == 0.05 }, "outfit emphasizes color"},
		{purpose.Occasion, func(w Weights) bool { return w.Occasion == 0.30 && w.Material == 0.20 }, "occasion emphasizes occasion"},
		{purpose.Brand, func(w Weights) bool { return w.Brand == 0.40 && w.Semantic == 0.20 }, "brand emphasizes brand"},
		{purpose.Budget, func(w Weights) bool { return w.Price == 0.25 && w.Semantic == 0.20 }, "budget emphasizes price"},
	}
	for _, tt := range tests {
		if w := WeightsFor(tt.purpose); !tt.check(w) {
			t.Errorf("%s: weights = %+v", tt.desc, w)
		}
	}
}

func TestDiversify_BrandCap(t *testing.T) {
	var ranked []Recommendation
	for i := 0; i < 5; i++ {
		ranked = append(ranked, Recommendation{
			Item:  domain.Item{ID: string(rune('a' + i)), Category: attr("clothing"), Brand: attr("zara")},
			Score: 0.9 - float64(i)*0.01,
		})
	}

	out := diversify(ranked, "footwear", 10)
	if len(out) != maxPerBrand {
		t.Errorf("len(out) = %d, want %d (brand cap)", len(out), maxPerBrand)
	}
}

func TestDiversify_CategoryCaps(t *testing.T) {
	var ranked []Recommendation
	for i := 0; i < 10; i++ {
		ranked = append(ranked, Recommendation{
			Item: domain.Item{
				ID:       string(rune('a' + i)),
				Category: attr("clothing"),
				Brand:    attr(string(rune('A' + i))), // distinct brands
			},
			Score: 0.9,
		})
	}

	// Base category matches: hard cap applies.
	out := diversify(ranked, "clothing", 3)
	if len(out) != 3 {
		t.Errorf("same-category cap: len(out) = %d, want 3", len(out))
	}

	// Different base category: cap scales by 1.5 (ceil(3*1.5) = 5).
	out = diversify(ranked, "footwear", 3)
	if len(out) != 5 {
		t.Errorf("other-category cap: len(out) = %d, want 5", len(out))
	}
}

func TestDiversify_ThresholdSkipsAfterFirst(t *testing.T) {
	ranked := []Recommendation{
		{Item: domain.Item{ID: "a", Category: attr("clothing"), Brand: attr("x")}, Score: 0.25},
		{Item: domain.Item{ID: "b", Category: attr("footwear"), Brand: attr("y")}, Score: 0.2},
		{Item: domain.Item{ID: "c", Category: attr("accessories"), Brand: attr("z")}, Score: 0.5},
	}

	out := diversify(ranked, "clothing", 5)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	// First item is always admitted regardless of score; later ones must
	// clear the threshold.
	if out[0].Item.ID != "a" || out[1].Item.ID != "c" {
		t.Errorf("out = %s,%s, want a,c", out[0].Item.ID, out[1].Item.ID)
	}
}
