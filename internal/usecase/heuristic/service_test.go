package heuristic

import (
	"errors"
	"math"
	"testing"

	"github.com/vasupatel610/retailrank/internal/catalog"
	"github.com/vasupatel610/retailrank/internal/domain"
)

func attr(s string) domain.Attr { return domain.NewAttr(s) }

func fixtureItems() []domain.Item {
	return []domain.Item{
		{ID: "base", Name: "Red Dress", Category: attr("dress"), Brand: attr("zara"),
			Color: attr("red"), Occasion: attr("casual"), Embedding: []float32{1, 0}},
		// Tier 1: same category, crimson canonicalizes to red (color sim 1.0).
		{ID: "t1", Name: "Crimson Dress", Category: attr("dress"), Brand: attr("h&m"),
			Color: attr("red"), Occasion: attr("casual"), Embedding: []float32{0.9, 0.1}},
		// Tier 2: skirt is in the clothing family with dress, but differs in
		// category, color, and brand.
		{ID: "t2", Name: "Green Skirt", Category: attr("skirt"), Brand: attr("levis"),
			Color: attr("green"), Occasion: attr("office"), Embedding: []float32{0.6, 0.4}},
		// Tier 3: unrelated category, but shares the casual style bucket.
		{ID: "t3", Name: "Travel Mug Holder", Category: attr("gadget"), Brand: attr("generic"),
			Color: attr("black"), Occasion: attr("travel"), Embedding: []float32{0.5, 0.5}},
		// Fallback: nothing shared, ranked by embedding alone.
		{ID: "f1", Name: "Office Chair", Category: attr("furniture"), Brand: attr("ikea"),
			Color: attr("gray"), Occasion: attr("office"), Embedding: []float32{0.4, 0.6}},
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

func TestRecommend_TierAssignment(t *testing.T) {
	res, err := fixtureService().Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	tiers := map[string]Tier{}
	for _, rec := range res.Recommendations {
		tiers[rec.Item.ID] = rec.Tier
	}
	want := map[string]Tier{"t1": Tier1, "t2": Tier2, "t3": Tier3, "f1": TierFallback}
	for id, tier := range want {
		if got, ok := tiers[id]; !ok {
			t.Errorf("item %s missing from results", id)
		} else if got != tier {
			t.Errorf("item %s tier = %d, want %d", id, got, tier)
		}
	}
}

func TestRecommend_ScoresUseTierBlend(t *testing.T) {
	res, err := fixtureService().Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	for _, rec := range res.Recommendations {
		if rec.Tier == TierFallback {
			if rec.Score != rec.Breakdown.Semantic {
				t.Errorf("fallback %s: score %f != semantic %f",
					rec.Item.ID, rec.Score, rec.Breakdown.Semantic)
			}
			continue
		}
		b := rec.Breakdown
		raw := b.Weights.Alpha*b.Semantic + b.Weights.Beta*b.Category +
			b.Weights.Gamma*b.Color + b.Weights.Delta*b.Brand
		want := math.Min(1, raw)
		if math.Abs(want-rec.Score) > 1e-9 {
			t.Errorf("item %s: breakdown reconstructs %f, score is %f", rec.Item.ID, want, rec.Score)
		}
	}
}

func TestRecommend_SortedAndCapped(t *testing.T) {
	res, err := fixtureService().Recommend("base", Options{TopK: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Recommendations) > 2 {
		t.Errorf("len = %d, want <= 2", len(res.Recommendations))
	}
	for i := 1; i < len(res.Recommendations); i++ {
		if res.Recommendations[i].Score > res.Recommendations[i-1].Score {
			t.Errorf("results not sorted at %d", i)
		}
	}
	for _, rec := range res.Recommendations {
		if rec.Score > 1 {
			t.Errorf("item %s: score %f exceeds cap", rec.Item.ID, rec.Score)
		}
	}
}

func TestRecommend_DistributionMetadata(t *testing.T) {
	res, err := fixtureService().Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	m := res.Metadata
	if m.BaseID != "base" || m.BaseCategory != "dress" {
		t.Errorf("metadata base = %s/%s", m.BaseID, m.BaseCategory)
	}
	if m.TotalCandidates != 4 {
		t.Errorf("TotalCandidates = %d, want 4", m.TotalCandidates)
	}
	// One item per tier in the fixture; quotas are larger than membership.
	wantDist := Distribution{Tier1: 1, Tier2: 1, Tier3: 1, Fallback: 1}
	if m.Distribution != wantDist {
		t.Errorf("Distribution = %+v, want %+v", m.Distribution, wantDist)
	}
	if m.Weights != DefaultWeights() {
		t.Errorf("metadata weights = %+v, want defaults", m.Weights)
	}
}

func TestRecommend_TierCountOverrides(t *testing.T) {
	// Three tier-1 candidates (same category, matching color) and nothing else.
	items := []domain.Item{
		{ID: "base", Name: "Red Dress", Category: attr("dress"), Brand: attr("zara"),
			Color: attr("red"), Occasion: attr("casual"), Embedding: []float32{1, 0}},
		{ID: "a", Name: "Scarlet Dress", Category: attr("dress"), Brand: attr("h&m"),
			Color: attr("red"), Occasion: attr("casual"), Embedding: []float32{0.9, 0.1}},
		{ID: "b", Name: "Ruby Dress", Category: attr("dress"), Brand: attr("levis"),
			Color: attr("red"), Occasion: attr("casual"), Embedding: []float32{0.8, 0.2}},
		{ID: "c", Name: "Cherry Dress", Category: attr("dress"), Brand: attr("gap"),
			Color: attr("red"), Occasion: attr("casual"), Embedding: []float32{0.7, 0.3}},
	}
	svc := New(catalog.New(catalog.BuildSnapshot(items)))

	// Default shares admit the whole tier.
	res, err := svc.Recommend("base", Options{TopK: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Metadata.Distribution.Tier1 != 3 {
		t.Errorf("default Tier1 count = %d, want 3", res.Metadata.Distribution.Tier1)
	}

	// An explicit quota caps the tier regardless of topK.
	res, err = svc.Recommend("base", Options{TopK: 10, Counts: &Counts{Tier1: 1}})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Metadata.Distribution.Tier1 != 1 {
		t.Errorf("overridden Tier1 count = %d, want 1", res.Metadata.Distribution.Tier1)
	}
	got := 0
	for _, rec := range res.Recommendations {
		if rec.Tier == Tier1 {
			got++
		}
	}
	if got != 1 {
		t.Errorf("results contain %d tier-1 items, want 1", got)
	}
}

func TestRecommend_CustomWeights(t *testing.T) {
	custom := DefaultWeights()
	custom.Tier1 = TierWeights{Alpha: 1} // rank tier 1 purely by embedding

	res, err := fixtureService().Recommend("base", Options{TopK: 10, Weights: &custom})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, rec := range res.Recommendations {
		if rec.Tier == Tier1 && rec.Breakdown.Weights != custom.Tier1 {
			t.Errorf("tier 1 item %s scored with %+v, want %+v",
				rec.Item.ID, rec.Breakdown.Weights, custom.Tier1)
		}
	}
	if DefaultWeights().Tier1.Alpha != 0.4 {
		t.Error("DefaultWeights() changed after a custom-weight call")
	}
}

func TestRecommend_CustomWeightsValidation(t *testing.T) {
	bad := DefaultWeights()
	bad.Tier2.Beta = -0.5
	_, err := fixtureService().Recommend("base", Options{Weights: &bad})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Errorf("Recommend() error = %v, want ErrInvalidWeights", err)
	}

	nan := DefaultWeights()
	nan.Tier3.Delta = math.NaN()
	_, err = fixtureService().Recommend("base", Options{Weights: &nan})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Errorf("Recommend() error = %v, want ErrInvalidWeights for NaN", err)
	}
}

func TestAnalyze(t *testing.T) {
	a, err := fixtureService().Analyze("base")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	want := Distribution{Tier1: 1, Tier2: 1, Tier3: 1, Fallback: 1}
	if a.Distribution != want {
		t.Errorf("Distribution = %+v, want %+v", a.Distribution, want)
	}

	if _, err := fixtureService().Analyze("missing"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("Analyze() error = %v, want ErrItemNotFound", err)
	}
}

func TestClassify_TierExclusivity(t *testing.T) {
	items := fixtureItems()
	base := &items[0]
	for i := 1; i < len(items); i++ {
		cand := &items[i]
		tier := classify(base, cand)
		// A candidate in a tighter tier must not also satisfy a looser one
		// through classify, which checks in order.
		if tier == Tier1 && !inTier1(base, cand) {
			t.Errorf("%s classified Tier1 but inTier1 is false", cand.ID)
		}
		if tier == Tier2 && inTier1(base, cand) {
			t.Errorf("%s classified Tier2 but belongs to Tier1", cand.ID)
		}
		if tier == Tier3 && (inTier1(base, cand) || inTier2(base, cand)) {
			t.Errorf("%s classified Tier3 but belongs to a tighter tier", cand.ID)
		}
	}
}
