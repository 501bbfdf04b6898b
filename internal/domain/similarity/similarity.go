// Package similarity scores pairwise attribute compatibility between catalog
// items. Every function is pure, returns a value in [0,1], and treats a
// missing attribute with a fixed neutral default so sparse catalog rows are
// not penalized against complete ones.
package similarity

import (
	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/taxonomy"
)

// Cosine computes the dot product of two L2-normalized vectors, which equals
// their cosine similarity. Mismatched lengths score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// Color scores color harmony between two items.
func Color(a, b domain.Attr) float64 {
	c1, ok1 := normAttr(a)
	c2, ok2 := normAttr(b)
	if !ok1 || !ok2 {
		return 0
	}
	if c1 == c2 {
		return 1.0
	}
	if taxonomy.In(taxonomy.NeutralColors, c1) && taxonomy.In(taxonomy.NeutralColors, c2) {
		return 0.8
	}
	if taxonomy.In(taxonomy.AnalogousColors[c1], c2) || taxonomy.In(taxonomy.AnalogousColors[c2], c1) {
		return 0.7
	}
	if taxonomy.In(taxonomy.ComplementaryColors[c1], c2) || taxonomy.In(taxonomy.ComplementaryColors[c2], c1) {
		return 0.6
	}
	return 0.1
}

// Material scores fabric compatibility. The optional occasion context rewards
// materials that both suit the occasion even when they differ.
func Material(a, b, occasion domain.Attr) float64 {
	m1, ok1 := normAttr(a)
	m2, ok2 := normAttr(b)
	if !ok1 || !ok2 {
		return 0
	}
	if m1 == m2 {
		return 1.0
	}
	if occ, ok := normAttr(occasion); ok {
		if compatible := taxonomy.OccasionMaterials[occ]; taxonomy.In(compatible, m1) && taxonomy.In(compatible, m2) {
			return 0.8
		}
	}
	switch {
	case taxonomy.In(taxonomy.PremiumMaterials, m1) && taxonomy.In(taxonomy.PremiumMaterials, m2):
		return 0.7
	case taxonomy.In(taxonomy.CasualMaterials, m1) && taxonomy.In(taxonomy.CasualMaterials, m2):
		return 0.7
	case taxonomy.In(taxonomy.SyntheticMaterials, m1) && taxonomy.In(taxonomy.SyntheticMaterials, m2):
		return 0.6
	}
	return 0.2
}

// Occasion scores how well two occasions pair.
func Occasion(a, b domain.Attr) float64 {
	o1, ok1 := normAttr(a)
	o2, ok2 := normAttr(b)
	if !ok1 || !ok2 {
		return 0.5
	}
	if o1 == o2 {
		return 1.0
	}
	if taxonomy.In(taxonomy.CompatibleOccasions[o1], o2) || taxonomy.In(taxonomy.CompatibleOccasions[o2], o1) {
		return 0.7
	}
	return 0.3
}

// Size scores size compatibility within the candidate's category size system.
func Size(a, b, category domain.Attr) float64 {
	s1, ok1 := normAttr(a)
	s2, ok2 := normAttr(b)
	if !ok1 || !ok2 {
		return 0.5
	}
	if s1 == s2 {
		return 1.0
	}

	groups, ok := taxonomy.SizeGroups[category.Norm()]
	if !ok {
		groups = taxonomy.SizeGroups["clothing"]
	}
	for _, sizes := range groups {
		if taxonomy.In(sizes, s1) && taxonomy.In(sizes, s2) {
			return 0.8
		}
	}

	idx1 := indexOf(taxonomy.ClothingSizes, s1)
	idx2 := indexOf(taxonomy.ClothingSizes, s2)
	if idx1 >= 0 && idx2 >= 0 {
		switch diff := abs(idx1 - idx2); diff {
		case 1:
			return 0.6
		case 2:
			return 0.4
		}
	}
	return 0.2
}

// AgeGroup scores audience overlap between two items.
func AgeGroup(a, b domain.Attr) float64 {
	a1, ok1 := normAttr(a)
	a2, ok2 := normAttr(b)
	if !ok1 || !ok2 {
		return 0.5
	}
	if a1 == a2 {
		return 1.0
	}
	if a1 == "all ages" || a2 == "all ages" {
		return 0.8
	}
	if (a1 == "adults" && a2 == "teens") || (a1 == "teens" && a2 == "adults") {
		return 0.6
	}
	return 0.2
}

// Brand scores brand affinity. An exact match scores 0.9 rather than 1.0 to
// leave headroom for tier differentiation in downstream ranking.
func Brand(a, b domain.Attr) float64 {
	b1, ok1 := normAttr(a)
	b2, ok2 := normAttr(b)
	if !ok1 || !ok2 {
		return 0.3
	}
	if b1 == b2 {
		return 0.9
	}
	switch {
	case taxonomy.In(taxonomy.LuxuryBrands, b1) && taxonomy.In(taxonomy.LuxuryBrands, b2):
		return 0.7
	case taxonomy.In(taxonomy.SportsBrands, b1) && taxonomy.In(taxonomy.SportsBrands, b2):
		return 0.7
	case taxonomy.In(taxonomy.CasualBrands, b1) && taxonomy.In(taxonomy.CasualBrands, b2):
		return 0.6
	case taxonomy.In(taxonomy.AffordableBrands, b1) && taxonomy.In(taxonomy.AffordableBrands, b2):
		return 0.6
	}
	return 0.1
}

// Category scores category compatibility, rewarding cross-category pairs that
// compose an outfit.
func Category(a, b domain.Attr) float64 {
	c1, ok1 := normAttr(a)
	c2, ok2 := normAttr(b)
	if !ok1 || !ok2 {
		return 0.3
	}
	if c1 == c2 {
		return 1.0
	}
	if taxonomy.In(taxonomy.OutfitCategories[c1], c2) {
		return 0.6
	}
	return 0.2
}

// Price scores price-range proximity via the min/max ratio, bucketed.
func Price(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0.5
	}
	ratio := min(a, b) / max(a, b)
	switch {
	case ratio > 0.8:
		return 1.0
	case ratio > 0.6:
		return 0.8
	case ratio > 0.4:
		return 0.6
	case ratio > 0.2:
		return 0.4
	}
	return 0.1
}

func normAttr(a domain.Attr) (string, bool) {
	if !a.Known() {
		return "", false
	}
	return a.Norm(), true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
