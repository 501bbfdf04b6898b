// Package facet extracts structured constraints from free-text queries
// against the catalog vocabulary and applies them as pre-filters.
package facet

import (
	"github.com/vasupatel610/retailrank/internal/domain"
)

// Set is the parsed facet constraints of a query. An unknown attribute or nil
// price bound means "unconstrained", never "exclude".
type Set struct {
	Color    domain.Attr
	Category domain.Attr
	Brand    domain.Attr
	Material domain.Attr
	Occasion domain.Attr
	AgeGroup domain.Attr
	Size     domain.Attr
	PriceMin *float64
	PriceMax *float64
}

// IsEmpty reports whether no facet was recognized.
func (s Set) IsEmpty() bool {
	return !s.Color.Known() && !s.Category.Known() && !s.Brand.Known() &&
		!s.Material.Known() && !s.Occasion.Known() && !s.AgeGroup.Known() &&
		!s.Size.Known() && s.PriceMin == nil && s.PriceMax == nil
}

// Matches reports whether the item satisfies every present facet. A facet only
// excludes when the item's corresponding field is present and disagrees; a
// missing item field never excludes.
func (s Set) Matches(it *domain.Item) bool {
	if disagrees(s.Color, it.Color) ||
		disagrees(s.Category, it.Category) ||
		disagrees(s.Brand, it.Brand) ||
		disagrees(s.Material, it.Material) ||
		disagrees(s.Occasion, it.Occasion) ||
		disagrees(s.AgeGroup, it.AgeGroup) ||
		disagrees(s.Size, it.Size) {
		return false
	}
	if it.HasPrice() {
		if s.PriceMin != nil && it.Price < *s.PriceMin {
			return false
		}
		if s.PriceMax != nil && it.Price > *s.PriceMax {
			return false
		}
	}
	return true
}

// Filter returns the items satisfying the facet set. Filtering is idempotent:
// re-filtering a filtered result with the same set yields the same items.
func Filter(items []domain.Item, s Set) []domain.Item {
	if s.IsEmpty() {
		return items
	}
	out := make([]domain.Item, 0, len(items))
	for i := range items {
		if s.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func disagrees(facet, field domain.Attr) bool {
	return facet.Known() && field.Known() && facet.Norm() != field.Norm()
}
