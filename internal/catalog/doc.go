package catalog

import (
	"strings"

	"github.com/vasupatel610/retailrank/internal/domain"
)

// Price band boundaries for the search document wording.
const (
	budgetCeil     = 1000
	affordableCeil = 3000
	midRangeCeil   = 5000
	premiumCeil    = 8000
)

// BuildSearchDoc builds the weighted search document for an item: core fields
// repeated three times, key attributes twice, secondary attributes once. The
// repetition weights both lexical term frequency and the embedding input
// toward the fields that matter most.
func BuildSearchDoc(it *domain.Item) string {
	core := nonEmpty(
		it.Name,
		it.Description,
		strings.TrimSpace(it.Category.String()+" "+it.Brand.String()),
	)

	var key []string
	for _, kv := range []struct {
		label string
		attr  domain.Attr
	}{
		{"color", it.Color},
		{"material", it.Material},
		{"occasion", it.Occasion},
		{"for", it.AgeGroup},
	} {
		if kv.attr.Known() {
			key = append(key, kv.label+": "+kv.attr.String())
		}
	}

	var secondary []string
	if it.Size.Known() {
		secondary = append(secondary, "size "+it.Size.String())
	}
	if band := PriceBand(it.Price); band != "" {
		secondary = append(secondary, "price range: "+band)
	}

	parts := make([]string, 0, 3*len(core)+2*len(key)+len(secondary))
	for i := 0; i < 3; i++ {
		parts = append(parts, core...)
	}
	for i := 0; i < 2; i++ {
		parts = append(parts, key...)
	}
	parts = append(parts, secondary...)
	return strings.Join(parts, " ")
}

// PriceBand maps a price to its descriptive range; "" for unknown prices.
func PriceBand(price float64) string {
	switch {
	case price <= 0:
		return ""
	case price < budgetCeil:
		return "budget"
	case price < affordableCeil:
		return "affordable"
	case price < midRangeCeil:
		return "mid-range"
	case price < premiumCeil:
		return "premium"
	default:
		return "luxury"
	}
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
