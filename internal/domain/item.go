package domain

import "strings"

// Attr is an optional string attribute. Absence (never loaded, blank in the
// source record) is distinct from any concrete value, so similarity functions
// can treat "unknown" differently from a real value.
type Attr struct {
	value string
	known bool
}

// NewAttr creates an attribute from a raw string. Blank strings map to the
// unknown attribute.
func NewAttr(s string) Attr {
	s = strings.TrimSpace(s)
	if s == "" {
		return Attr{}
	}
	return Attr{value: s, known: true}
}

// Get returns the value and whether it is known.
func (a Attr) Get() (string, bool) { return a.value, a.known }

// Known reports whether the attribute has a value.
func (a Attr) Known() bool { return a.known }

// Norm returns the lower-cased trimmed value, or "" when unknown.
func (a Attr) Norm() string {
	if !a.known {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(a.value))
}

// Equals reports whether both attributes are known and equal after folding.
func (a Attr) Equals(b Attr) bool {
	return a.known && b.known && a.Norm() == b.Norm()
}

// String returns the raw value ("" when unknown).
func (a Attr) String() string { return a.value }

// Item is an immutable catalog entry. Items are loaded once per catalog
// snapshot and treated as read-only by every scoring path; Embedding is
// populated by the embedding cache before search or recommendation runs.
type Item struct {
	ID          string
	Name        string
	Category    Attr
	Brand       Attr
	Size        Attr
	Color       Attr
	Material    Attr
	Occasion    Attr
	AgeGroup    Attr
	Description string
	ListedPrice float64
	Price       float64 // final price; <= 0 means unknown
	InStock     bool
	ImageURL    string
	SearchDoc   string // normalized weighted field concatenation, lexical input
	Embedding   []float32
}

// HasPrice reports whether the final price is known.
func (it *Item) HasPrice() bool { return it.Price > 0 }

// Vocabulary holds the per-facet lists of known lower-cased values, built from
// catalog contents at load time and consumed by the facet parser.
type Vocabulary struct {
	Categories []string
	Brands     []string
	Colors     []string
	Materials  []string
	Occasions  []string
	AgeGroups  []string
	Sizes      []string
}

// HasBrand reports whether the token is a known brand.
func (v Vocabulary) HasBrand(token string) bool { return contains(v.Brands, token) }

// HasCategory reports whether the token is a known category.
func (v Vocabulary) HasCategory(token string) bool { return contains(v.Categories, token) }

func contains(list []string, token string) bool {
	for _, s := range list {
		if s == token {
			return true
		}
	}
	return false
}
