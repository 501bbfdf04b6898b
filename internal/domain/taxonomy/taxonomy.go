// Package taxonomy holds the controlled vocabulary of the fashion catalog:
// canonical color/material names, synonym maps, and the static compatibility
// tables the similarity functions score against. All sets are finite and
// deterministic; similarity stays a pure function of its inputs.
package taxonomy

// Colors is the canonical color list used for facet extraction.
var Colors = []string{
	"black", "white", "gray", "red", "yellow", "green", "blue", "purple", "pink", "brown",
}

// ColorSynonyms maps shade names to their canonical color.
var ColorSynonyms = map[string]string{
	"navy": "blue", "cobalt": "blue", "azure": "blue", "sky": "blue", "indigo": "blue",
	"turquoise": "blue", "teal": "blue",
	"crimson": "red", "scarlet": "red", "maroon": "red", "burgundy": "red",
	"grey": "gray", "charcoal": "gray", "silver": "gray",
	"fuchsia": "pink", "magenta": "pink", "coral": "pink",
	"beige": "brown", "khaki": "brown", "tan": "brown", "camel": "brown",
	"offwhite": "white", "ivory": "white", "cream": "white",
	"mint": "green", "olive": "green",
	"lavender": "purple",
}

// ComplementaryColors lists color pairings that work well in outfits.
var ComplementaryColors = map[string][]string{
	"red":    {"green"},
	"blue":   {"yellow"},
	"yellow": {"blue"},
	"green":  {"red"},
	"purple": {"yellow"},
	"pink":   {"green"},
}

// AnalogousColors lists adjacent colors on the harmony wheel.
var AnalogousColors = map[string][]string{
	"red":    {"pink", "brown"},
	"blue":   {"purple", "green"},
	"yellow": {"green", "brown"},
	"green":  {"blue", "yellow"},
	"purple": {"blue", "pink"},
	"pink":   {"red", "purple"},
	"brown":  {"red", "yellow"},
	"gray":   {"blue", "purple"},
	"black":  {"gray", "white"},
	"white":  {"gray", "black"},
}

// NeutralColors pair acceptably with each other.
var NeutralColors = []string{"black", "white", "gray", "brown"}

// MaterialSynonyms canonicalizes fabric names to materials present in the catalog.
// denim stays denim: the catalog carries it as its own material.
var MaterialSynonyms = map[string]string{
	"chiffon": "polyester", "viscose": "polyester", "rayon": "polyester",
	"jersey": "cotton", "corduroy": "cotton", "flannel": "cotton",
	"leatherette": "synthetic", "pleather": "synthetic",
	"faux leather": "synthetic", "pu leather": "synthetic",
	"nylon": "synthetic", "spandex": "synthetic", "lycra": "synthetic",
	"velvet": "silk", "satin": "silk",
}

// OccasionMaterials lists materials appropriate for an occasion, used as
// context for material compatibility.
var OccasionMaterials = map[string][]string{
	"formal":  {"silk", "wool", "leather", "cotton"},
	"casual":  {"cotton", "denim", "polyester", "canvas"},
	"party":   {"silk", "synthetic", "metal", "leather"},
	"sports":  {"polyester", "synthetic", "cotton"},
	"winter":  {"wool", "leather", "synthetic"},
	"summer":  {"cotton", "linen", "silk", "canvas"},
	"premium": {"silk", "leather", "wool", "suede"},
	"durable": {"leather", "canvas", "denim", "polyester"},
}

// Material families for pairwise compatibility.
var (
	PremiumMaterials   = []string{"silk", "leather", "wool", "suede"}
	CasualMaterials    = []string{"cotton", "denim", "canvas"}
	SyntheticMaterials = []string{"polyester", "synthetic"}
)

// CompatibleOccasions lists occasions that pair for cross-recommendation.
var CompatibleOccasions = map[string][]string{
	"formal":  {"office", "party", "wedding"},
	"casual":  {"beach", "travel", "home"},
	"party":   {"festive", "wedding"},
	"sports":  {"gym", "travel", "casual"},
	"festive": {"wedding", "party"},
	"winter":  {"formal", "casual"},
	"beach":   {"summer", "casual", "travel"},
	"travel":  {"casual", "beach"},
	"home":    {"casual"},
}

// OccasionRule maps query phrasings to a canonical occasion.
type OccasionRule struct {
	Terms     []string
	Canonical string
}

// OccasionRules is checked in order; the first matching rule wins.
var OccasionRules = []OccasionRule{
	{Terms: []string{"formal", "office", "work"}, Canonical: "formal"},
	{Terms: []string{"party", "evening", "cocktail"}, Canonical: "party"},
	{Terms: []string{"casual", "everyday", "daily"}, Canonical: "casual"},
	{Terms: []string{"sport", "sports", "workout", "gym", "athleisure"}, Canonical: "sports"},
	{Terms: []string{"festive", "wedding", "ceremony"}, Canonical: "festive"},
	{Terms: []string{"beach", "summer", "vacation"}, Canonical: "beach"},
	{Terms: []string{"winter", "cold", "warm"}, Canonical: "winter"},
	{Terms: []string{"travel", "trip"}, Canonical: "travel"},
	{Terms: []string{"home", "house", "indoor"}, Canonical: "home"},
}

// ClothingSizes is the ordinal clothing size ladder, used for adjacency.
var ClothingSizes = []string{"xs", "s", "m", "l", "xl", "xxl"}

// SizeGroups buckets sizes per category so near sizes score as compatible.
var SizeGroups = map[string]map[string][]string{
	"clothing": {
		"small":  {"xs", "s"},
		"medium": {"m", "l"},
		"large":  {"xl", "xxl"},
	},
	"footwear": {
		"small":  {"5uk", "6uk", "7uk"},
		"medium": {"8uk", "9uk", "10uk"},
		"large":  {"11uk", "12uk"},
	},
	"accessories": {
		"onesize": {"one_size", "one size"},
	},
}

// OutfitCategories lists cross-category pairs that compose an outfit.
var OutfitCategories = map[string][]string{
	"clothing":    {"accessories", "footwear"},
	"footwear":    {"clothing", "accessories"},
	"accessories": {"clothing", "footwear"},
}

// CategoryGroup is a family of product types treated as close substitutes.
type CategoryGroup struct {
	Core    []string
	Related []string
}

// CategoryGroups maps the three top-level families to their product types.
var CategoryGroups = map[string]CategoryGroup{
	"footwear": {
		Core:    []string{"sandals", "slippers", "sneakers", "loafers", "boots", "heels"},
		Related: []string{"running shoes", "sports shoes"},
	},
	"clothing": {
		Core:    []string{"shirt", "t-shirt", "hoodie", "sweater", "jacket", "dress", "skirt"},
		Related: []string{"kurta", "saree", "jeans", "trousers"},
	},
	"accessories": {
		Core:    []string{"watch", "handbag", "wallet", "belt", "sunglasses"},
		Related: []string{"jewelry", "hat", "cap", "scarf", "backpack"},
	},
}

// StyleBuckets groups occasions by overall style, used for broad-exploration
// tiering.
var StyleBuckets = map[string][]string{
	"sporty":  {"sports", "gym", "casual", "athleisure"},
	"formal":  {"office", "formal", "wedding", "party"},
	"casual":  {"casual", "everyday", "beach", "travel"},
	"premium": {"luxury", "premium", "elegant"},
}

// Brand tiers. Fixed sets reproduced from catalog analysis; same-tier brands
// score as related even when not identical.
var (
	LuxuryBrands     = []string{"gucci", "ray-ban", "michael kors", "tommy hilfiger"}
	SportsBrands     = []string{"nike", "adidas", "puma", "reebok"}
	CasualBrands     = []string{"zara", "h&m", "levis"}
	AffordableBrands = []string{"bata", "fossil"}
)

// In reports whether s is in the list.
func In(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
