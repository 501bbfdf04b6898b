// Package purpose defines the closed set of recommendation intents. Each
// purpose maps through an explicit table to its weight profile; there is no
// string-keyed dispatch at scoring time.
package purpose

import "fmt"

// Purpose is the recommendation intent.
type Purpose string

// Supported purposes.
const (
	// Similar favors semantic and category similarity.
	Similar Purpose = "similar"
	// Outfit favors color harmony and cross-category pairing.
	Outfit Purpose = "outfit"
	// Occasion favors occasion and material appropriateness.
	Occasion Purpose = "occasion"
	// Brand favors brand consistency.
	Brand Purpose = "brand"
	// Budget favors price compatibility.
	Budget Purpose = "budget"
)

// IsValid checks if the purpose is one of the supported values.
func (p Purpose) IsValid() bool {
	switch p {
	case Similar, Outfit, Occasion, Brand, Budget:
		return true
	}
	return false
}

// Parse converts a string to a Purpose. Empty defaults to Similar.
func Parse(s string) (Purpose, error) {
	if s == "" {
		return Similar, nil
	}
	p := Purpose(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid purpose %q (valid: similar, outfit, occasion, brand, budget)", s)
	}
	return p, nil
}
