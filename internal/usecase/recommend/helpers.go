package recommend

import (
	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/purpose"
)

// Purpose-specific entry points. Each delegates to Recommend with the
// matching weight profile and context.

// Outfit recommends items that complete an outfit with the base item.
func (s *Service) Outfit(baseID string, topK int) ([]Recommendation, error) {
	return s.Recommend(baseID, Options{TopK: topK, Purpose: purpose.Outfit})
}

// ForOccasion recommends items suited to the given occasion.
func (s *Service) ForOccasion(baseID, occasion string, topK int) ([]Recommendation, error) {
	return s.Recommend(baseID, Options{
		TopK:    topK,
		Purpose: purpose.Occasion,
		Context: Context{Occasion: domain.NewAttr(occasion)},
	})
}

// SameBrand recommends items with strong brand affinity to the base item.
func (s *Service) SameBrand(baseID string, topK int) ([]Recommendation, error) {
	return s.Recommend(baseID, Options{TopK: topK, Purpose: purpose.Brand})
}

// InBudget recommends items whose price falls in the given range.
func (s *Service) InBudget(baseID string, budget Range, topK int) ([]Recommendation, error) {
	return s.Recommend(baseID, Options{
		TopK:    topK,
		Purpose: purpose.Budget,
		Context: Context{Budget: &budget},
	})
}
