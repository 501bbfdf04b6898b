package result

import "github.com/vasupatel610/retailrank/internal/domain"

// Result is a single ranked search hit with its score breakdown.
type Result struct {
	item          domain.Item
	semanticScore float64
	lexicalScore  float64
	finalScore    float64
}

// New creates a search result.
func New(item domain.Item, semanticScore, lexicalScore, finalScore float64) Result {
	return Result{
		item:          item,
		semanticScore: semanticScore,
		lexicalScore:  lexicalScore,
		finalScore:    finalScore,
	}
}

// Item returns the matched catalog item.
func (r *Result) Item() domain.Item { return r.item }

// SemanticScore returns the cosine similarity component.
func (r *Result) SemanticScore() float64 { return r.semanticScore }

// LexicalScore returns the normalized lexical component.
func (r *Result) LexicalScore() float64 { return r.lexicalScore }

// FinalScore returns the blended score after business boosts.
func (r *Result) FinalScore() float64 { return r.finalScore }
