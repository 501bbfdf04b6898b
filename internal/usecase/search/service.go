// Package search implements hybrid catalog search: a lexical pre-ranking pass
// narrows the corpus to a candidate pool, the query embedding scores that pool
// semantically, and the two signals blend into one ranked list.
package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/vasupatel610/retailrank/internal/catalog"
	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/facet"
	"github.com/vasupatel610/retailrank/internal/domain/search/query"
	"github.com/vasupatel610/retailrank/internal/domain/search/result"
	"github.com/vasupatel610/retailrank/internal/domain/similarity"
	"github.com/vasupatel610/retailrank/internal/lexical"
)

// Business boosts applied after score fusion.
const (
	inStockBoost   = 0.2
	nearMedianBand = 0.1
	priceBoost     = 0.1

	// lexicalScale maps raw lexical scores into the 0-1 range before blending.
	lexicalScale = 10.0
)

// Service ranks catalog items for free-text queries.
type Service struct {
	catalog CatalogReader
	embed   Embedder
}

// New creates a search service.
func New(cat CatalogReader, embed Embedder) *Service {
	return &Service{catalog: cat, embed: embed}
}

// candidate pairs a corpus position with its raw lexical score.
type candidate struct {
	idx     int
	lexical float64
}

// Search runs the hybrid ranking pipeline. An empty candidate pool (all items
// excluded by facets) yields an empty result, not an error.
func (s *Service) Search(ctx context.Context, q *query.Query) ([]result.Result, error) {
	snap := s.catalog.Snapshot()
	if snap == nil || len(snap.Items) == 0 {
		return nil, nil
	}

	tokens := lexical.Tokenize(q.Text())

	candidates := s.prefilter(snap, q, tokens)
	if len(candidates) == 0 {
		return nil, nil
	}

	if q.Adaptive() && isSimpleQuery(tokens, snap.Vocab) {
		return lexicalOnly(snap, candidates, q), nil
	}

	emb, err := s.embed.Embed(ctx, q.Text())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	scored := fuse(snap, candidates, emb.Embedding, q)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore() > scored[j].FinalScore()
	})

	// Early termination: keep only high-confidence hits, but never shrink
	// the list below topK by doing so.
	if q.EarlyTermination() {
		confident := 0
		for _, r := range scored {
			if r.FinalScore() >= q.MinScore() {
				confident++
			}
		}
		if confident >= q.TopK() {
			scored = scored[:confident]
		}
	}

	if len(scored) > q.TopK() {
		scored = scored[:q.TopK()]
	}
	return scored, nil
}

// prefilter applies facet filtering and lexical pre-ranking, returning at most
// CandidatePool corpus positions ordered by raw lexical score.
func (s *Service) prefilter(snap *catalog.Snapshot, q *query.Query, tokens []string) []candidate {
	var facets facet.Set
	if q.FacetsEnabled() {
		facets = facet.Parse(q.Text(), snap.Vocab)
	}

	candidates := make([]candidate, 0, len(snap.Items))
	for i := range snap.Items {
		if q.FacetsEnabled() && !facets.Matches(&snap.Items[i]) {
			continue
		}
		candidates = append(candidates, candidate{
			idx:     i,
			lexical: snap.Lexical.Score(i, tokens, q.Method()),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].lexical > candidates[j].lexical
	})
	if pool := q.CandidatePool(); len(candidates) > pool {
		candidates = candidates[:pool]
	}
	return candidates
}

// fuse blends semantic and lexical scores and applies business boosts.
func fuse(snap *catalog.Snapshot, candidates []candidate, queryVec []float32, q *query.Query) []result.Result {
	scored := make([]result.Result, 0, len(candidates))
	for _, c := range candidates {
		it := snap.Items[c.idx]

		semantic := similarity.Cosine(queryVec, it.Embedding)
		normalizedSemantic := math.Max(0, semantic)
		normalizedLexical := math.Max(0, math.Min(1, c.lexical/lexicalScale))

		final := q.SemanticWeight()*normalizedSemantic + q.LexicalWeight()*normalizedLexical
		final += boost(&it, snap.MedianPrice)

		scored = append(scored, result.New(it, semantic, c.lexical, final))
	}
	return scored
}

// lexicalOnly is the adaptive fast path: rank by raw lexical score, skipping
// the embedding call entirely.
func lexicalOnly(snap *catalog.Snapshot, candidates []candidate, q *query.Query) []result.Result {
	scored := make([]result.Result, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, result.New(snap.Items[c.idx], 0, c.lexical, c.lexical))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore() > scored[j].FinalScore()
	})
	if len(scored) > q.TopK() {
		scored = scored[:q.TopK()]
	}
	return scored
}

// boost returns the business adjustment for an item: in-stock items and items
// priced within 10% of the catalog median rank higher.
func boost(it *domain.Item, medianPrice float64) float64 {
	b := 0.0
	if it.InStock {
		b += inStockBoost
	}
	if medianPrice > 0 && it.HasPrice() {
		if math.Abs(it.Price-medianPrice) <= nearMedianBand*medianPrice {
			b += priceBoost
		}
	}
	return b
}

// isSimpleQuery reports whether the query is specific enough that lexical
// matching alone is reliable: very short queries or ones naming a known brand
// or category.
func isSimpleQuery(tokens []string, vocab domain.Vocabulary) bool {
	if len(tokens) <= 2 {
		for _, t := range tokens {
			if len(t) <= 4 {
				return true
			}
		}
	}
	for _, t := range tokens {
		if vocab.HasBrand(t) || vocab.HasCategory(t) {
			return true
		}
	}
	return false
}
