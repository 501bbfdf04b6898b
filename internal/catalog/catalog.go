// Package catalog owns the per-process catalog snapshot: the immutable item
// set, its facet vocabulary, median price, corpus fingerprint, and lexical
// index. A snapshot is built once per catalog load; a reload builds a fresh
// snapshot and swaps it in whole, so readers never observe a partial rebuild.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/lexical"
)

// Snapshot is one immutable view of the catalog.
type Snapshot struct {
	Items       []domain.Item
	Vocab       domain.Vocabulary
	MedianPrice float64
	Fingerprint string
	Lexical     *lexical.Index

	byID map[string]int
}

// BuildSnapshot derives the vocabulary, median price, fingerprint, and
// lexical index for the given items. Items must already carry their search
// documents; embeddings may be attached before or after.
func BuildSnapshot(items []domain.Item) *Snapshot {
	docs := make([]string, len(items))
	byID := make(map[string]int, len(items))
	for i := range items {
		docs[i] = items[i].SearchDoc
		byID[items[i].ID] = i
	}

	return &Snapshot{
		Items:       items,
		Vocab:       buildVocabulary(items),
		MedianPrice: medianPrice(items),
		Fingerprint: domain.Fingerprint(items),
		Lexical:     lexical.NewIndex(docs),
		byID:        byID,
	}
}

// ItemByID returns the item with the given id.
func (s *Snapshot) ItemByID(id string) (*domain.Item, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.Items[idx], true
}

// Catalog hands out the current snapshot. Replace is the single writer; all
// readers work against whichever snapshot they grabbed, so a reload never
// mutates state under a running request.
type Catalog struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// New creates a catalog with an initial snapshot.
func New(snap *Snapshot) *Catalog {
	return &Catalog{snap: snap}
}

// Snapshot returns the current catalog snapshot.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Len returns the number of items in the current snapshot.
func (c *Catalog) Len() int {
	snap := c.Snapshot()
	if snap == nil {
		return 0
	}
	return len(snap.Items)
}

// Replace atomically swaps in a new snapshot.
func (c *Catalog) Replace(snap *Snapshot) {
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
}

func buildVocabulary(items []domain.Item) domain.Vocabulary {
	return domain.Vocabulary{
		Categories: uniqueLower(items, func(it *domain.Item) string { return it.Category.String() }),
		Brands:     uniqueLower(items, func(it *domain.Item) string { return it.Brand.String() }),
		Colors:     uniqueLower(items, func(it *domain.Item) string { return it.Color.String() }),
		Materials:  uniqueLower(items, func(it *domain.Item) string { return it.Material.String() }),
		Occasions:  uniqueLower(items, func(it *domain.Item) string { return it.Occasion.String() }),
		AgeGroups:  uniqueLower(items, func(it *domain.Item) string { return it.AgeGroup.String() }),
		Sizes:      uniqueLower(items, func(it *domain.Item) string { return it.Size.String() }),
	}
}

func uniqueLower(items []domain.Item, field func(*domain.Item) string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for i := range items {
		v := strings.ToLower(strings.TrimSpace(field(&items[i])))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func medianPrice(items []domain.Item) float64 {
	prices := make([]float64, 0, len(items))
	for i := range items {
		if items[i].HasPrice() {
			prices = append(prices, items[i].Price)
		}
	}
	if len(prices) == 0 {
		return 0
	}
	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		return (prices[mid-1] + prices[mid]) / 2
	}
	return prices[mid]
}
