package search

import (
	"context"

	"github.com/vasupatel610/retailrank/internal/catalog"
	"github.com/vasupatel610/retailrank/internal/domain"
)

// CatalogReader provides the current catalog snapshot.
type CatalogReader interface {
	Snapshot() *catalog.Snapshot
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
