// Package embcache owns the persisted mapping from corpus fingerprint to the
// catalog's embedding vectors. On a fingerprint hit the vectors load straight
// from the store; on a miss or a corrupt entry the corpus is re-embedded
// through the provider and the cache rewritten under the new fingerprint.
package embcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vasupatel610/retailrank/internal/db"
	"github.com/vasupatel610/retailrank/internal/domain"
)

const (
	keyPrefix = "retailrank:emb_cache:"

	// DefaultBatchSize is the corpus embedding batch size.
	DefaultBatchSize = 32
)

type meta struct {
	IDs []string `json:"ids"`
	Dim int      `json:"dim"`
}

// Cache loads and persists corpus embeddings keyed by fingerprint.
type Cache struct {
	store      db.KV
	batchSize  int
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates an embedding cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(store db.KV, batchSize int, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Cache{store: store, batchSize: batchSize, cacheTotal: cacheTotal, logger: logger}
}

// EnsureEmbeddings attaches a semantic vector to every item. Cached vectors
// are used when the corpus fingerprint matches and the entry is consistent;
// otherwise the corpus is re-embedded and the cache rewritten. Idempotent:
// repeated calls with the same fingerprint and provider yield identical
// vectors.
func (c *Cache) EnsureEmbeddings(
	ctx context.Context, items []domain.Item, provider domain.Embedder,
) ([]domain.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	fingerprint := domain.Fingerprint(items)

	vectors, err := c.load(ctx, fingerprint, items)
	switch {
	case err == nil:
		c.incCache("hit")
		return attach(items, vectors), nil
	case errors.Is(err, domain.ErrCacheCorrupt):
		// Recoverable: discard and recompute.
		c.logger.Warn("Discarding corrupt embedding cache",
			zap.String("fingerprint", fingerprint), zap.Error(err))
	case !errors.Is(err, db.ErrKeyNotFound):
		c.logger.Warn("Failed to read embedding cache",
			zap.String("fingerprint", fingerprint), zap.Error(err))
	}
	c.incCache("miss")

	vectors, err = c.embedCorpus(ctx, items, provider)
	if err != nil {
		return nil, err
	}

	c.persist(ctx, fingerprint, items, vectors)
	return attach(items, vectors), nil
}

// load reads and validates the cache entry for the fingerprint. Count or
// dimensionality disagreement surfaces as domain.ErrCacheCorrupt.
func (c *Cache) load(ctx context.Context, fingerprint string, items []domain.Item) ([][]float32, error) {
	metaRaw, err := c.store.Get(ctx, metaKey(fingerprint))
	if err != nil {
		return nil, fmt.Errorf("get cache meta: %w", err)
	}
	var m meta
	if err := json.Unmarshal(metaRaw, &m); err != nil {
		return nil, fmt.Errorf("%w: parse meta: %w", domain.ErrCacheCorrupt, err)
	}
	if len(m.IDs) != len(items) || m.Dim <= 0 {
		return nil, fmt.Errorf("%w: cached %d vectors of dim %d for %d items",
			domain.ErrCacheCorrupt, len(m.IDs), m.Dim, len(items))
	}
	for i := range items {
		if m.IDs[i] != items[i].ID {
			return nil, fmt.Errorf("%w: item order mismatch at %d", domain.ErrCacheCorrupt, i)
		}
	}

	buf, err := c.store.Get(ctx, vectorsKey(fingerprint))
	if err != nil {
		return nil, fmt.Errorf("get cache vectors: %w", err)
	}
	if len(buf) != len(items)*m.Dim*4 {
		return nil, fmt.Errorf("%w: vector buffer is %d bytes, want %d",
			domain.ErrCacheCorrupt, len(buf), len(items)*m.Dim*4)
	}

	vectors := make([][]float32, len(items))
	for i := range vectors {
		vec, err := bytesToVector(buf[i*m.Dim*4 : (i+1)*m.Dim*4])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCacheCorrupt, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// embedCorpus runs the items through the provider in fixed-size batches,
// falling back to one-at-a-time calls when a batch invocation fails.
func (c *Cache) embedCorpus(
	ctx context.Context, items []domain.Item, provider domain.Embedder,
) ([][]float32, error) {
	vectors := make([][]float32, 0, len(items))
	dim := 0

	for start := 0; start < len(items); start += c.batchSize {
		end := start + c.batchSize
		if end > len(items) {
			end = len(items)
		}
		texts := make([]string, 0, end-start)
		for _, it := range items[start:end] {
			texts = append(texts, it.SearchDoc)
		}

		batch, err := c.embedBatch(ctx, provider, texts)
		if err != nil {
			return nil, fmt.Errorf("embed corpus batch [%d:%d]: %w", start, end, err)
		}
		if len(batch.Embeddings) != len(texts) {
			return nil, fmt.Errorf("%w: provider returned %d vectors for %d texts",
				domain.ErrVectorDimMismatch, len(batch.Embeddings), len(texts))
		}
		for _, vec := range batch.Embeddings {
			if dim == 0 {
				dim = len(vec)
			}
			if len(vec) != dim {
				return nil, fmt.Errorf("%w: got dim %d, want %d",
					domain.ErrVectorDimMismatch, len(vec), dim)
			}
			vectors = append(vectors, vec)
		}

		c.logger.Debug("Embedded corpus batch",
			zap.Int("done", end), zap.Int("total", len(items)))
	}
	return vectors, nil
}

func (c *Cache) embedBatch(
	ctx context.Context, provider domain.Embedder, texts []string,
) (domain.BatchEmbeddingResult, error) {
	if be, ok := provider.(domain.BatchEmbedder); ok {
		res, err := be.BatchEmbed(ctx, texts)
		if err == nil {
			return res, nil
		}
		c.logger.Warn("Batch embedding failed, falling back to per-item calls", zap.Error(err))
	}
	return domain.BatchFallback(ctx, provider, texts)
}

// persist writes the cache entry. Failures are logged, not surfaced: the
// computed vectors are valid regardless of whether they were cached.
func (c *Cache) persist(ctx context.Context, fingerprint string, items []domain.Item, vectors [][]float32) {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}

	metaRaw, err := json.Marshal(meta{IDs: ids, Dim: dim})
	if err != nil {
		c.logger.Warn("Failed to encode embedding cache meta", zap.Error(err))
		return
	}

	buf := make([]byte, 0, len(vectors)*dim*4)
	for _, vec := range vectors {
		buf = append(buf, vectorToBytes(vec)...)
	}

	// Vectors first: a meta entry without vectors reads as corrupt and
	// triggers recomputation.
	if err := c.store.Set(ctx, vectorsKey(fingerprint), buf); err != nil {
		c.logger.Warn("Failed to persist embedding vectors", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, metaKey(fingerprint), metaRaw); err != nil {
		c.logger.Warn("Failed to persist embedding cache meta", zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func attach(items []domain.Item, vectors [][]float32) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	for i := range out {
		out[i].Embedding = vectors[i]
	}
	return out
}

func metaKey(fingerprint string) string    { return keyPrefix + fingerprint + ":meta" }
func vectorsKey(fingerprint string) string { return keyPrefix + fingerprint + ":vectors" }
