package heuristic

import "github.com/vasupatel610/retailrank/internal/catalog"

// CatalogReader provides the current catalog snapshot.
type CatalogReader interface {
	Snapshot() *catalog.Snapshot
}
