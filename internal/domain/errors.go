package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound signals an unknown base item id. Recommendation calls
	// fail fast on it rather than substituting another item.
	ErrItemNotFound = errors.New("item not found")
	// ErrProviderUnavailable signals an embedding provider failure or timeout.
	// Retryable at the caller's discretion; never corrupts the cache.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")
	// ErrCacheCorrupt signals a persisted embedding cache whose vector count or
	// dimensionality disagrees with the catalog. Recoverable by recomputation.
	ErrCacheCorrupt = errors.New("embedding cache corrupt")
	// ErrInvalidWeights signals a caller-supplied weight override with missing
	// keys or non-finite values. Rejects the single call only.
	ErrInvalidWeights = errors.New("invalid weights")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)

// InvalidWeightsError wraps ErrInvalidWeights with the offending field.
type InvalidWeightsError struct {
	Field  string
	Reason string
}

func (e *InvalidWeightsError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidWeights.Error(), e.Field, e.Reason)
}

func (e *InvalidWeightsError) Unwrap() error { return ErrInvalidWeights }

// NewInvalidWeights creates an invalid weights error for one field.
func NewInvalidWeights(field, reason string) error {
	return &InvalidWeightsError{Field: field, Reason: reason}
}
