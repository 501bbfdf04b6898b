package lexical

import (
	"fmt"
	"strings"
)

// Method selects the lexical scoring function.
type Method string

// Supported scoring methods.
const (
	TFIDF Method = "tfidf"
	BM25  Method = "bm25"
	Fuzzy Method = "fuzzy"
	// Combined averages the three methods.
	Combined Method = "combined"
)

// IsValid checks if the method is one of the supported values.
func (m Method) IsValid() bool {
	return m == TFIDF || m == BM25 || m == Fuzzy || m == Combined
}

// ParseMethod converts a string to a Method. Empty defaults to Combined.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return Combined, nil
	}
	m := Method(strings.ToLower(s))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid lexical method %q (valid: tfidf, bm25, fuzzy, combined)", s)
	}
	return m, nil
}
