package query

import (
	"fmt"
	"strings"

	"github.com/vasupatel610/retailrank/internal/lexical"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 1024
	DefaultTopK    = 10
	MaxTopK        = 100

	// DefaultSemanticWeight and DefaultLexicalWeight are the hybrid blend
	// used when the caller supplies no weights.
	DefaultSemanticWeight = 0.7
	DefaultLexicalWeight  = 0.3

	// DefaultMinScore drops candidates below this blended score.
	DefaultMinScore = 0.1

	// Candidate pool sizing: poolFactor*topK, never below poolFloor.
	poolFactor = 15
	poolFloor  = 150
)

// Query is a validated hybrid search request.
type Query struct {
	text             string
	topK             int
	semanticWeight   float64
	lexicalWeight    float64
	method           lexical.Method
	facetsEnabled    bool
	minScore         float64
	earlyTermination bool
	adaptive         bool
}

// Params carries the raw, unvalidated search parameters.
// Zero values select defaults: topK=10, weights 0.7/0.3, method=combined,
// minScore=0.1. Facets and early termination are enabled unless disabled.
type Params struct {
	TopK                    int
	SemanticWeight          float64
	LexicalWeight           float64
	Method                  lexical.Method
	DisableFacets           bool
	MinScore                float64
	DisableEarlyTermination bool
	Adaptive                bool

	// DefaultTopK and MaxTopK replace the package limits when positive,
	// letting deployments configure their own bounds.
	DefaultTopK int
	MaxTopK     int
}

// New validates and normalizes search parameters.
func New(text string, p Params) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, fmt.Errorf("query is required")
	}
	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}

	defTopK, maxTopK := p.DefaultTopK, p.MaxTopK
	if defTopK <= 0 {
		defTopK = DefaultTopK
	}
	if maxTopK <= 0 {
		maxTopK = MaxTopK
	}
	topK := p.TopK
	if topK <= 0 {
		topK = defTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	semW, lexW := p.SemanticWeight, p.LexicalWeight
	if semW == 0 && lexW == 0 {
		semW, lexW = DefaultSemanticWeight, DefaultLexicalWeight
	}
	if semW < 0 || lexW < 0 {
		return Query{}, fmt.Errorf("weights must be non-negative")
	}
	if semW+lexW == 0 {
		return Query{}, fmt.Errorf("at least one weight must be positive")
	}

	m := p.Method
	if m == "" {
		m = lexical.Combined
	}
	if !m.IsValid() {
		return Query{}, fmt.Errorf("invalid lexical method: %q", m)
	}

	minScore := p.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}
	if minScore < 0 || minScore > 1 {
		return Query{}, fmt.Errorf("min_score must be between 0 and 1")
	}

	return Query{
		text:             text,
		topK:             topK,
		semanticWeight:   semW,
		lexicalWeight:    lexW,
		method:           m,
		facetsEnabled:    !p.DisableFacets,
		minScore:         minScore,
		earlyTermination: !p.DisableEarlyTermination,
		adaptive:         p.Adaptive,
	}, nil
}

// Text returns the search query text.
func (q *Query) Text() string { return q.text }

// TopK returns the number of results to return.
func (q *Query) TopK() int { return q.topK }

// SemanticWeight returns the semantic component weight.
func (q *Query) SemanticWeight() float64 { return q.semanticWeight }

// LexicalWeight returns the lexical component weight.
func (q *Query) LexicalWeight() float64 { return q.lexicalWeight }

// Method returns the lexical scoring method.
func (q *Query) Method() lexical.Method { return q.method }

// FacetsEnabled reports whether facet extraction and pre-filtering run.
func (q *Query) FacetsEnabled() bool { return q.facetsEnabled }

// MinScore returns the minimum blended score threshold.
func (q *Query) MinScore() float64 { return q.minScore }

// EarlyTermination reports whether scoring may stop once enough
// high-confidence candidates are collected.
func (q *Query) EarlyTermination() bool { return q.earlyTermination }

// Adaptive reports whether the lexical-only fast path may be taken.
func (q *Query) Adaptive() bool { return q.adaptive }

// CandidatePool returns the lexical pre-ranking pool size for this query.
func (q *Query) CandidatePool() int {
	if n := poolFactor * q.topK; n > poolFloor {
		return n
	}
	return poolFloor
}
