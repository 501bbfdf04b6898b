// Package lexical builds per-corpus term statistics and scores documents
// against query tokens with TF-IDF, BM25, and fuzzy token matching. The index
// is built once per catalog snapshot; scoring functions are pure reads and
// safe to call concurrently.
package lexical

import (
	"math"
	"strings"

	"github.com/vasupatel610/retailrank/internal/domain/taxonomy"
)

// BM25 free parameters (standard values).
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Fuzzy matching thresholds.
const (
	minFuzzyWordLen = 3
	minPrefixLen    = 3
)

type docStats struct {
	text   string
	words  []string
	tf     map[string]int
	length int
}

// Index holds document frequency and length statistics for one corpus.
type Index struct {
	docs      []docStats
	df        map[string]int
	avgDocLen float64
}

// NewIndex builds the index from already-normalized search documents, in
// catalog order. Must be rebuilt whenever the item set changes.
func NewIndex(docs []string) *Index {
	idx := &Index{
		docs: make([]docStats, len(docs)),
		df:   make(map[string]int),
	}

	var totalLen int
	for i, doc := range docs {
		words := strings.Fields(doc)
		tf := make(map[string]int, len(words))
		for _, w := range words {
			tf[w]++
		}
		for term := range tf {
			idx.df[term]++
		}
		idx.docs[i] = docStats{text: doc, words: words, tf: tf, length: len(words)}
		totalLen += len(words)
	}
	if len(docs) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(docs))
	}
	return idx
}

// Len returns the number of indexed documents.
func (x *Index) Len() int { return len(x.docs) }

// AvgDocLength returns the mean document length in tokens.
func (x *Index) AvgDocLength() float64 { return x.avgDocLen }

// DocFreq returns the number of documents containing the term.
func (x *Index) DocFreq(term string) int { return x.df[term] }

// Tokenize normalizes a query and splits it into scoring tokens, using the
// same canonicalization the documents were indexed with.
func Tokenize(query string) []string {
	return taxonomy.Tokenize(query)
}

// Score scores one document against the query tokens with the given method.
// Out-of-range documents and empty queries score 0.
func (x *Index) Score(doc int, tokens []string, m Method) float64 {
	if doc < 0 || doc >= len(x.docs) || len(tokens) == 0 {
		return 0
	}
	d := &x.docs[doc]
	switch m {
	case TFIDF:
		return x.tfidf(d, tokens)
	case BM25:
		return x.bm25(d, tokens)
	case Fuzzy:
		return x.fuzzy(d, tokens)
	default:
		return (x.tfidf(d, tokens) + x.bm25(d, tokens) + x.fuzzy(d, tokens)) / 3
	}
}

// tfidf sums length-normalized term frequency times inverse document
// frequency over the query tokens.
func (x *Index) tfidf(d *docStats, tokens []string) float64 {
	if d.length == 0 {
		return 0
	}
	var score float64
	for _, t := range tokens {
		tf := d.tf[t]
		if tf == 0 {
			continue
		}
		score += (float64(tf) / float64(d.length)) * x.idf(t)
	}
	return score
}

// bm25 applies the standard saturating term-frequency weighting with the
// corpus's average document length.
func (x *Index) bm25(d *docStats, tokens []string) float64 {
	if d.length == 0 || x.avgDocLen == 0 {
		return 0
	}
	var score float64
	lenNorm := 1 - bm25B + bm25B*float64(d.length)/x.avgDocLen
	for _, t := range tokens {
		tf := float64(d.tf[t])
		if tf == 0 {
			continue
		}
		score += x.idf(t) * (tf * (bm25K1 + 1)) / (tf + bm25K1*lenNorm)
	}
	return score
}

// fuzzy scores each query token by the best of substring containment (1.0),
// prefix containment (0.9), and normalized edit-distance similarity against
// every document word of at least minFuzzyWordLen characters, then averages
// over the query tokens.
func (x *Index) fuzzy(d *docStats, tokens []string) float64 {
	var sum float64
	for _, t := range tokens {
		sum += fuzzyToken(d, t)
	}
	return sum / float64(len(tokens))
}

func fuzzyToken(d *docStats, token string) float64 {
	if strings.Contains(d.text, token) {
		return 1.0
	}
	if len(token) > minPrefixLen {
		prefix := token[:maxInt(minPrefixLen, len(token)*2/3)]
		if strings.Contains(d.text, prefix) {
			return 0.9
		}
	}
	var best float64
	for _, w := range d.words {
		if len(w) < minFuzzyWordLen {
			continue
		}
		if sim := editSimilarity(token, w); sim > best {
			best = sim
		}
	}
	return best
}

func (x *Index) idf(term string) float64 {
	return math.Log(float64(len(x.docs)+1) / float64(x.df[term]+1))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
