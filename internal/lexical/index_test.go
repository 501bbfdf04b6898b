package lexical

import (
	"math"
	"testing"
)

func testIndex() *Index {
	return NewIndex([]string{
		"red cotton shirt",
		"blue denim jacket shirt",
		"leather boots",
	})
}

func TestNewIndex_Stats(t *testing.T) {
	idx := testIndex()

	if idx.Len() != 3 {
		t.Errorf("Len: got %d, want 3", idx.Len())
	}
	if got := idx.DocFreq("shirt"); got != 2 {
		t.Errorf("DocFreq(shirt): got %d, want 2", got)
	}
	if got := idx.DocFreq("red"); got != 1 {
		t.Errorf("DocFreq(red): got %d, want 1", got)
	}
	if got := idx.DocFreq("missing"); got != 0 {
		t.Errorf("DocFreq(missing): got %d, want 0", got)
	}
	want := (3.0 + 4.0 + 2.0) / 3.0
	if math.Abs(idx.AvgDocLength()-want) > 1e-9 {
		t.Errorf("AvgDocLength: got %f, want %f", idx.AvgDocLength(), want)
	}
}

func TestScore_TFIDF_Ordering(t *testing.T) {
	idx := testIndex()
	tokens := []string{"red", "shirt"}

	s0 := idx.Score(0, tokens, TFIDF)
	s1 := idx.Score(1, tokens, TFIDF)
	s2 := idx.Score(2, tokens, TFIDF)

	if !(s0 > s1) {
		t.Errorf("doc with both terms should outrank partial match: %f vs %f", s0, s1)
	}
	if !(s1 > 0) {
		t.Errorf("partial match should score positive, got %f", s1)
	}
	if s2 != 0 {
		t.Errorf("no-match doc should score 0, got %f", s2)
	}
}

func TestScore_BM25_Ordering(t *testing.T) {
	idx := NewIndex([]string{
		"shirt shirt cotton",
		"shirt denim jacket",
		"boots leather",
	})
	tokens := []string{"shirt"}

	s0 := idx.Score(0, tokens, BM25)
	s1 := idx.Score(1, tokens, BM25)
	s2 := idx.Score(2, tokens, BM25)

	if !(s0 > s1) {
		t.Errorf("repeated term should score higher: %f vs %f", s0, s1)
	}
	if s2 != 0 {
		t.Errorf("no-match doc should score 0, got %f", s2)
	}
}

func TestScore_Fuzzy(t *testing.T) {
	idx := testIndex()

	tests := []struct {
		name  string
		token string
		want  float64
	}{
		{"exact substring", "shirt", 1.0},
		{"prefix containment", "shirts", 0.9},
		{"edit distance", "shrt", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Score(0, []string{tt.token}, Fuzzy)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("fuzzy(%q): got %f, want %f", tt.token, got, tt.want)
			}
		})
	}
}

func TestScore_Combined_AveragesMethods(t *testing.T) {
	idx := testIndex()
	tokens := []string{"red", "shirt"}

	want := (idx.Score(0, tokens, TFIDF) + idx.Score(0, tokens, BM25) + idx.Score(0, tokens, Fuzzy)) / 3
	got := idx.Score(0, tokens, Combined)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("combined: got %f, want %f", got, want)
	}
}

func TestScore_Bounds(t *testing.T) {
	idx := testIndex()
	tokens := []string{"shirt"}

	if got := idx.Score(-1, tokens, Combined); got != 0 {
		t.Errorf("negative doc index: got %f, want 0", got)
	}
	if got := idx.Score(3, tokens, Combined); got != 0 {
		t.Errorf("out-of-range doc index: got %f, want 0", got)
	}
	if got := idx.Score(0, nil, Combined); got != 0 {
		t.Errorf("empty tokens: got %f, want 0", got)
	}
}

func TestTokenize_Canonicalizes(t *testing.T) {
	got := Tokenize("Crimson  Shirt")
	if len(got) != 2 || got[0] != "red" || got[1] != "shirt" {
		t.Errorf("Tokenize: got %v, want [red shirt]", got)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"", Combined, false},
		{"tfidf", TFIDF, false},
		{"BM25", BM25, false},
		{"fuzzy", Fuzzy, false},
		{"combined", Combined, false},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMethod(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMethod(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"ab", "b", 1},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q): got %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEditSimilarity(t *testing.T) {
	if got := editSimilarity("shirt", "shirt"); got != 1 {
		t.Errorf("equal strings: got %f, want 1", got)
	}
	if got := editSimilarity("", ""); got != 1 {
		t.Errorf("empty strings: got %f, want 1", got)
	}
	got := editSimilarity("shirt", "shrt")
	if math.Abs(got-0.8) > 1e-9 {
		t.Errorf("one edit over five chars: got %f, want 0.8", got)
	}
}
