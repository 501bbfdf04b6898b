package lexical

// editSimilarity returns 1 - levenshtein(a,b)/max(len(a),len(b)), a value in
// [0,1] where 1 means equal strings.
func editSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes edit distance with a single rolling row.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur := i
		diag := i - 1
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := diag + cost
			if v := prev[j] + 1; v < next {
				next = v
			}
			if v := cur + 1; v < next {
				next = v
			}
			diag = prev[j]
			prev[j-1] = cur
			cur = next
		}
		prev[len(b)] = cur
	}
	return prev[len(b)]
}
