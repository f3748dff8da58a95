package textproc

import (
	"sort"
	"strconv"
	"strings"
)

// Gram is an n-gram and how often it occurs.
type Gram struct {
	Text  string
	Count int
}

// Ngrams counts contiguous windows of n tokens within each document.
// Windows never cross document boundaries.
func Ngrams(docs [][]string, n int) map[string]int {
	out := map[string]int{}
	if n < 1 {
		return out
	}
	for _, toks := range docs {
		for i := 0; i+n <= len(toks); i++ {
			out[strings.Join(toks[i:i+n], " ")]++
		}
	}
	return out
}

// Top returns the k most frequent entries, ties broken alphabetically.
// k <= 0 returns all entries.
func Top(counts map[string]int, k int) []Gram {
	out := make([]Gram, 0, len(counts))
	for t, c := range counts {
		out = append(out, Gram{Text: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// NgramName is the display name of n-grams of size n.
func NgramName(n int) string {
	switch n {
	case 1:
		return "Unigrams"
	case 2:
		return "Bigrams"
	case 3:
		return "Trigrams"
	}
	return strconv.Itoa(n) + "-grams"
}
