package relevance

import (
	"strings"

	"github.com/gcbaptista/faq-assistant/internal/tokenizer"
)

// similarityWeights controls the word-overlap heuristic.
type similarityWeights struct {
	exact      float64
	partial    float64
	minWordLen int
}

var defaultSimilarity = similarityWeights{exact: 2, partial: 1, minWordLen: 3}

// containsTerm reports whether haystack contains needle. An empty needle never matches.
func containsTerm(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(haystack, needle)
}

// mutuallyContains reports whether either string contains the other.
func mutuallyContains(a, b string) bool {
	return containsTerm(a, b) || containsTerm(b, a)
}

// Similarity scores the word overlap of a and b with the default weights.
// It returns 1 when one string contains the other and 0 when either is blank.
func Similarity(a, b string) float64 {
	return similarity(a, b, defaultSimilarity)
}

func similarity(a, b string, w similarityWeights) float64 {
	s1 := strings.TrimSpace(strings.ToLower(a))
	s2 := strings.TrimSpace(strings.ToLower(b))
	if s1 == "" || s2 == "" {
		return 0
	}
	if mutuallyContains(s1, s2) {
		return 1
	}

	words1 := tokenizer.Tokenize(s1)
	words2 := tokenizer.Tokenize(s2)

	var matches float64
	for _, w1 := range words1 {
		for _, w2 := range words2 {
			if w1 == w2 {
				matches += w.exact
				continue
			}
			if tokenizer.Length(w1) >= w.minWordLen && tokenizer.Length(w2) >= w.minWordLen && mutuallyContains(w1, w2) {
				matches += w.partial
			}
		}
	}

	longest := max(len(words1), len(words2))
	if longest == 0 {
		return 0
	}
	return matches / float64(longest)
}
