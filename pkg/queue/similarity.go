package queue

import (
	"strings"
	"unicode"
)

// MaxSimilarity returns the highest word-set overlap (jaccard index, 0..1) between body and any of others
func MaxSimilarity(body string, others []string) float64 {
	words := wordSet(body)
	if len(words) == 0 {
		return 0
	}
	var best float64
	for _, other := range others {
		if sim := jaccard(words, wordSet(other)); sim > best {
			best = sim
		}
	}
	return best
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for w := range a {
		if _, ok := b[w]; ok {
			common++
		}
	}
	return float64(common) / float64(len(a)+len(b)-common)
}

func wordSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	res := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		res[f] = struct{}{}
	}
	return res
}
