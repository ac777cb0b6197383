package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxSimilarity(t *testing.T) {
	tbl := []struct {
		name   string
		body   string
		others []string
		want   float64
	}{
		{"no history", "hello world", nil, 0},
		{"empty body", "", []string{"hello world"}, 0},
		{"identical ignoring case and punctuation", "Hello, World!", []string{"hello world"}, 1},
		{"half overlap", "alpha beta", []string{"beta gamma alpha delta"}, 0.5},
		{"best of many", "one two three four", []string{"five six", "one two three five"}, 0.6},
		{"disjoint", "red green", []string{"blue yellow"}, 0},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxSimilarity(tt.body, tt.others), 0.0001)
		})
	}
}
