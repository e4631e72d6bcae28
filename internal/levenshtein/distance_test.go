package levenshtein_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relayqa/mailprobe/internal/levenshtein"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		s, t string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"gmail.com", "gmail.com", 0},
		{"gmial.com", "gmail.com", 2},   // two swaps
		{"gmal.com", "gmail.com", 1},    // one missing letter
		{"gmailll.com", "gmail.com", 2}, // two extra letters
		{"yahoo.com", "gmail.com", 5},   // completely different
	}
	for _, tt := range tests {
		t.Run(tt.s+"->"+tt.t, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshtein.Distance(tt.s, tt.t))
		})
	}
}

func TestDistanceAtMost(t *testing.T) {
	tests := []struct {
		s, t   string
		max    int
		within bool
	}{
		{"gmial.com", "gmail.com", 2, true},
		{"gmal.com", "gmail.com", 2, true},
		{"yahoo.com", "gmail.com", 2, false},
		{"gmail.com", "gmail.com", 0, true},
		{"a", "abcd", 2, false}, // length gap alone exceeds the bound
		{"", "abc", 2, false},
		{"", "ab", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.s+"->"+tt.t, func(t *testing.T) {
			_, ok := levenshtein.DistanceAtMost(tt.s, tt.t, tt.max)
			assert.Equal(t, tt.within, ok)
		})
	}
}

func TestDistanceAtMost_ExactWhenWithin(t *testing.T) {
	d, ok := levenshtein.DistanceAtMost("gmal.com", "gmail.com", 2)
	assert.True(t, ok)
	assert.Equal(t, 1, d)

	// Unbounded agrees with Distance
	d, ok = levenshtein.DistanceAtMost("yahoo.com", "gmail.com", -1)
	assert.True(t, ok)
	assert.Equal(t, levenshtein.Distance("yahoo.com", "gmail.com"), d)
}
