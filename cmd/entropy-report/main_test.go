package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropyx/internal/entropy"
)

func TestRankByMutualInfo(t *testing.T) {
	stats := []entropy.PartitionStats{
		{Key: "AAA", MutualInfo: 0.2},
		{Key: "BBB", MutualInfo: math.NaN()},
		{Key: "CCC", MutualInfo: 0.9},
		{Key: "DDD", MutualInfo: 0.5},
	}

	ranked := rankByMutualInfo(stats)
	require.Len(t, ranked, 3)
	assert.Equal(t, "CCC", ranked[0].key)
	assert.Equal(t, "DDD", ranked[1].key)
	assert.Equal(t, "AAA", ranked[2].key)
}

func TestSplitTopBottom(t *testing.T) {
	ranked := func(n int) []rankedSymbol {
		out := make([]rankedSymbol, n)
		for i := range out {
			out[i] = rankedSymbol{key: string(rune('A' + i)), mi: float64(n - i)}
		}
		return out
	}

	tests := []struct {
		name       string
		n          int
		wantTop    int
		wantBottom int
	}{
		{name: "plenty", n: 12, wantTop: 5, wantBottom: 5},
		{name: "exactly two groups", n: 10, wantTop: 5, wantBottom: 5},
		{name: "overlapping range", n: 7, wantTop: 5, wantBottom: 2},
		{name: "fewer than show", n: 3, wantTop: 3, wantBottom: 0},
		{name: "single", n: 1, wantTop: 1, wantBottom: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, bottom := splitTopBottom(ranked(tt.n), 5)
			assert.Len(t, top, tt.wantTop)
			assert.Len(t, bottom, tt.wantBottom)

			// No symbol appears in both tables.
			seen := make(map[string]bool)
			for _, e := range top {
				seen[e.key] = true
			}
			for _, e := range bottom {
				assert.False(t, seen[e.key], "symbol %s in both top and bottom", e.key)
			}
		})
	}
}
