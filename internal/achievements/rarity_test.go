package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		percent float64
		want    Rarity
	}{
		{0, RarityMythic},
		{4.99, RarityMythic},
		{5, RarityLegendary},
		{9.99, RarityLegendary},
		{10, RarityEpic},
		{19.99, RarityEpic},
		{20, RarityRare},
		{39.99, RarityRare},
		{40, RarityUncommon},
		{69.99, RarityUncommon},
		{70, RarityCommon},
		{100, RarityCommon},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(ptr(tc.percent)), "Classify(%v)", tc.percent)
	}
}

func TestClassifyMissingPercentageDefaultsToCommon(t *testing.T) {
	assert.Equal(t, RarityCommon, Classify(nil))
}

// severity maps tiers to their ordering so monotonicity can be asserted.
var severity = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
	RarityMythic:    5,
}

func TestClassifyIsTotalAndMonotone(t *testing.T) {
	previous := severity[Classify(ptr(0))]
	for p := 0.0; p <= 100; p += 0.25 {
		tier := Classify(ptr(p))
		rank, ok := severity[tier]
		require.Truef(t, ok, "Classify(%v) returned unknown tier %q", p, tier)
		require.LessOrEqualf(t, rank, previous, "rarity increased at %v", p)
		previous = rank
	}
}
