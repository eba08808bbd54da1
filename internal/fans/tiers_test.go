package fans_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fanpulse/internal/fans"
)

func TestTierFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		want  string
	}{
		{0, "new"},
		{9, "new"},
		{10, "active"},
		{49, "active"},
		{50, "loyal"},
		{199, "loyal"},
		{200, "superfan"},
		{499, "superfan"},
		{500, "diehard"},
		{100000, "diehard"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, fans.TierFor(tt.total).Name, "total %d", tt.total)
	}
}

func TestTiersLadderIsOrdered(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(fans.Tiers); i++ {
		require.Greater(t, fans.Tiers[i].MinInteractions, fans.Tiers[i-1].MinInteractions)
		require.Greater(t, fans.Tiers[i].PriorityMultiplier, fans.Tiers[i-1].PriorityMultiplier)
	}

	require.Equal(t, fans.Tiers[0], fans.Lowest())
	require.EqualValues(t, 0, fans.Lowest().MinInteractions)
}

func TestNextThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		want  int64
	}{
		{0, 10},
		{9, 10},
		{10, 50},
		{250, 500},
		{500, 0},
		{9999, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, fans.NextThreshold(tt.total), "total %d", tt.total)
	}
}

func TestTierByName(t *testing.T) {
	t.Parallel()

	tier, ok := fans.TierByName("superfan")
	require.True(t, ok)
	require.EqualValues(t, 200, tier.MinInteractions)

	_, ok = fans.TierByName("legend")
	require.False(t, ok)
}
