package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fanpulse/internal/core"
)

func TestParseReactionType(t *testing.T) {
	t.Parallel()

	for _, rt := range core.ReactionTypes {
		parsed, err := core.ParseReactionType(string(rt))
		require.NoError(t, err)
		require.Equal(t, rt, parsed)
	}

	_, err := core.ParseReactionType("golfclap")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestParseInteractionType(t *testing.T) {
	t.Parallel()

	parsed, err := core.ParseInteractionType("view")
	require.NoError(t, err)
	require.Equal(t, core.InteractionView, parsed)

	_, err = core.ParseInteractionType("lurk")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestParseCommentFilter(t *testing.T) {
	t.Parallel()

	filter, err := core.ParseCommentFilter("")
	require.NoError(t, err)
	require.Equal(t, core.FilterAll, filter)

	filter, err = core.ParseCommentFilter("die_hard")
	require.NoError(t, err)
	require.Equal(t, core.FilterDieHard, filter)

	_, err = core.ParseCommentFilter("vip")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPriorityBoost(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, core.SubscriptionFree.PriorityBoost())
	require.Equal(t, 50.0, core.SubscriptionSuperfan.PriorityBoost())
	require.Equal(t, 100.0, core.SubscriptionSuperfanPlus.PriorityBoost())
}
