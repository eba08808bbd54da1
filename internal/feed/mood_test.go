package feed_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"fanpulse/internal/core"
	"fanpulse/internal/feed"
)

func reactions(counts map[core.ReactionType]int) []core.ReactionType {
	var history []core.ReactionType
	for t, n := range counts {
		history = append(history, lo.Times(n, func(_ int) core.ReactionType { return t })...)
	}
	return history
}

func TestDetectMood(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		history []core.ReactionType
		want    core.Mood
	}{
		{
			name:    "empty history is neutral",
			history: nil,
			want:    core.MoodNeutral,
		},
		{
			name:    "laugh and fire dominate",
			history: reactions(map[core.ReactionType]int{core.ReactionLaugh: 4, core.ReactionFire: 3}),
			want:    core.MoodFunSeeking,
		},
		{
			name:    "exactly six laughs is not enough",
			history: reactions(map[core.ReactionType]int{core.ReactionLaugh: 6}),
			want:    core.MoodBalanced,
		},
		{
			name:    "six thinking reactions",
			history: reactions(map[core.ReactionType]int{core.ReactionThinking: 6}),
			want:    core.MoodLearning,
		},
		{
			name:    "care and support",
			history: reactions(map[core.ReactionType]int{core.ReactionCare: 3, core.ReactionSupport: 3}),
			want:    core.MoodSupportive,
		},
		{
			name:    "applaud and fire",
			history: reactions(map[core.ReactionType]int{core.ReactionApplaud: 4, core.ReactionFire: 2}),
			want:    core.MoodEnergized,
		},
		{
			name:    "mixed history stays balanced",
			history: reactions(map[core.ReactionType]int{core.ReactionLaugh: 2, core.ReactionThinking: 2, core.ReactionCare: 2}),
			want:    core.MoodBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, feed.DetectMood(tt.history))
		})
	}
}

func TestDetectMoodRuleOrder(t *testing.T) {
	t.Parallel()

	// Fire counts toward both fun-seeking and energized; fun-seeking is
	// checked first and wins.
	history := reactions(map[core.ReactionType]int{core.ReactionFire: 7, core.ReactionApplaud: 3})

	require.Equal(t, core.MoodFunSeeking, feed.DetectMood(history))
}

func TestDetectMoodLookback(t *testing.T) {
	t.Parallel()

	// Only the ten newest reactions count, so the thinking tail is ignored.
	history := append(
		reactions(map[core.ReactionType]int{core.ReactionLaugh: 10}),
		reactions(map[core.ReactionType]int{core.ReactionThinking: 6})...,
	)

	require.Equal(t, core.MoodFunSeeking, feed.DetectMood(history))
}
