package feed

import (
	"fanpulse/internal/core"
)

// moodLookback is how many of the user's most recent reactions feed the mood
// classifier.
const moodLookback = 10

// DetectMood classifies a user's content appetite from their reaction history,
// newest first. Only the most recent reactions inside the lookback window
// count. Rules are evaluated in fixed order; the first match wins:
//
//	laugh+fire > 6      fun-seeking
//	thinking > 5        learning
//	care+support > 5    supportive
//	applaud+fire > 5    energized
//	otherwise           balanced
//
// With no reactions at all the mood is neutral.
func DetectMood(history []core.ReactionType) core.Mood {
	if len(history) == 0 {
		return core.MoodNeutral
	}
	if len(history) > moodLookback {
		history = history[:moodLookback]
	}

	counts := map[core.ReactionType]int{}
	for _, t := range history {
		counts[t]++
	}

	switch {
	case counts[core.ReactionLaugh]+counts[core.ReactionFire] > 6:
		return core.MoodFunSeeking
	case counts[core.ReactionThinking] > 5:
		return core.MoodLearning
	case counts[core.ReactionCare]+counts[core.ReactionSupport] > 5:
		return core.MoodSupportive
	case counts[core.ReactionApplaud]+counts[core.ReactionFire] > 5:
		return core.MoodEnergized
	default:
		return core.MoodBalanced
	}
}
