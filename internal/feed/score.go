package feed

import (
	"strings"
	"time"

	"fanpulse/internal/core"
)

// Candidate is a post annotated with everything the scorer needs: fresh
// engagement counts and the author's reputation.
type Candidate struct {
	Post       core.Post
	Author     core.User
	Engagement core.EngagementStats
}

// Context is the personalization state a feed was built with, returned to the
// client for transparency.
type Context struct {
	Mood           core.Mood      `json:"mood"`
	TimePreference core.TimeOfDay `json:"timePreference"`
	Passions       []string       `json:"passions"`
}

const (
	engagementDivisor = 10
	engagementCap     = 50

	recencyFresh = 30 // under 1 hour
	recencyWarm  = 20 // under 6 hours
	recencyCool  = 10 // under 24 hours

	moodTypeBonus     = 40
	moodReactionBonus = 30
	timeMatchBonus    = 25
	passionBonus      = 35
	creatorBonus      = 15

	crisisPenalty    = 20
	factCheckPenalty = 15

	creatorScoreBar = 800
)

// Score computes the relevance of a candidate for the given personalization
// context. The model is additive: every matching term contributes, multiple
// branches of the same mood can fire together, and the raw sum is clamped at
// zero. Recency is measured against the explicit now.
func Score(c Candidate, mood core.Mood, pref core.TimeOfDay, passions []string, now time.Time) float64 {
	score := engagementTerm(c.Engagement)
	score += recencyTerm(now.Sub(c.Post.CreatedAt))
	score += moodTerm(c, mood)
	score += timeTerm(c.Post.ContentType, pref)
	score += passionTerm(c.Post.Hashtags, passions)
	score += creatorTerm(c.Author)
	score -= safetyPenalty(c.Post)

	return max(0, score)
}

func engagementTerm(stats core.EngagementStats) float64 {
	return min(float64(stats.Total())/engagementDivisor, engagementCap)
}

func recencyTerm(age time.Duration) float64 {
	switch {
	case age < time.Hour:
		return recencyFresh
	case age < 6*time.Hour:
		return recencyWarm
	case age < 24*time.Hour:
		return recencyCool
	default:
		return 0
	}
}

func moodTerm(c Candidate, mood core.Mood) float64 {
	score := 0.0

	switch mood {
	case core.MoodFunSeeking:
		if c.Post.ContentType == core.ContentEntertainment {
			score += moodTypeBonus
		}
		if c.Engagement.Reactions[core.ReactionLaugh] > 10 {
			score += moodReactionBonus
		}
	case core.MoodLearning:
		if c.Post.ContentType == core.ContentEducational {
			score += moodTypeBonus
		}
		if c.Engagement.Reactions[core.ReactionThinking] > 5 {
			score += moodReactionBonus
		}
	case core.MoodSupportive:
		if c.Post.ContentType == core.ContentInspirational {
			score += moodTypeBonus
		}
		if c.Engagement.Reactions[core.ReactionCare] > 5 {
			score += moodReactionBonus
		}
	}

	return score
}

func timeTerm(ct core.ContentType, pref core.TimeOfDay) float64 {
	switch pref {
	case core.TimeMorning:
		if ct == core.ContentMotivational || ct == core.ContentNews {
			return timeMatchBonus
		}
	case core.TimeAfternoon:
		if ct == core.ContentEducational {
			return timeMatchBonus
		}
	case core.TimeEvening:
		if ct == core.ContentEntertainment || ct == core.ContentSocial {
			return timeMatchBonus
		}
	}
	return 0
}

// passionTerm awards the bonus once per matching passion, uncapped. A passion
// matches when any hashtag on the post contains it, case-insensitively.
func passionTerm(hashtags, passions []string) float64 {
	if len(hashtags) == 0 || len(passions) == 0 {
		return 0
	}

	lowered := make([]string, len(hashtags))
	for i, h := range hashtags {
		lowered[i] = strings.ToLower(h)
	}

	score := 0.0
	for _, passion := range passions {
		p := strings.ToLower(passion)
		for _, h := range lowered {
			if strings.Contains(h, p) {
				score += passionBonus
				break
			}
		}
	}
	return score
}

func creatorTerm(author core.User) float64 {
	score := 0.0
	if author.AuraScore > creatorScoreBar {
		score += creatorBonus
	}
	if author.WisdomScore > creatorScoreBar {
		score += creatorBonus
	}
	return score
}

func safetyPenalty(post core.Post) float64 {
	penalty := 0.0
	if post.IsCrisis {
		penalty += crisisPenalty
	}
	if post.NeedsFactCheck {
		penalty += factCheckPenalty
	}
	return penalty
}
