package core

import "fmt"

// ReactionType is the kind of reaction a user attaches to a post. A user holds
// at most one active reaction per post.
type ReactionType string

const (
	ReactionLaugh    ReactionType = "laugh"
	ReactionSupport  ReactionType = "support"
	ReactionCare     ReactionType = "care"
	ReactionThinking ReactionType = "thinking"
	ReactionApplaud  ReactionType = "applaud"
	ReactionFire     ReactionType = "fire"
)

var ReactionTypes = []ReactionType{
	ReactionLaugh,
	ReactionSupport,
	ReactionCare,
	ReactionThinking,
	ReactionApplaud,
	ReactionFire,
}

func ParseReactionType(s string) (ReactionType, error) {
	for _, t := range ReactionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown reaction type %q", ErrInvalidInput, s)
}

// ReactionAward is the reputation delta granted to the reacting user.
type ReactionAward struct {
	Wisdom int
	Aura   int
}

var reactionAwards = map[ReactionType]ReactionAward{
	ReactionLaugh:    {Wisdom: 1, Aura: 2},
	ReactionSupport:  {Wisdom: 2, Aura: 3},
	ReactionCare:     {Wisdom: 1, Aura: 3},
	ReactionThinking: {Wisdom: 3, Aura: 1},
	ReactionApplaud:  {Wisdom: 2, Aura: 2},
	ReactionFire:     {Wisdom: 1, Aura: 1},
}

func AwardFor(t ReactionType) ReactionAward {
	return reactionAwards[t]
}

// ContentType classifies a post for mood and time-of-day matching.
type ContentType string

const (
	ContentEntertainment ContentType = "entertainment"
	ContentEducational   ContentType = "educational"
	ContentInspirational ContentType = "inspirational"
	ContentMotivational  ContentType = "motivational"
	ContentNews          ContentType = "news"
	ContentSocial        ContentType = "social"
	ContentOther         ContentType = "other"
)

// Mood is a transient classification of a user's content appetite, derived
// from recent reaction history. It is computed per request and never stored.
type Mood string

const (
	MoodFunSeeking Mood = "fun-seeking"
	MoodLearning   Mood = "learning"
	MoodSupportive Mood = "supportive"
	MoodEnergized  Mood = "energized"
	MoodBalanced   Mood = "balanced"
	MoodNeutral    Mood = "neutral"
)

// TimeOfDay buckets the wall-clock hour for time-preference scoring.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// SubscriptionLevel is the user's paid plan, an axis independent from fan tier.
type SubscriptionLevel string

const (
	SubscriptionFree         SubscriptionLevel = "free"
	SubscriptionSuperfan     SubscriptionLevel = "superfan"
	SubscriptionSuperfanPlus SubscriptionLevel = "superfan_plus"
)

var priorityBoosts = map[SubscriptionLevel]float64{
	SubscriptionFree:         0,
	SubscriptionSuperfan:     50,
	SubscriptionSuperfanPlus: 100,
}

// PriorityBoost is the flat bonus a plan adds to a comment's priority score.
func (l SubscriptionLevel) PriorityBoost() float64 {
	return priorityBoosts[l]
}

// InteractionType is the kind of fan interaction logged against a content owner.
type InteractionType string

const (
	InteractionComment  InteractionType = "comment"
	InteractionReaction InteractionType = "reaction"
	InteractionView     InteractionType = "view"
	InteractionShare    InteractionType = "share"
)

func ParseInteractionType(s string) (InteractionType, error) {
	switch InteractionType(s) {
	case InteractionComment, InteractionReaction, InteractionView, InteractionShare:
		return InteractionType(s), nil
	}
	return "", fmt.Errorf("%w: unknown interaction type %q", ErrInvalidInput, s)
}
