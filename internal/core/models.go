package core

import (
	"time"

	"github.com/Jeffail/gabs"
	"github.com/samber/lo"
)

// User is a platform identity. WisdomScore and AuraScore are reputation
// counters awarded to the user for their own reactions; they only ever grow.
type User struct {
	ID     int64
	Handle string

	WisdomScore int64
	AuraScore   int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// Follow is a directed edge in the follow graph.
type Follow struct {
	ID         int64
	FollowerID int64
	FolloweeID int64

	CreatedAt time.Time
}

func (Follow) TableName() string {
	return "follows"
}

// Passion is a user-declared topic of interest matched against post hashtags.
type Passion struct {
	ID     int64
	UserID int64
	Tag    string
	Active bool

	CreatedAt time.Time
}

func (Passion) TableName() string {
	return "passions"
}

// Post is a content item. The scoring engine treats posts as read-only;
// engagement counters are aggregated fresh from reactions and comments.
type Post struct {
	ID       int64
	AuthorID int64

	Body        string
	ContentType ContentType
	Hashtags    []string `gorm:"serializer:json"`

	Public         bool
	IsCrisis       bool
	NeedsFactCheck bool

	// Settings is an optional JSON document with per-post overrides, currently
	// reaction rules: {"reactions": {"allowed": [...], "blocked": [...]}}.
	Settings []byte `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Post) TableName() string {
	return "posts"
}

// AllowedReactions resolves the post's reaction rules. With no settings the
// full reaction set is allowed. A "blocked" list is subtracted from whatever
// the "allowed" list (default: everything) yields.
func (p Post) AllowedReactions() []ReactionType {
	allowed := ReactionTypes

	if len(p.Settings) > 0 {
		container, err := gabs.ParseJSON(p.Settings)
		if err == nil {
			if names, err := container.Path("reactions.allowed").Children(); err == nil {
				parsed := parseReactionNames(names)
				if len(parsed) > 0 {
					allowed = parsed
				}
			}
			if names, err := container.Path("reactions.blocked").Children(); err == nil {
				blocked := parseReactionNames(names)
				allowed = lo.Without(allowed, blocked...)
			}
		}
	}

	return allowed
}

func parseReactionNames(names []*gabs.Container) []ReactionType {
	return lo.FilterMap(names, func(item *gabs.Container, _ int) (ReactionType, bool) {
		s, ok := item.Data().(string)
		if !ok {
			return "", false
		}
		t, err := ParseReactionType(s)
		return t, err == nil
	})
}

// Reaction is the single active reaction of a user on a post. Uniqueness of
// (user_id, post_id) is enforced by the database.
type Reaction struct {
	ID     int64
	UserID int64
	PostID int64
	Type   ReactionType

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Reaction) TableName() string {
	return "reactions"
}

// Comment carries a priority score computed once at creation time. The tier
// and subscription level are snapshots of the commenter's standing at that
// moment and are deliberately never recomputed.
type Comment struct {
	ID     int64
	PostID int64
	UserID int64
	Body   string

	PriorityScore     float64
	FanTier           string
	SubscriptionLevel SubscriptionLevel

	CreatedAt time.Time
}

func (Comment) TableName() string {
	return "comments"
}

// FanStatus tracks cumulative interactions between a fan and a content owner.
// CurrentTier is always the highest tier whose threshold is at or below
// TotalInteractions; it never moves backward.
type FanStatus struct {
	ID      int64
	FanID   int64
	OwnerID int64

	TotalInteractions int64
	CommentCount      int64
	ReactionCount     int64

	CurrentTier  string
	TierEarnedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FanStatus) TableName() string {
	return "fan_statuses"
}

// Subscription is a user's paid plan.
type Subscription struct {
	ID     int64
	UserID int64
	Level  SubscriptionLevel
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// InteractionEvent is a tracked engagement signal (view, dwell, share...)
// persisted asynchronously by the tracker for future personalization.
type InteractionEvent struct {
	ID     string `gorm:"type:uuid"`
	UserID int64
	PostID int64

	Type            InteractionType
	DurationSeconds int64

	CreatedAt time.Time
}

func (InteractionEvent) TableName() string {
	return "interaction_events"
}

// EngagementStats is the fresh per-post aggregation used by the scorers.
type EngagementStats struct {
	Reactions    map[ReactionType]int64
	CommentCount int64
}

// Total is the combined reaction and comment count.
func (s EngagementStats) Total() int64 {
	return lo.Sum(lo.Values(s.Reactions)) + s.CommentCount
}
