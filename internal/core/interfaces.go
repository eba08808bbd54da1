package core

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DB interface {
	Model(a any) *gorm.DB
	Raw(sql string, values ...any) *gorm.DB
	Transaction(fn func(tx *gorm.DB) error) error
	EstimatedCount(tableName string) (int64, error)
	HealthCheck(ctx context.Context) error
	DB() (*sql.DB, error)
}

type UserRepository interface {
	Get(ctx context.Context, id int64) (User, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]User, error)
	ActivePassions(ctx context.Context, userID int64) ([]string, error)
	FolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
	// AddScores atomically increments the user's reputation counters.
	AddScores(ctx context.Context, userID int64, wisdom, aura int) error
}

type PostRepository interface {
	Get(ctx context.Context, id int64) (Post, error)
	// RecentByAuthors returns the newest public posts from the given authors.
	RecentByAuthors(ctx context.Context, authorIDs []int64, limit int) ([]Post, error)
	// RecentExcludingAuthors returns the newest public posts from everyone else,
	// the discovery pool.
	RecentExcludingAuthors(ctx context.Context, authorIDs []int64, limit int) ([]Post, error)
	RecentSince(ctx context.Context, since time.Time, limit int) ([]Post, error)
	// Engagement aggregates fresh reaction and comment counts for one post.
	Engagement(ctx context.Context, postID int64) (EngagementStats, error)
}

// ToggleAction is the outcome of applying a reaction to a post.
type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleUpdated ToggleAction = "updated"
	ToggleRemoved ToggleAction = "removed"
)

type ReactionRepository interface {
	// RecentByUser returns the user's newest reactions, newest first.
	RecentByUser(ctx context.Context, userID int64, limit int) ([]Reaction, error)
	// Toggle applies the at-most-one-reaction-per-pair rule: same type removes,
	// different type replaces, none adds. Runs in a single transaction.
	Toggle(ctx context.Context, userID, postID int64, t ReactionType) (ToggleAction, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// ForPost returns comments matching the filter, priority descending.
	ForPost(ctx context.Context, postID int64, filter CommentFilter) ([]Comment, error)
}

// FanCounters is the result of an atomic fan-status increment.
type FanCounters struct {
	TotalInteractions int64
	CommentCount      int64
	ReactionCount     int64
	CurrentTier       string
}

type FanRepository interface {
	Get(ctx context.Context, fanID, ownerID int64) (FanStatus, error)
	// Increment bumps the interaction counters in one atomic upsert and returns
	// the new totals. The stored tier is whatever was current before recompute.
	Increment(ctx context.Context, fanID, ownerID int64, t InteractionType, initialTier string) (FanCounters, error)
	// SetTier records a promotion; it never downgrades.
	SetTier(ctx context.Context, fanID, ownerID int64, tier string, earnedAt time.Time) error
	TopFans(ctx context.Context, ownerID int64, limit int) ([]FanStatus, error)
}

type SubscriptionRepository interface {
	// Active returns the user's active subscription, or ok=false if none.
	Active(ctx context.Context, userID int64) (Subscription, bool, error)
}

type InteractionEventRepository interface {
	Insert(ctx context.Context, events ...InteractionEvent) error
}

// Notifier delivers fire-and-forget notifications. Failures are logged by the
// implementation and must never fail the calling operation.
type Notifier interface {
	Notify(ctx context.Context, event string, payload map[string]any)
}

// CommentFilter restricts a comment listing to a commenter cohort.
type CommentFilter string

const (
	FilterAll          CommentFilter = "all"
	FilterSuperfan     CommentFilter = "superfan"
	FilterSuperfanPlus CommentFilter = "superfan_plus"
	FilterDieHard      CommentFilter = "die_hard"
	FilterPremium      CommentFilter = "premium"
)

func ParseCommentFilter(s string) (CommentFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	switch CommentFilter(s) {
	case FilterAll, FilterSuperfan, FilterSuperfanPlus, FilterDieHard, FilterPremium:
		return CommentFilter(s), nil
	}
	return "", fmt.Errorf("%w: unknown comment filter %q", ErrInvalidInput, s)
}
