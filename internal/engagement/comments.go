package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fanpulse/internal/core"
	"fanpulse/internal/fans"
)

var (
	commentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fanpulse_comments_created_total",
		Help: "The total number of comments created.",
	})
)

const maxCommentLength = 2000

// Comments creates priority-scored comments and serves filtered listings.
type Comments struct {
	Logger *slog.Logger

	Posts         core.PostRepository
	Comments      core.CommentRepository
	FanStatuses   core.FanRepository
	Subscriptions core.SubscriptionRepository

	Fans     *fans.Engine
	Notifier core.Notifier
}

func (c *Comments) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "engagement.Comments")
	return nil
}

// Create persists a comment with its priority score computed from the
// commenter's standing right now. The score and the tier/subscription
// snapshots are never recomputed later; priority reflects standing at
// comment time.
func (c *Comments) Create(ctx context.Context, userID, postID int64, body string, now time.Time) (core.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return core.Comment{}, fmt.Errorf("%w: comment body must not be empty", core.ErrInvalidInput)
	}
	// The limit counts characters, not bytes.
	if utf8.RuneCountInString(body) > maxCommentLength {
		return core.Comment{}, fmt.Errorf("%w: comment body exceeds %d characters", core.ErrInvalidInput, maxCommentLength)
	}

	post, err := c.Posts.Get(ctx, postID)
	if err != nil {
		return core.Comment{}, err
	}

	tierName, hasTier, err := c.currentTier(ctx, userID, post.AuthorID)
	if err != nil {
		return core.Comment{}, err
	}

	level := core.SubscriptionFree
	if sub, ok, err := c.Subscriptions.Active(ctx, userID); err != nil {
		return core.Comment{}, err
	} else if ok {
		level = sub.Level
	}

	comment := core.Comment{
		PostID:            postID,
		UserID:            userID,
		Body:              body,
		PriorityScore:     fans.PriorityScore(tierName, hasTier, level),
		FanTier:           tierName,
		SubscriptionLevel: level,
		CreatedAt:         now,
	}

	if err := c.Comments.Create(ctx, &comment); err != nil {
		return core.Comment{}, err
	}

	commentsCreated.Inc()

	if post.AuthorID != userID {
		if _, err := c.Fans.LogInteraction(ctx, userID, post.AuthorID, core.InteractionComment, now); err != nil {
			c.Logger.Warn("fan interaction log failed", "user", userID, "owner", post.AuthorID, "error", err)
		}

		if c.Notifier != nil {
			c.Notifier.Notify(ctx, "comment.created", map[string]any{
				"postId":   postID,
				"ownerId":  post.AuthorID,
				"userId":   userID,
				"priority": comment.PriorityScore,
			})
		}
	}

	return comment, nil
}

// Filtered returns a post's comments for the given cohort filter, sorted by
// priority descending. Filters match the persisted snapshots, not the
// commenter's live standing.
func (c *Comments) Filtered(ctx context.Context, postID int64, filter core.CommentFilter) ([]core.Comment, error) {
	if _, err := c.Posts.Get(ctx, postID); err != nil {
		return nil, err
	}

	return c.Comments.ForPost(ctx, postID, filter)
}

func (c *Comments) currentTier(ctx context.Context, userID, ownerID int64) (string, bool, error) {
	if userID == ownerID {
		return fans.Lowest().Name, false, nil
	}

	status, err := c.FanStatuses.Get(ctx, userID, ownerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fans.Lowest().Name, false, nil
		}
		return "", false, err
	}
	return status.CurrentTier, true, nil
}
