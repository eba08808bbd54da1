package engagement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"fanpulse/internal/core"
	"fanpulse/internal/fans"
)

var (
	reactionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanpulse_reactions_applied_total",
		Help: "The total number of reaction toggles, by type and outcome.",
	}, []string{"type", "action"})
)

// ReactionResult reports the toggle outcome and the reacting user's updated
// reputation.
type ReactionResult struct {
	Action core.ToggleAction `json:"action"`
	Scores struct {
		Wisdom int64 `json:"wisdom"`
		Aura   int64 `json:"aura"`
	} `json:"scores"`
}

// Reactions applies reaction toggles and the reputation awards they carry.
type Reactions struct {
	Logger *slog.Logger

	Users     core.UserRepository
	Posts     core.PostRepository
	Reactions core.ReactionRepository

	Fans *fans.Engine
}

func (r *Reactions) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "engagement.Reactions")
	return nil
}

// Add applies a reaction to a post. Re-applying the active type removes it,
// a different type replaces it, otherwise it is added. Adding or replacing
// awards the type's wisdom/aura deltas to the reacting user and logs a fan
// interaction against the post author.
func (r *Reactions) Add(ctx context.Context, userID, postID int64, t core.ReactionType, now time.Time) (ReactionResult, error) {
	post, err := r.Posts.Get(ctx, postID)
	if err != nil {
		return ReactionResult{}, err
	}

	if !lo.Contains(post.AllowedReactions(), t) {
		return ReactionResult{}, fmt.Errorf("%w: reaction %q is not allowed on this post", core.ErrForbidden, t)
	}

	action, err := r.Reactions.Toggle(ctx, userID, postID, t)
	if err != nil {
		return ReactionResult{}, err
	}

	reactionsApplied.WithLabelValues(string(t), string(action)).Inc()

	if action != core.ToggleRemoved {
		award := core.AwardFor(t)
		if err := r.Users.AddScores(ctx, userID, award.Wisdom, award.Aura); err != nil {
			return ReactionResult{}, err
		}

		if post.AuthorID != userID {
			if _, err := r.Fans.LogInteraction(ctx, userID, post.AuthorID, core.InteractionReaction, now); err != nil {
				// Losing a fan counter bump is tolerable; losing the reaction is not.
				r.Logger.Warn("fan interaction log failed", "user", userID, "owner", post.AuthorID, "error", err)
			}
		}
	}

	user, err := r.Users.Get(ctx, userID)
	if err != nil {
		return ReactionResult{}, err
	}

	result := ReactionResult{Action: action}
	result.Scores.Wisdom = user.WisdomScore
	result.Scores.Aura = user.AuraScore
	return result, nil
}
