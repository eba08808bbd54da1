package fans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"fanpulse/internal/core"
)

var (
	interactionsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanpulse_fan_interactions_total",
		Help: "The total number of fan interactions logged, by type.",
	}, []string{"type"})

	promotions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanpulse_tier_promotions_total",
		Help: "The total number of tier promotions, by tier reached.",
	}, []string{"tier"})
)

// Status is a fan's standing with one content owner.
type Status struct {
	Tier              string `json:"tier"`
	TotalInteractions int64  `json:"totalInteractions"`
	CommentCount      int64  `json:"commentCount"`
	ReactionCount     int64  `json:"reactionCount"`
	// NextTierThreshold is 0 once the top tier is reached.
	NextTierThreshold int64 `json:"nextTierThreshold"`
}

// LeaderboardEntry ranks one fan of an owner. Rank is 1-indexed.
type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	FanID             int64  `json:"fanId"`
	TotalInteractions int64  `json:"totalInteractions"`
	Tier              string `json:"tier"`
}

// Engine owns fan tier progression and leaderboards.
type Engine struct {
	Logger *slog.Logger

	Fans     core.FanRepository
	Users    core.UserRepository
	Notifier core.Notifier
}

func (e *Engine) Init(_ context.Context) error {
	e.Logger = e.Logger.With("component", "fans.Engine")
	return nil
}

// LogInteraction bumps the fan's counters in a single atomic upsert, derives
// the tier from the returned total and records the promotion if the tier
// changed. The tier can only ever move up because the total only ever grows.
func (e *Engine) LogInteraction(ctx context.Context, fanID, ownerID int64, t core.InteractionType, now time.Time) (Status, error) {
	if fanID == ownerID {
		return Status{}, fmt.Errorf("%w: a user cannot be their own fan", core.ErrInvalidInput)
	}

	// Both sides must exist before the upsert, the fan_statuses FK violation
	// would otherwise surface as a repository failure instead of a not-found.
	if _, err := e.Users.Get(ctx, fanID); err != nil {
		return Status{}, err
	}
	if _, err := e.Users.Get(ctx, ownerID); err != nil {
		return Status{}, err
	}

	counters, err := e.Fans.Increment(ctx, fanID, ownerID, t, Lowest().Name)
	if err != nil {
		return Status{}, err
	}

	interactionsLogged.WithLabelValues(string(t)).Inc()

	tier := TierFor(counters.TotalInteractions)
	if tier.Name != counters.CurrentTier {
		if err := e.Fans.SetTier(ctx, fanID, ownerID, tier.Name, now); err != nil {
			return Status{}, err
		}

		promotions.WithLabelValues(tier.Name).Inc()
		e.Logger.Info("fan promoted", "fan", fanID, "owner", ownerID, "tier", tier.Name)

		if e.Notifier != nil {
			e.Notifier.Notify(ctx, "fan.promoted", map[string]any{
				"fanId":   fanID,
				"ownerId": ownerID,
				"tier":    tier.Name,
				"total":   counters.TotalInteractions,
			})
		}
	}

	return Status{
		Tier:              tier.Name,
		TotalInteractions: counters.TotalInteractions,
		CommentCount:      counters.CommentCount,
		ReactionCount:     counters.ReactionCount,
		NextTierThreshold: NextThreshold(counters.TotalInteractions),
	}, nil
}

// Status returns the fan's standing. A fan with no record yet is reported at
// the lowest tier with zero counters; the record itself is created lazily on
// first interaction.
func (e *Engine) Status(ctx context.Context, fanID, ownerID int64) (Status, error) {
	status, err := e.Fans.Get(ctx, fanID, ownerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Status{
				Tier:              Lowest().Name,
				NextTierThreshold: NextThreshold(0),
			}, nil
		}
		return Status{}, err
	}

	return Status{
		Tier:              status.CurrentTier,
		TotalInteractions: status.TotalInteractions,
		CommentCount:      status.CommentCount,
		ReactionCount:     status.ReactionCount,
		NextTierThreshold: NextThreshold(status.TotalInteractions),
	}, nil
}

// Leaderboard ranks the owner's fans by total interactions descending, fan id
// ascending on ties.
func (e *Engine) Leaderboard(ctx context.Context, ownerID int64, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if _, err := e.Users.Get(ctx, ownerID); err != nil {
		return nil, err
	}

	top, err := e.Fans.TopFans(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}

	return lo.Map(top, func(s core.FanStatus, i int) LeaderboardEntry {
		return LeaderboardEntry{
			Rank:              i + 1,
			FanID:             s.FanID,
			TotalInteractions: s.TotalInteractions,
			Tier:              s.CurrentTier,
		}
	}), nil
}
