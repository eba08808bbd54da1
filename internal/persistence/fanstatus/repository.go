package fanstatus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fanpulse/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Get(ctx context.Context, fanID, ownerID int64) (core.FanStatus, error) {
	var status core.FanStatus
	err := r.DB.Model(&core.FanStatus{}).
		WithContext(ctx).
		Where("fan_id = ? AND owner_id = ?", fanID, ownerID).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.FanStatus{}, fmt.Errorf("%w: fan status %d/%d", core.ErrNotFound, fanID, ownerID)
		}
		return core.FanStatus{}, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return status, nil
}

// Increment is the atomic increment-and-return primitive the tier engine is
// built on: one upsert bumps the counters and hands back the new totals, so
// concurrent interactions from the same fan can't race the recompute.
func (r *Repository) Increment(ctx context.Context, fanID, ownerID int64, t core.InteractionType, initialTier string) (core.FanCounters, error) {
	var counters core.FanCounters

	commentBump := 0
	reactionBump := 0
	switch t {
	case core.InteractionComment:
		commentBump = 1
	case core.InteractionReaction:
		reactionBump = 1
	}

	err := r.DB.Raw(`
		INSERT INTO fan_statuses
			(fan_id, owner_id, total_interactions, comment_count, reaction_count, current_tier, tier_earned_at, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?, ?, NOW(), NOW(), NOW())
		ON CONFLICT (fan_id, owner_id) DO UPDATE SET
			total_interactions = fan_statuses.total_interactions + 1,
			comment_count      = fan_statuses.comment_count + EXCLUDED.comment_count,
			reaction_count     = fan_statuses.reaction_count + EXCLUDED.reaction_count,
			updated_at         = NOW()
		RETURNING total_interactions, comment_count, reaction_count, current_tier`,
		fanID, ownerID, commentBump, reactionBump, initialTier,
	).WithContext(ctx).Scan(&counters).Error
	if err != nil {
		return core.FanCounters{}, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}

	return counters, nil
}

// SetTier records a promotion. The tier name guard makes the write idempotent
// under concurrent promotions to the same tier.
func (r *Repository) SetTier(ctx context.Context, fanID, ownerID int64, tier string, earnedAt time.Time) error {
	err := r.DB.Model(&core.FanStatus{}).
		WithContext(ctx).
		Where("fan_id = ? AND owner_id = ? AND current_tier <> ?", fanID, ownerID, tier).
		Updates(map[string]any{
			"current_tier":   tier,
			"tier_earned_at": earnedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return nil
}

func (r *Repository) TopFans(ctx context.Context, ownerID int64, limit int) ([]core.FanStatus, error) {
	var top []core.FanStatus
	err := r.DB.Model(&core.FanStatus{}).
		WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("total_interactions DESC, fan_id ASC").
		Limit(limit).
		Find(&top).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return top, nil
}
