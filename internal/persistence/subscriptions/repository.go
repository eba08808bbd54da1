package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fanpulse/internal/core"
)

type Repository struct {
	DB core.DB
}

// Active returns the user's active subscription; ok is false when the user
// has none, which the priority scorer treats as the free plan.
func (r *Repository) Active(ctx context.Context, userID int64) (core.Subscription, bool, error) {
	var sub core.Subscription
	err := r.DB.Model(&core.Subscription{}).
		WithContext(ctx).
		Where("user_id = ? AND active", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Subscription{}, false, nil
		}
		return core.Subscription{}, false, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return sub, true, nil
}
