package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"fanpulse/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Get(ctx context.Context, id int64) (core.User, error) {
	var user core.User
	err := r.DB.Model(&core.User{}).WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.User{}, fmt.Errorf("%w: user %d", core.ErrNotFound, id)
		}
		return core.User{}, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return user, nil
}

func (r *Repository) GetMany(ctx context.Context, ids []int64) (map[int64]core.User, error) {
	if len(ids) == 0 {
		return map[int64]core.User{}, nil
	}

	var found []core.User
	err := r.DB.Model(&core.User{}).WithContext(ctx).Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}

	return lo.KeyBy(found, func(u core.User) int64 {
		return u.ID
	}), nil
}

func (r *Repository) ActivePassions(ctx context.Context, userID int64) ([]string, error) {
	var tags []string
	err := r.DB.Model(&core.Passion{}).
		WithContext(ctx).
		Where("user_id = ? AND active", userID).
		Pluck("tag", &tags).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return tags, nil
}

func (r *Repository) FolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.DB.Model(&core.Follow{}).
		WithContext(ctx).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return ids, nil
}

// AddScores increments reputation counters in place so concurrent reactions
// never lose an award.
func (r *Repository) AddScores(ctx context.Context, userID int64, wisdom, aura int) error {
	err := r.DB.Model(&core.User{}).
		WithContext(ctx).
		Where("id = ?", userID).
		Updates(map[string]any{
			"wisdom_score": gorm.Expr("wisdom_score + ?", wisdom),
			"aura_score":   gorm.Expr("aura_score + ?", aura),
		}).Error
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return nil
}
