package comments

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fanpulse/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Create(ctx context.Context, comment *core.Comment) error {
	err := r.DB.Model(&core.Comment{}).WithContext(ctx).Create(comment).Error
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return nil
}

// ForPost lists a post's comments for the given cohort filter, priority
// descending, newest first on ties. Filters match the persisted tier and
// subscription snapshots.
func (r *Repository) ForPost(ctx context.Context, postID int64, filter core.CommentFilter) ([]core.Comment, error) {
	q := r.DB.Model(&core.Comment{}).
		WithContext(ctx).
		Where("post_id = ?", postID).
		Order("priority_score DESC, created_at DESC")

	q, err := applyFilter(q, filter)
	if err != nil {
		return nil, err
	}

	var found []core.Comment
	if err := q.Find(&found).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return found, nil
}

func applyFilter(q *gorm.DB, filter core.CommentFilter) (*gorm.DB, error) {
	switch filter {
	case core.FilterAll, "":
		return q, nil
	case core.FilterSuperfan:
		return q.Where("subscription_level = ?", core.SubscriptionSuperfan), nil
	case core.FilterSuperfanPlus:
		return q.Where("subscription_level = ?", core.SubscriptionSuperfanPlus), nil
	case core.FilterDieHard:
		return q.Where("fan_tier = ?", "diehard"), nil
	case core.FilterPremium:
		return q.Where("subscription_level IN ?", []core.SubscriptionLevel{
			core.SubscriptionSuperfan,
			core.SubscriptionSuperfanPlus,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown comment filter %q", core.ErrInvalidInput, filter)
	}
}
