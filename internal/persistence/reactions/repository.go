package reactions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fanpulse/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) RecentByUser(ctx context.Context, userID int64, limit int) ([]core.Reaction, error) {
	var reactions []core.Reaction
	err := r.DB.Model(&core.Reaction{}).
		WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&reactions).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return reactions, nil
}

// Outcome is the toggle rule for applying a reaction type against the one the
// user currently holds: no active reaction adds, re-applying the active type
// removes it, a different type replaces it.
func Outcome(active core.ReactionType, hasActive bool, applied core.ReactionType) core.ToggleAction {
	switch {
	case !hasActive:
		return core.ToggleAdded
	case active == applied:
		return core.ToggleRemoved
	default:
		return core.ToggleUpdated
	}
}

// Toggle enforces the one-active-reaction-per-(user, post) rule in a single
// transaction; the decision itself is Outcome. The unique index on
// (user_id, post_id) backstops concurrent inserts.
func (r *Repository) Toggle(ctx context.Context, userID, postID int64, t core.ReactionType) (core.ToggleAction, error) {
	var action core.ToggleAction

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing core.Reaction
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		action = Outcome(existing.Type, err == nil, t)

		switch action {
		case core.ToggleAdded:
			return tx.WithContext(ctx).Create(&core.Reaction{
				UserID: userID,
				PostID: postID,
				Type:   t,
			}).Error

		case core.ToggleRemoved:
			return tx.WithContext(ctx).Delete(&existing).Error

		default:
			return tx.WithContext(ctx).
				Model(&existing).
				Update("type", t).Error
		}
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}

	return action, nil
}
