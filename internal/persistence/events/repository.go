package events

import (
	"context"
	"fmt"

	"fanpulse/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Insert(ctx context.Context, events ...core.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	err := r.DB.Model(&core.InteractionEvent{}).WithContext(ctx).Create(&events).Error
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return nil
}
