package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"fanpulse/internal/core"
)

type Repository struct {
	DB core.DB
}

func (r *Repository) Get(ctx context.Context, id int64) (core.Post, error) {
	var post core.Post
	err := r.DB.Model(&core.Post{}).WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Post{}, fmt.Errorf("%w: post %d", core.ErrNotFound, id)
		}
		return core.Post{}, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return post, nil
}

func (r *Repository) RecentByAuthors(ctx context.Context, authorIDs []int64, limit int) ([]core.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var posts []core.Post
	err := r.DB.Model(&core.Post{}).
		WithContext(ctx).
		Where("public AND author_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return posts, nil
}

func (r *Repository) RecentExcludingAuthors(ctx context.Context, authorIDs []int64, limit int) ([]core.Post, error) {
	q := r.DB.Model(&core.Post{}).
		WithContext(ctx).
		Where("public").
		Order("created_at DESC").
		Limit(limit)

	if len(authorIDs) > 0 {
		q = q.Where("author_id NOT IN ?", authorIDs)
	}

	var posts []core.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return posts, nil
}

func (r *Repository) RecentSince(ctx context.Context, since time.Time, limit int) ([]core.Post, error) {
	var posts []core.Post
	err := r.DB.Model(&core.Post{}).
		WithContext(ctx).
		Where("public AND created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}
	return posts, nil
}

// Engagement aggregates fresh per-post counters: reaction tallies grouped by
// type plus the comment count. Deliberately not cached on the post row.
func (r *Repository) Engagement(ctx context.Context, postID int64) (core.EngagementStats, error) {
	type tally struct {
		Type  core.ReactionType
		Count int64
	}

	var tallies []tally
	err := r.DB.Model(&core.Reaction{}).
		WithContext(ctx).
		Select("type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("type").
		Find(&tallies).Error
	if err != nil {
		return core.EngagementStats{}, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}

	var comments int64
	err = r.DB.Model(&core.Comment{}).
		WithContext(ctx).
		Where("post_id = ?", postID).
		Count(&comments).Error
	if err != nil {
		return core.EngagementStats{}, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err)
	}

	return core.EngagementStats{
		Reactions: lo.SliceToMap(tallies, func(t tally) (core.ReactionType, int64) {
			return t.Type, t.Count
		}),
		CommentCount: comments,
	}, nil
}
