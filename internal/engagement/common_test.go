package engagement_test

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"fanpulse/internal/core"
	"fanpulse/internal/engagement"
	"fanpulse/internal/fans"
)

type fakeUsers struct {
	users map[int64]*core.User
}

func (f *fakeUsers) Get(_ context.Context, id int64) (core.User, error) {
	user, ok := f.users[id]
	if !ok {
		return core.User{}, core.ErrNotFound
	}
	return *user, nil
}

func (f *fakeUsers) GetMany(_ context.Context, _ []int64) (map[int64]core.User, error) {
	return nil, nil
}

func (f *fakeUsers) ActivePassions(_ context.Context, _ int64) ([]string, error) {
	return nil, nil
}

func (f *fakeUsers) FolloweeIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}

func (f *fakeUsers) AddScores(_ context.Context, userID int64, wisdom, aura int) error {
	f.users[userID].WisdomScore += int64(wisdom)
	f.users[userID].AuraScore += int64(aura)
	return nil
}

type fakePosts struct {
	posts map[int64]core.Post
}

func (f *fakePosts) Get(_ context.Context, id int64) (core.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return core.Post{}, core.ErrNotFound
	}
	return post, nil
}

func (f *fakePosts) RecentByAuthors(_ context.Context, _ []int64, _ int) ([]core.Post, error) {
	return nil, nil
}

func (f *fakePosts) RecentExcludingAuthors(_ context.Context, _ []int64, _ int) ([]core.Post, error) {
	return nil, nil
}

func (f *fakePosts) RecentSince(_ context.Context, _ time.Time, _ int) ([]core.Post, error) {
	return nil, nil
}

func (f *fakePosts) Engagement(_ context.Context, _ int64) (core.EngagementStats, error) {
	return core.EngagementStats{}, nil
}

type fakeToggles struct {
	action core.ToggleAction
}

func (f *fakeToggles) RecentByUser(_ context.Context, _ int64, _ int) ([]core.Reaction, error) {
	return nil, nil
}

func (f *fakeToggles) Toggle(_ context.Context, _, _ int64, _ core.ReactionType) (core.ToggleAction, error) {
	return f.action, nil
}

type fakeFanRepo struct {
	statuses   map[int64]core.FanStatus
	increments []core.InteractionType
}

func (f *fakeFanRepo) Get(_ context.Context, fanID, _ int64) (core.FanStatus, error) {
	status, ok := f.statuses[fanID]
	if !ok {
		return core.FanStatus{}, core.ErrNotFound
	}
	return status, nil
}

func (f *fakeFanRepo) Increment(_ context.Context, _, _ int64, t core.InteractionType, initialTier string) (core.FanCounters, error) {
	f.increments = append(f.increments, t)
	return core.FanCounters{TotalInteractions: 1, CurrentTier: initialTier}, nil
}

func (f *fakeFanRepo) SetTier(_ context.Context, _, _ int64, _ string, _ time.Time) error {
	return nil
}

func (f *fakeFanRepo) TopFans(_ context.Context, _ int64, _ int) ([]core.FanStatus, error) {
	return nil, nil
}

type fakeComments struct {
	created []core.Comment
	listed  []core.Comment
}

func (f *fakeComments) Create(_ context.Context, comment *core.Comment) error {
	comment.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *comment)
	return nil
}

func (f *fakeComments) ForPost(_ context.Context, _ int64, filter core.CommentFilter) ([]core.Comment, error) {
	if filter == core.FilterAll {
		return f.listed, nil
	}
	return lo.Filter(f.listed, func(c core.Comment, _ int) bool {
		return string(c.SubscriptionLevel) == string(filter)
	}), nil
}

type fakeSubscriptions struct {
	subs map[int64]core.Subscription
}

func (f *fakeSubscriptions) Active(_ context.Context, userID int64) (core.Subscription, bool, error) {
	sub, ok := f.subs[userID]
	return sub, ok, nil
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notify(_ context.Context, event string, _ map[string]any) {
	n.events = append(n.events, event)
}

func newFansEngine(repo *fakeFanRepo, users *fakeUsers) *fans.Engine {
	return &fans.Engine{
		Logger: slog.New(slog.DiscardHandler),
		Fans:   repo,
		Users:  users,
	}
}

func newReactions(users *fakeUsers, posts *fakePosts, toggles *fakeToggles, fanRepo *fakeFanRepo) *engagement.Reactions {
	return &engagement.Reactions{
		Logger:    slog.New(slog.DiscardHandler),
		Users:     users,
		Posts:     posts,
		Reactions: toggles,
		Fans:      newFansEngine(fanRepo, users),
	}
}

func newComments(users *fakeUsers, posts *fakePosts, comments *fakeComments, fanRepo *fakeFanRepo, subs *fakeSubscriptions, notifier *recordingNotifier) *engagement.Comments {
	c := &engagement.Comments{
		Logger:        slog.New(slog.DiscardHandler),
		Posts:         posts,
		Comments:      comments,
		FanStatuses:   fanRepo,
		Subscriptions: subs,
		Fans:          newFansEngine(fanRepo, users),
	}
	if notifier != nil {
		c.Notifier = notifier
	}
	return c
}
