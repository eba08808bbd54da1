package engagement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fanpulse/internal/core"
)

func TestAddReactionAwardsScores(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{users: map[int64]*core.User{
		1: {ID: 1, WisdomScore: 5, AuraScore: 5},
		2: {ID: 2},
	}}
	posts := &fakePosts{posts: map[int64]core.Post{10: {ID: 10, AuthorID: 2}}}
	fanRepo := &fakeFanRepo{}

	reactions := newReactions(users, posts, &fakeToggles{action: core.ToggleAdded}, fanRepo)

	result, err := reactions.Add(t.Context(), 1, 10, core.ReactionSupport, time.Now())
	require.NoError(t, err)

	require.Equal(t, core.ToggleAdded, result.Action)
	require.EqualValues(t, 7, result.Scores.Wisdom)
	require.EqualValues(t, 8, result.Scores.Aura)

	require.Equal(t, []core.InteractionType{core.InteractionReaction}, fanRepo.increments)
}

func TestAddReactionRemovalSkipsAwards(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{users: map[int64]*core.User{
		1: {ID: 1, WisdomScore: 5, AuraScore: 5},
		2: {ID: 2},
	}}
	posts := &fakePosts{posts: map[int64]core.Post{10: {ID: 10, AuthorID: 2}}}
	fanRepo := &fakeFanRepo{}

	reactions := newReactions(users, posts, &fakeToggles{action: core.ToggleRemoved}, fanRepo)

	result, err := reactions.Add(t.Context(), 1, 10, core.ReactionSupport, time.Now())
	require.NoError(t, err)

	require.Equal(t, core.ToggleRemoved, result.Action)
	require.EqualValues(t, 5, result.Scores.Wisdom)
	require.EqualValues(t, 5, result.Scores.Aura)
	require.Empty(t, fanRepo.increments)
}

func TestAddReactionReplacementAwards(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{users: map[int64]*core.User{
		1: {ID: 1},
		2: {ID: 2},
	}}
	posts := &fakePosts{posts: map[int64]core.Post{10: {ID: 10, AuthorID: 2}}}
	fanRepo := &fakeFanRepo{}

	reactions := newReactions(users, posts, &fakeToggles{action: core.ToggleUpdated}, fanRepo)

	result, err := reactions.Add(t.Context(), 1, 10, core.ReactionThinking, time.Now())
	require.NoError(t, err)

	require.Equal(t, core.ToggleUpdated, result.Action)
	require.EqualValues(t, 3, result.Scores.Wisdom)
	require.EqualValues(t, 1, result.Scores.Aura)
}

func TestAddReactionOnOwnPostSkipsFanLog(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{users: map[int64]*core.User{1: {ID: 1}}}
	posts := &fakePosts{posts: map[int64]core.Post{10: {ID: 10, AuthorID: 1}}}
	fanRepo := &fakeFanRepo{}

	reactions := newReactions(users, posts, &fakeToggles{action: core.ToggleAdded}, fanRepo)

	result, err := reactions.Add(t.Context(), 1, 10, core.ReactionFire, time.Now())
	require.NoError(t, err)

	require.EqualValues(t, 1, result.Scores.Wisdom)
	require.Empty(t, fanRepo.increments)
}

func TestAddReactionBlockedByPostSettings(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{users: map[int64]*core.User{1: {ID: 1}}}
	posts := &fakePosts{posts: map[int64]core.Post{
		10: {
			ID:       10,
			AuthorID: 2,
			Settings: []byte(`{"reactions": {"blocked": ["laugh"]}}`),
		},
	}}

	reactions := newReactions(users, posts, &fakeToggles{action: core.ToggleAdded}, &fakeFanRepo{})

	_, err := reactions.Add(t.Context(), 1, 10, core.ReactionLaugh, time.Now())
	require.ErrorIs(t, err, core.ErrForbidden)

	// Everything outside the blocklist still goes through.
	_, err = reactions.Add(t.Context(), 1, 10, core.ReactionFire, time.Now())
	require.NoError(t, err)
}

func TestAddReactionUnknownPost(t *testing.T) {
	t.Parallel()

	reactions := newReactions(
		&fakeUsers{users: map[int64]*core.User{1: {ID: 1}}},
		&fakePosts{},
		&fakeToggles{action: core.ToggleAdded},
		&fakeFanRepo{},
	)

	_, err := reactions.Add(t.Context(), 1, 99, core.ReactionLaugh, time.Now())
	require.ErrorIs(t, err, core.ErrNotFound)
}
