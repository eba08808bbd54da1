package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"fanpulse/internal/core"
)

var (
	feedsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanpulse_feeds_built_total",
		Help: "The total number of feeds built, by kind.",
	}, []string{"kind"})

	candidatesScored = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fanpulse_feed_candidates_scored",
		Help:    "Candidate pool size per personalized feed build.",
		Buckets: []float64{10, 25, 50, 80, 100, 150},
	})
)

const (
	defaultLimit      = 20
	maxLimit          = 100
	followingPoolSize = 50
	discoveryPoolSize = 30
	trendingPoolSize  = 100
	trendingWindow    = 24 * time.Hour
	trendingCacheKey  = "feed.trending"
)

// Cache is a small byte-value cache; the NATS KV bucket carries the TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// ScoredPost is one ranked entry of a personalized feed.
type ScoredPost struct {
	Post             core.Post           `json:"post"`
	Score            float64             `json:"score"`
	Engagement       core.EngagementStats `json:"engagement"`
	AllowedReactions []core.ReactionType `json:"allowedReactions"`
}

// Page is a personalized feed page plus the context it was built with.
type Page struct {
	Posts         []ScoredPost `json:"posts"`
	Context       Context      `json:"context"`
	Count         int          `json:"count"`
	TotalAnalyzed int          `json:"totalAnalyzed"`
}

// TrendingPost is a trending feed entry ranked by engagement rate.
type TrendingPost struct {
	Post       core.Post            `json:"post"`
	Engagement core.EngagementStats `json:"engagement"`
	Rate       float64              `json:"rate"`
}

// Builder assembles, scores and paginates feeds.
type Builder struct {
	Logger *slog.Logger

	Users     core.UserRepository
	Posts     core.PostRepository
	Reactions core.ReactionRepository

	Cache Cache
}

func (b *Builder) Init(_ context.Context) error {
	b.Logger = b.Logger.With("component", "feed.Builder")
	return nil
}

// Personalized builds the ranked feed for a user: candidate pools from the
// follow graph plus discovery, fresh engagement annotation, scoring, a stable
// descending sort and offset/limit pagination over the scored list.
func (b *Builder) Personalized(ctx context.Context, userID int64, limit, offset int, now time.Time) (*Page, error) {
	limit, offset, err := normalizePagination(limit, offset)
	if err != nil {
		return nil, err
	}

	if _, err := b.Users.Get(ctx, userID); err != nil {
		return nil, err
	}

	fctx, err := b.personalizationContext(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	candidates, err := b.candidatePool(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidatesScored.Observe(float64(len(candidates)))

	scored := lo.Map(candidates, func(c Candidate, _ int) ScoredPost {
		return ScoredPost{
			Post:             c.Post,
			Score:            Score(c, fctx.Mood, fctx.TimePreference, fctx.Passions, now),
			Engagement:       c.Engagement,
			AllowedReactions: c.Post.AllowedReactions(),
		}
	})

	// Score descending; ties go to the newer post id so ordering is
	// deterministic across requests.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Post.ID > scored[j].Post.ID
	})

	page := paginate(scored, limit, offset)

	feedsBuilt.WithLabelValues("personalized").Inc()

	return &Page{
		Posts:         page,
		Context:       *fctx,
		Count:         len(page),
		TotalAnalyzed: len(scored),
	}, nil
}

// Discovery ranks public posts from non-followed authors by raw engagement.
// With passionsOnly set, posts without a passion-matching hashtag are dropped
// before ranking.
func (b *Builder) Discovery(ctx context.Context, userID int64, limit int, passionsOnly bool, now time.Time) ([]ScoredPost, error) {
	limit, _, err := normalizePagination(limit, 0)
	if err != nil {
		return nil, err
	}

	followees, err := b.Users.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := b.Posts.RecentExcludingAuthors(ctx, append(followees, userID), followingPoolSize)
	if err != nil {
		return nil, err
	}

	if passionsOnly {
		passions, err := b.Users.ActivePassions(ctx, userID)
		if err != nil {
			return nil, err
		}
		pool = lo.Filter(pool, func(p core.Post, _ int) bool {
			return passionTerm(p.Hashtags, passions) > 0
		})
	}

	candidates := b.annotate(ctx, pool)

	scored := lo.Map(candidates, func(c Candidate, _ int) ScoredPost {
		return ScoredPost{
			Post:             c.Post,
			Score:            float64(c.Engagement.Total()),
			Engagement:       c.Engagement,
			AllowedReactions: c.Post.AllowedReactions(),
		}
	})

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Post.ID > scored[j].Post.ID
	})

	feedsBuilt.WithLabelValues("discovery").Inc()

	return paginate(scored, limit, 0), nil
}

// Trending ranks the last 24 hours of public posts by engagement per hour,
// with the hour count floored at 1 so brand-new posts don't blow up the rate.
// The computed list is cached in a TTL'd KV bucket.
func (b *Builder) Trending(ctx context.Context, limit int, now time.Time) ([]TrendingPost, error) {
	limit, _, err := normalizePagination(limit, 0)
	if err != nil {
		return nil, err
	}

	if cached := b.cachedTrending(ctx); cached != nil {
		feedsBuilt.WithLabelValues("trending_cached").Inc()
		return lo.Subset(cached, 0, uint(limit)), nil
	}

	pool, err := b.Posts.RecentSince(ctx, now.Add(-trendingWindow), trendingPoolSize)
	if err != nil {
		return nil, err
	}

	trending := lo.Map(b.annotate(ctx, pool), func(c Candidate, _ int) TrendingPost {
		hours := math.Max(now.Sub(c.Post.CreatedAt).Hours(), 1)
		return TrendingPost{
			Post:       c.Post,
			Engagement: c.Engagement,
			Rate:       float64(c.Engagement.Total()) / hours,
		}
	})

	sort.SliceStable(trending, func(i, j int) bool {
		if trending[i].Rate != trending[j].Rate {
			return trending[i].Rate > trending[j].Rate
		}
		return trending[i].Post.ID > trending[j].Post.ID
	})

	b.storeTrending(ctx, trending)

	feedsBuilt.WithLabelValues("trending").Inc()

	return lo.Subset(trending, 0, uint(limit)), nil
}

func (b *Builder) personalizationContext(ctx context.Context, userID int64, now time.Time) (*Context, error) {
	recent, err := b.Reactions.RecentByUser(ctx, userID, moodLookback)
	if err != nil {
		return nil, err
	}

	passions, err := b.Users.ActivePassions(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := lo.Map(recent, func(r core.Reaction, _ int) core.ReactionType {
		return r.Type
	})

	return &Context{
		Mood:           DetectMood(history),
		TimePreference: TimePreference(now.Hour()),
		Passions:       passions,
	}, nil
}

// candidatePool unions the following pool with the discovery pool. A user who
// follows nobody gets their own posts as the following pool.
func (b *Builder) candidatePool(ctx context.Context, userID int64) ([]Candidate, error) {
	followees, err := b.Users.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	followingAuthors := followees
	if len(followingAuthors) == 0 {
		followingAuthors = []int64{userID}
	}

	following, err := b.Posts.RecentByAuthors(ctx, followingAuthors, followingPoolSize)
	if err != nil {
		return nil, err
	}

	discovery, err := b.Posts.RecentExcludingAuthors(ctx, append(followees, userID), discoveryPoolSize)
	if err != nil {
		return nil, err
	}

	pool := lo.UniqBy(append(following, discovery...), func(p core.Post) int64 {
		return p.ID
	})

	return b.annotate(ctx, pool), nil
}

// annotate attaches fresh engagement counts and author reputation to every
// post. A failed engagement lookup degrades that post to zero engagement
// instead of failing the whole feed.
func (b *Builder) annotate(ctx context.Context, posts []core.Post) []Candidate {
	authorIDs := lo.Uniq(lo.Map(posts, func(p core.Post, _ int) int64 {
		return p.AuthorID
	}))

	authors, err := b.Users.GetMany(ctx, authorIDs)
	if err != nil {
		b.Logger.Warn("author lookup failed, scoring without creator bonuses", "error", err)
		authors = map[int64]core.User{}
	}

	return lo.Map(posts, func(p core.Post, _ int) Candidate {
		stats, err := b.Posts.Engagement(ctx, p.ID)
		if err != nil {
			b.Logger.Warn("engagement lookup failed, treating post as unengaged", "post", p.ID, "error", err)
			stats = core.EngagementStats{}
		}

		return Candidate{
			Post:       p,
			Author:     authors[p.AuthorID],
			Engagement: stats,
		}
	})
}

func (b *Builder) cachedTrending(ctx context.Context) []TrendingPost {
	if b.Cache == nil {
		return nil
	}

	raw, err := b.Cache.Get(ctx, trendingCacheKey)
	if err != nil || len(raw) == 0 {
		return nil
	}

	var trending []TrendingPost
	if err := json.Unmarshal(raw, &trending); err != nil {
		b.Logger.Warn("discarding malformed trending cache entry", "error", err)
		return nil
	}
	return trending
}

func (b *Builder) storeTrending(ctx context.Context, trending []TrendingPost) {
	if b.Cache == nil {
		return
	}

	raw, err := json.Marshal(trending)
	if err != nil {
		return
	}
	if err := b.Cache.Put(ctx, trendingCacheKey, raw); err != nil {
		b.Logger.Warn("trending cache write failed", "error", err)
	}
}

func normalizePagination(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, fmt.Errorf("%w: limit and offset must not be negative", core.ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, offset, nil
}

func paginate(scored []ScoredPost, limit, offset int) []ScoredPost {
	if offset >= len(scored) {
		return []ScoredPost{}
	}
	return lo.Subset(scored, offset, uint(limit))
}
