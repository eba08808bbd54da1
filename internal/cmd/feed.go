package cmd

import (
	"context"
	"time"

	"github.com/k0kubun/pp"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"fanpulse/internal/cmd/flags"
	"fanpulse/internal/feed"
	"fanpulse/internal/nats"
	"fanpulse/internal/persistence"
	"fanpulse/internal/persistence/posts"
	"fanpulse/internal/persistence/reactions"
	"fanpulse/internal/persistence/users"
)

var userFlag = &cli.Int64Flag{
	Name:     "user",
	Aliases:  []string{"u"},
	Usage:    "The user to build the feed for",
	Required: true,
}

var feedCmd = &cli.Command{
	Name:  "feed",
	Usage: "Build and pretty-print a personalized feed, for debugging scores",
	Flags: []cli.Flag{
		flags.DatabaseURL,
		flags.NATSUrl,
		userFlag,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			nats.Provide(),
			pal.Provide(&users.Repository{}),
			pal.Provide(&posts.Repository{}),
			pal.Provide(&reactions.Repository{}),
			pal.Provide(&feed.Builder{}),
			pal.Provide(&feedPrinter{userID: c.Int64("user")}),
		)
	},
}

type feedPrinter struct {
	Feed *feed.Builder

	userID int64
}

func (p *feedPrinter) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (p *feedPrinter) Run(ctx context.Context) error {
	page, err := p.Feed.Personalized(ctx, p.userID, 0, 0, time.Now())
	if err != nil {
		return err
	}

	pp.Println(page.Context)
	for _, post := range page.Posts {
		pp.Printf("%.1f  post=%d type=%s\n", post.Score, post.Post.ID, string(post.Post.ContentType))
	}

	return nil
}
