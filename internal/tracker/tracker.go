package tracker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"fanpulse/internal/core"
	"fanpulse/internal/nats"
)

var (
	eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanpulse_tracked_interactions_total",
		Help: "The total number of tracked interaction events persisted, by type.",
	}, []string{"type"})
)

const batchSize = 50

// TrackedInteraction is the wire form of a tracked engagement signal,
// published by the API and persisted here.
type TrackedInteraction struct {
	ID              string               `json:"id"`
	UserID          int64                `json:"userId"`
	PostID          int64                `json:"postId"`
	Type            core.InteractionType `json:"type"`
	DurationSeconds int64                `json:"durationSeconds"`
	TrackedAt       time.Time            `json:"trackedAt"`
}

// NewTrackedInteraction validates and wraps an interaction for publishing.
func NewTrackedInteraction(userID, postID int64, t core.InteractionType, durationSeconds int64, now time.Time) TrackedInteraction {
	return TrackedInteraction{
		ID:              uuid.NewString(),
		UserID:          userID,
		PostID:          postID,
		Type:            t,
		DurationSeconds: durationSeconds,
		TrackedAt:       now,
	}
}

// Tracker drains the interaction stream into interaction_events, batching
// inserts. Messages are acked only after their batch is persisted.
type Tracker struct {
	Logger *slog.Logger

	NATS   *nats.NATS
	Events core.InteractionEventRepository
}

func (t *Tracker) Init(_ context.Context) error {
	t.Logger = t.Logger.With("component", "tracker.Tracker")
	return nil
}

func (t *Tracker) Run(ctx context.Context) error {
	cons, err := t.NATS.JS.Consumer(ctx, nats.StreamName, nats.ConsumerTracker)
	if err != nil {
		return err
	}

	msgs := make(chan pips.D[jetstream.Msg])

	consumeCtx, err := cons.Consume(func(msg jetstream.Msg) {
		select {
		case msgs <- pips.NewD(msg):
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		stopAndClose(consumeCtx.Stop, consumeCtx.Closed(), msgs)
	}()

	t.Logger.Info("consuming tracked interactions", "stream", nats.StreamName)

	return t.pipeline().Run(ctx, msgs).Wait(ctx)
}

func (t *Tracker) pipeline() *pips.Pipeline[jetstream.Msg, any] {
	return pips.New[jetstream.Msg, any]().
		Then(apply.Batch[jetstream.Msg](batchSize)).
		Then(
			apply.Map(func(ctx context.Context, msgs []jetstream.Msg) (any, error) {
				events := lo.FilterMap(msgs, func(msg jetstream.Msg, _ int) (core.InteractionEvent, bool) {
					event, err := decode(msg.Data())
					if err != nil {
						// Poison messages are acked away, not retried forever.
						t.Logger.Warn("dropping undecodable interaction", "error", err)
						msg.Ack() //nolint:errcheck
						return core.InteractionEvent{}, false
					}
					return event, true
				})

				if err := t.Events.Insert(ctx, events...); err != nil {
					return nil, err
				}

				lo.ForEach(events, func(event core.InteractionEvent, _ int) {
					eventsProcessed.WithLabelValues(string(event.Type)).Inc()
				})
				lo.ForEach(msgs, func(msg jetstream.Msg, _ int) {
					msg.Ack() //nolint:errcheck
				})

				return nil, nil
			}),
		)
}

// stopAndClose stops the consumer and waits for in-flight delivery callbacks
// to return before closing msgs; a callback still running when the channel
// closes could select the send and panic.
func stopAndClose(stop func(), closed <-chan struct{}, msgs chan<- pips.D[jetstream.Msg]) {
	stop()
	<-closed
	close(msgs)
}

func decode(data []byte) (core.InteractionEvent, error) {
	var tracked TrackedInteraction
	if err := json.Unmarshal(data, &tracked); err != nil {
		return core.InteractionEvent{}, err
	}

	return core.InteractionEvent{
		ID:              tracked.ID,
		UserID:          tracked.UserID,
		PostID:          tracked.PostID,
		Type:            tracked.Type,
		DurationSeconds: tracked.DurationSeconds,
		CreatedAt:       tracked.TrackedAt,
	}, nil
}
