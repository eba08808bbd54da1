package nats

import (
	"context"
	"log/slog"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"fanpulse/internal/config"
)

const (
	appName = "fanpulse"

	// StreamName carries tracked interaction events from the API to the tracker.
	StreamName = appName

	// SubjectInteractions is where the API publishes tracked interactions.
	SubjectInteractions = appName + ".interactions"

	// ConsumerTracker is the tracker's durable consumer.
	ConsumerTracker = "tracker"

	cacheBucket = appName + "-cache"
	cacheTTL    = time.Minute
)

type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	JS    jetstream.JetStream
	Cache jetstream.KeyValue
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "nats")

	nc, err := libnats.Connect(n.Config.NATSURL)
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.JS = js

	if n.Config.NATSInit {
		if err := n.initNATS(ctx); err != nil {
			return err
		}
	}

	kv, err := js.KeyValue(ctx, cacheBucket)
	if err != nil {
		return err
	}
	n.Cache = kv

	return nil
}

// PublishInteraction puts a tracked interaction on the stream. The message id
// deduplicates redeliveries from client retries.
func (n *NATS) PublishInteraction(ctx context.Context, msgID string, data []byte) error {
	msg := &libnats.Msg{
		Subject: SubjectInteractions,
		Data:    data,
		Header: libnats.Header{
			libnats.MsgIdHdr: []string{msgID},
		},
	}

	_, err := n.JS.PublishMsg(ctx, msg)
	return err
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.JS.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	return n.JS.Conn().Drain()
}

func (n *NATS) initNATS(ctx context.Context) error {
	n.Logger.Info("Initializing NATS")

	_, err := n.JS.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{appName + ".*"},
		MaxAge:   24 * time.Hour,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Stream created or updated", "name", StreamName)

	_, err = n.JS.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       ConsumerTracker,
		FilterSubject: SubjectInteractions,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("Consumer created or updated", "name", ConsumerTracker)

	_, err = n.JS.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: cacheBucket,
		TTL:    cacheTTL,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("KeyValue created or updated", "name", cacheBucket)

	return nil
}
