package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go/jetstream"
)

// KVCache adapts the JetStream KV bucket to the feed cache interface. Entry
// expiry comes from the bucket's TTL.
type KVCache struct {
	NATS *NATS
}

func (c *KVCache) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := c.NATS.Cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry.Value(), nil
}

func (c *KVCache) Put(ctx context.Context, key string, value []byte) error {
	_, err := c.NATS.Cache.Put(ctx, key, value)
	return err
}
