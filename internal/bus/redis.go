package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/logger"
)

const channelPrefix = "agents:"

// RedisBus delivers envelopes over Redis pub/sub, one channel per agent
// address. Subscribers that are down when a message is published miss it,
// which matches the best-effort transport contract.
type RedisBus struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisBus creates a bus on a fresh Redis connection.
func NewRedisBus(cfg config.RedisConfig, log logger.Logger) (*RedisBus, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &RedisBus{client: rdb, logger: log}, nil
}

// Ping tests the Redis connection.
func (b *RedisBus) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func channelFor(address string) string {
	return channelPrefix + address
}

func (b *RedisBus) Send(ctx context.Context, to string, env Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := b.client.Publish(ctx, channelFor(to), raw).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", to, err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, address string) (<-chan Envelope, error) {
	sub := b.client.Subscribe(ctx, channelFor(address))

	// Force the subscription onto the wire before returning, so a Send
	// racing this call is not silently lost during startup.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", address, err)
	}

	out := make(chan Envelope, 64)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					b.logger.Warn("dropping malformed envelope", map[string]interface{}{
						"address": address,
						"error":   err.Error(),
					})
					continue
				}
				select {
				case out <- env:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (b *RedisBus) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}
