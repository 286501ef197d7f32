// Package events fans fulfillment outcomes out to downstream listeners.
package events

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// OutcomeEvent is published once per fulfillment request.
type OutcomeEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId"`
	TS        time.Time `json:"ts"`
	Outcome   any       `json:"outcome"`
}

type Publisher interface {
	Publish(ctx context.Context, evt OutcomeEvent) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, OutcomeEvent) error { return nil }

// RedisPublisher implements Publisher over Redis Pub/Sub
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(url, channel string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisPublisher{rdb: redis.NewClient(opt), channel: channel}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, evt OutcomeEvent) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, data).Err()
}

func (p *RedisPublisher) Ping(ctx context.Context) error { return p.rdb.Ping(ctx).Err() }

func (p *RedisPublisher) Close() error { return p.rdb.Close() }

func (p *RedisPublisher) Channel() string { return p.channel }
