package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel events are published on.
const DefaultChannel = "splitledger.events"

// Redis publishes events as JSON on a Redis pub/sub channel.
type Redis struct {
	client  *redis.Client
	channel string
}

// NewRedis constructs a Redis notifier. An empty channel selects DefaultChannel.
func NewRedis(client *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{client: client, channel: channel}
}

// Dial parses url, connects and verifies connectivity.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Notify publishes e on the configured channel.
func (n *Redis) Notify(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
