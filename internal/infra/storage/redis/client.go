// Package redis stores the address registry in a Redis hash and publishes
// decoded transactions on a Redis pub/sub channel.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel decoded transactions are published on
// unless WithChannel overrides it.
const DefaultChannel = "geyserwatch:transactions"

type client struct {
	conn    *redis.Client
	channel string
}

func (c *client) Close() error {
	return c.conn.Close()
}

type config struct {
	channel string
}

type Option func(*config)

// WithChannel sets the pub/sub channel used by Publish.
func WithChannel(channel string) Option {
	return func(c *config) {
		if channel != "" {
			c.channel = channel
		}
	}
}

// NewClient connects to Redis and checks the connection with PING.
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	cfg := config{channel: DefaultChannel}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &client{
		conn:    conn,
		channel: cfg.channel,
	}, nil
}
