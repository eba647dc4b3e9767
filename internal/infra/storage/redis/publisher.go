package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gabapcia/geyserwatch/internal/txstream"
)

// Publish sends the transaction as JSON on the configured pub/sub channel.
// Messages published while nobody is subscribed are dropped by Redis.
func (c *client) Publish(ctx context.Context, tx txstream.DecodedTransaction) error {
	payload, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.Signature, err)
	}

	return c.conn.Publish(ctx, c.channel, payload).Err()
}

var _ txstream.Sink = (*client)(nil)
