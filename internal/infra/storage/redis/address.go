package redis

import (
	"context"

	"github.com/gabapcia/geyserwatch/internal/addressregistry"
)

// addressRegistryKey is the hash holding label → address pairs.
const addressRegistryKey = "addressregistry:addresses"

// SaveAddress stores the address under its label with HSET, replacing any
// previous value.
func (c *client) SaveAddress(ctx context.Context, addr addressregistry.WatchedAddress) error {
	return c.conn.HSet(ctx, addressRegistryKey, addr.Label, addr.Address).Err()
}

// DeleteAddress removes the label with HDEL. It returns
// addressregistry.ErrAddressNotFound when no field was removed.
func (c *client) DeleteAddress(ctx context.Context, label string) error {
	removed, err := c.conn.HDel(ctx, addressRegistryKey, label).Result()
	if err != nil {
		return err
	}

	if removed == 0 {
		return addressregistry.ErrAddressNotFound
	}
	return nil
}

// ListAddresses returns the whole hash with HGETALL.
func (c *client) ListAddresses(ctx context.Context) (map[string]string, error) {
	return c.conn.HGetAll(ctx, addressRegistryKey).Result()
}

var _ addressregistry.AddressStorage = (*client)(nil)
