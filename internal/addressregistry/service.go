// Package addressregistry manages the labelled account addresses that are
// merged into the subscription filter when a session starts.
package addressregistry

import (
	"context"
	"errors"
)

// ErrAddressNotFound is returned when unregistering a label that is not registered.
var ErrAddressNotFound = errors.New("address not found")

// Service registers and lists the addresses to watch.
//
// Implementations validate input and delegate persistence to an AddressStorage.
type Service interface {
	// Register stores address under label, replacing any address previously
	// stored under the same label. The address must be a base58 account key.
	Register(ctx context.Context, label, address string) error

	// Unregister removes the address stored under label.
	// It returns ErrAddressNotFound when nothing is stored under it.
	Unregister(ctx context.Context, label string) error

	// List returns every registered address keyed by label.
	List(ctx context.Context) (map[string]string, error)
}

type service struct {
	addressStorage AddressStorage
}

var _ Service = (*service)(nil)

// New creates the registry on top of the given storage.
func New(as AddressStorage) *service {
	return &service{
		addressStorage: as,
	}
}
