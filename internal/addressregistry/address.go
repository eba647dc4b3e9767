package addressregistry

import (
	"context"

	"github.com/gabapcia/geyserwatch/internal/pkg/validator"
)

// WatchedAddress is one labelled address of the filter set.
type WatchedAddress struct {
	Label   string `validate:"required"`
	Address string `validate:"required,pubkey"`
}

// AddressStorage persists the registered addresses.
type AddressStorage interface {
	// SaveAddress stores the address under its label. Saving an existing label
	// overwrites it.
	SaveAddress(ctx context.Context, addr WatchedAddress) error

	// DeleteAddress removes the label. It returns ErrAddressNotFound when the
	// label is not stored.
	DeleteAddress(ctx context.Context, label string) error

	// ListAddresses returns all stored addresses keyed by label.
	ListAddresses(ctx context.Context) (map[string]string, error)
}

type labelInput struct {
	Label string `validate:"required"`
}

func buildWatchedAddress(label, address string) (WatchedAddress, error) {
	addr := WatchedAddress{
		Label:   label,
		Address: address,
	}

	return addr, validator.Validate(addr)
}

func (s *service) Register(ctx context.Context, label, address string) error {
	addr, err := buildWatchedAddress(label, address)
	if err != nil {
		return err
	}

	return s.addressStorage.SaveAddress(ctx, addr)
}

func (s *service) Unregister(ctx context.Context, label string) error {
	if err := validator.Validate(labelInput{Label: label}); err != nil {
		return err
	}

	return s.addressStorage.DeleteAddress(ctx, label)
}

func (s *service) List(ctx context.Context) (map[string]string, error) {
	return s.addressStorage.ListAddresses(ctx)
}
