package txstream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabapcia/geyserwatch/internal/pkg/types"
)

// DefaultFilterName names the single filter group of a subscription unless
// WithFilterName overrides it.
const DefaultFilterName = "tokenTransfers"

// ErrUnknownCommitment is returned when a commitment level name is not recognized.
var ErrUnknownCommitment = errors.New("unknown commitment level")

// CommitmentLevel controls how settled a transaction must be before the
// server reports it.
type CommitmentLevel int

const (
	CommitmentProcessed CommitmentLevel = iota
	CommitmentConfirmed
	CommitmentFinalized
)

func (c CommitmentLevel) String() string {
	switch c {
	case CommitmentProcessed:
		return "processed"
	case CommitmentConfirmed:
		return "confirmed"
	case CommitmentFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("commitment(%d)", int(c))
	}
}

// ParseCommitment converts a case-insensitive level name into a CommitmentLevel.
func ParseCommitment(s string) (CommitmentLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processed":
		return CommitmentProcessed, nil
	case "confirmed":
		return CommitmentConfirmed, nil
	case "finalized":
		return CommitmentFinalized, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommitment, s)
	}
}

// SubscriptionRequest is the one message a session sends on the stream.
// It declares a single named filter group matching transactions that touch
// any address in AccountInclude.
type SubscriptionRequest struct {
	FilterName     string
	AccountInclude []string
	Commitment     CommitmentLevel
}

// BuildSubscriptionRequest builds the subscription for the given labelled
// addresses. Labels are only informative: the request includes the distinct
// address values, sorted. An empty map yields an empty inclusion set and
// deciding whether that is acceptable is left to the caller.
func BuildSubscriptionRequest(filterAddresses map[string]string, commitment CommitmentLevel) SubscriptionRequest {
	addresses := make(types.Set[string], len(filterAddresses))
	for _, address := range filterAddresses {
		addresses.Add(address)
	}

	return SubscriptionRequest{
		FilterName:     DefaultFilterName,
		AccountInclude: types.ToSortedSlice(addresses),
		Commitment:     commitment,
	}
}
