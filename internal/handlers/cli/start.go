package cli

import (
	"context"
	"errors"
	"maps"
	"os/signal"
	"syscall"

	"github.com/gabapcia/geyserwatch/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// ErrNoAddresses is returned by `start` when neither the configuration nor
// the registry provides an address to filter on.
var ErrNoAddresses = errors.New("no addresses to watch")

// mergeAddresses combines configured and registered addresses. Configured
// labels win when both define the same label.
func mergeAddresses(ctx context.Context, configured, registered map[string]string) map[string]string {
	merged := maps.Clone(registered)
	if merged == nil {
		merged = make(map[string]string, len(configured))
	}

	for label, address := range configured {
		if other, ok := merged[label]; ok && other != address {
			logger.Warn(ctx, "configured address overrides registry entry",
				"address.label", label,
				"address.configured", address,
				"address.registered", other,
			)
		}
		merged[label] = address
	}

	return merged
}

// startCommand returns the command running a monitoring session. It blocks
// until SIGINT/SIGTERM or until the server ends the stream.
//
// Usage example:
//
//	geyserwatch --config config.json start
func startCommand(c *container) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Subscribes to the Geyser stream and renders every transaction touching a watched address.",
		Usage:       "Runs a monitoring session. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deps, err := c.resolve(ctx, cmd)
			if err != nil {
				return err
			}

			var registered map[string]string
			if deps.Registry != nil {
				if registered, err = deps.Registry.List(ctx); err != nil {
					return err
				}
			}

			addresses := mergeAddresses(ctx, deps.Addresses, registered)
			if len(addresses) == 0 {
				return ErrNoAddresses
			}

			if err := deps.NewMonitor(addresses).Run(ctx); err != nil {
				logger.Error(ctx, "monitoring session failed", "error", err)
				return err
			}

			return nil
		},
	}
}
