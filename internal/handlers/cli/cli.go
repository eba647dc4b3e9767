package cli

import (
	"context"
	"errors"

	"github.com/gabapcia/geyserwatch/internal/addressregistry"
	"github.com/gabapcia/geyserwatch/internal/txstream"

	"github.com/urfave/cli/v3"
)

// ErrRegistryUnavailable is returned by the registry commands when no redis
// server is configured.
var ErrRegistryUnavailable = errors.New("address registry is not configured")

// Dependencies are the services the commands operate on. They are built
// from the loaded configuration by a Bootstrap function.
type Dependencies struct {
	// Addresses are the label→address pairs from the configuration.
	Addresses map[string]string

	// Registry is nil when no redis server is configured.
	Registry addressregistry.Service

	// NewMonitor builds a monitoring session for the given filter set.
	NewMonitor func(addresses map[string]string) txstream.Service

	// Close releases connections opened while bootstrapping. May be nil.
	Close func() error
}

// Bootstrap loads the configuration found at configPath and wires the
// dependencies. An empty configPath means environment variables only.
type Bootstrap func(ctx context.Context, configPath string) (*Dependencies, error)

// container bootstraps the dependencies on first use, so `help` and
// malformed invocations never touch the network.
type container struct {
	boot Bootstrap
	deps *Dependencies
}

func (c *container) resolve(ctx context.Context, cmd *cli.Command) (*Dependencies, error) {
	if c.deps != nil {
		return c.deps, nil
	}

	deps, err := c.boot(ctx, cmd.String("config"))
	if err != nil {
		return nil, err
	}

	c.deps = deps
	return deps, nil
}

func (c *container) close() error {
	if c.deps == nil || c.deps.Close == nil {
		return nil
	}
	return c.deps.Close()
}

func (c *container) registry(ctx context.Context, cmd *cli.Command) (addressregistry.Service, error) {
	deps, err := c.resolve(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if deps.Registry == nil {
		return nil, ErrRegistryUnavailable
	}
	return deps.Registry, nil
}

func newApp(c *container) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "geyserwatch",
		Description:           "Streams ledger transactions touching a set of watched addresses from a Geyser gRPC endpoint.",
		Usage:                 "geyserwatch [command] [flags]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a JSON or YAML configuration file",
				Sources: cli.EnvVars("GEYSERWATCH_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			startCommand(c),
			watchAddressCommand(c),
			unwatchAddressCommand(c),
			listAddressesCommand(c),
		},
	}
}

// Run executes the geyserwatch CLI with the given arguments. Commands:
//
//   - `start`: streams transactions until interrupted or the stream ends.
//   - `watch`: registers a labelled address in the registry.
//   - `unwatch`: removes a label from the registry.
//   - `list`: prints the registered addresses.
//
// Anything opened by boot is released before Run returns.
func Run(ctx context.Context, args []string, boot Bootstrap) error {
	c := &container{boot: boot}

	err := newApp(c).Run(ctx, args)
	return errors.Join(err, c.close())
}
