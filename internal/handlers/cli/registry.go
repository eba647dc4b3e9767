package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/urfave/cli/v3"
)

// watchAddressCommand returns a CLI command that registers a labelled
// address. Registered addresses join the filter set on the next `start`.
//
// Usage example:
//
//	geyserwatch watch --label usdc --address EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v
func watchAddressCommand(c *container) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Register an account address to be included in the transaction filter.",
		Usage:       "Registers an address under a label. Must provide both label and address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "label",
				Usage:    "Name the address is registered under (e.g., usdc)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Base58 account address to watch",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry, err := c.registry(ctx, cmd)
			if err != nil {
				return err
			}

			return registry.Register(ctx, cmd.String("label"), cmd.String("address"))
		},
	}
}

// unwatchAddressCommand returns a CLI command that removes a label from the
// registry.
//
// Usage example:
//
//	geyserwatch unwatch --label usdc
func unwatchAddressCommand(c *container) *cli.Command {
	return &cli.Command{
		Name:        "unwatch",
		Description: "Remove a registered address from the transaction filter.",
		Usage:       "Unregisters the address stored under a label.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "label",
				Usage:    "Label to remove",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry, err := c.registry(ctx, cmd)
			if err != nil {
				return err
			}

			return registry.Unregister(ctx, cmd.String("label"))
		},
	}
}

// listAddressesCommand prints every registered address, one `label<TAB>address`
// line per entry, sorted by label.
func listAddressesCommand(c *container) *cli.Command {
	return &cli.Command{
		Name:        "list",
		Description: "Print the registered addresses.",
		Usage:       "Lists registered labels and addresses.",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			registry, err := c.registry(ctx, cmd)
			if err != nil {
				return err
			}

			addresses, err := registry.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			for _, label := range slices.Sorted(maps.Keys(addresses)) {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", label, addresses[label]); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
