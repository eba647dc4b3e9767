package cli

import (
	"testing"

	addressregistrytest "github.com/gabapcia/geyserwatch/internal/addressregistry/mocks"
	"github.com/gabapcia/geyserwatch/internal/txstream"
	txstreamtest "github.com/gabapcia/geyserwatch/internal/txstream/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/urfave/cli/v3"
)

const bonkMint = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"

func TestMergeAddresses(t *testing.T) {
	tests := []struct {
		name       string
		configured map[string]string
		registered map[string]string
		want       map[string]string
	}{
		{
			name: "both empty",
			want: map[string]string{},
		},
		{
			name:       "configured only",
			configured: map[string]string{"usdc": usdcMint},
			want:       map[string]string{"usdc": usdcMint},
		},
		{
			name:       "union of both",
			configured: map[string]string{"usdc": usdcMint},
			registered: map[string]string{"bonk": bonkMint},
			want:       map[string]string{"usdc": usdcMint, "bonk": bonkMint},
		},
		{
			name:       "configured label wins",
			configured: map[string]string{"usdc": usdcMint},
			registered: map[string]string{"usdc": bonkMint},
			want:       map[string]string{"usdc": usdcMint},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeAddresses(t.Context(), tt.configured, tt.registered))
		})
	}
}

func TestMergeAddresses_DoesNotMutateInputs(t *testing.T) {
	registered := map[string]string{"bonk": bonkMint}

	_ = mergeAddresses(t.Context(), map[string]string{"usdc": usdcMint}, registered)

	assert.Equal(t, map[string]string{"bonk": bonkMint}, registered)
}

func TestStartCommand(t *testing.T) {
	t.Run("runs a session over the merged filter set", func(t *testing.T) {
		registry := addressregistrytest.NewService(t)
		registry.EXPECT().List(mock.Anything).Return(map[string]string{"bonk": bonkMint}, nil).Once()

		monitor := txstreamtest.NewService(t)
		monitor.EXPECT().Run(mock.Anything).Return(nil).Once()

		var got map[string]string
		deps := &Dependencies{
			Addresses: map[string]string{"usdc": usdcMint},
			Registry:  registry,
			NewMonitor: func(addresses map[string]string) txstream.Service {
				got = addresses
				return monitor
			},
		}

		app := &cli.Command{Commands: []*cli.Command{startCommand(staticContainer(deps))}}

		assert.NoError(t, app.Run(t.Context(), []string{"test", "start"}))
		assert.Equal(t, map[string]string{"usdc": usdcMint, "bonk": bonkMint}, got)
	})

	t.Run("works without a registry", func(t *testing.T) {
		monitor := txstreamtest.NewService(t)
		monitor.EXPECT().Run(mock.Anything).Return(nil).Once()

		deps := &Dependencies{
			Addresses:  map[string]string{"usdc": usdcMint},
			NewMonitor: func(map[string]string) txstream.Service { return monitor },
		}

		app := &cli.Command{Commands: []*cli.Command{startCommand(staticContainer(deps))}}

		assert.NoError(t, app.Run(t.Context(), []string{"test", "start"}))
	})

	t.Run("refuses an empty filter set", func(t *testing.T) {
		deps := &Dependencies{
			NewMonitor: func(map[string]string) txstream.Service {
				t.Fatal("monitor must not be built")
				return nil
			},
		}

		app := &cli.Command{Commands: []*cli.Command{startCommand(staticContainer(deps))}}

		assert.ErrorIs(t, app.Run(t.Context(), []string{"test", "start"}), ErrNoAddresses)
	})

	t.Run("returns session errors", func(t *testing.T) {
		monitor := txstreamtest.NewService(t)
		monitor.EXPECT().Run(mock.Anything).Return(assert.AnError).Once()

		deps := &Dependencies{
			Addresses:  map[string]string{"usdc": usdcMint},
			NewMonitor: func(map[string]string) txstream.Service { return monitor },
		}

		app := &cli.Command{Commands: []*cli.Command{startCommand(staticContainer(deps))}}

		assert.ErrorIs(t, app.Run(t.Context(), []string{"test", "start"}), assert.AnError)
	})

	t.Run("returns registry errors", func(t *testing.T) {
		registry := addressregistrytest.NewService(t)
		registry.EXPECT().List(mock.Anything).Return(nil, assert.AnError).Once()

		deps := &Dependencies{
			Addresses: map[string]string{"usdc": usdcMint},
			Registry:  registry,
		}

		app := &cli.Command{Commands: []*cli.Command{startCommand(staticContainer(deps))}}

		assert.ErrorIs(t, app.Run(t.Context(), []string{"test", "start"}), assert.AnError)
	})
}
