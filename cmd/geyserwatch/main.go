package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gabapcia/geyserwatch/internal/addressregistry"
	"github.com/gabapcia/geyserwatch/internal/config"
	"github.com/gabapcia/geyserwatch/internal/handlers/cli"
	"github.com/gabapcia/geyserwatch/internal/infra/geyser"
	"github.com/gabapcia/geyserwatch/internal/infra/notifier/webhook"
	"github.com/gabapcia/geyserwatch/internal/infra/sink/console"
	"github.com/gabapcia/geyserwatch/internal/infra/storage/redis"
	"github.com/gabapcia/geyserwatch/internal/pkg/logger"
	"github.com/gabapcia/geyserwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/geyserwatch/internal/pkg/telemetry"
	transporthttp "github.com/gabapcia/geyserwatch/internal/pkg/transport/http"
	"github.com/gabapcia/geyserwatch/internal/txstream"
)

const shutdownTimeout = 5 * time.Second

// Webhook bounds. Sinks run inline in the receive loop.
const (
	webhookTimeout      = 2 * time.Second
	webhookRetryMax     = 1
	webhookRetryWaitMin = 100 * time.Millisecond
	webhookRetryWaitMax = 500 * time.Millisecond
)

func newWebhookSink(url string) (txstream.Sink, error) {
	hook, err := webhook.New(url,
		transporthttp.WithTimeout(webhookTimeout),
		transporthttp.WithRetryMax(webhookRetryMax),
		transporthttp.WithRetryWait(webhookRetryWaitMin, webhookRetryWaitMax),
	)
	if err != nil {
		return nil, err
	}
	return hook, nil
}

func bootstrap(ctx context.Context, configPath string) (*cli.Dependencies, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, fmt.Errorf("init telemetry: %w", err)
		}

		closers = append(closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return shutdown(ctx)
		})
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, errors.Join(fmt.Errorf("init logger: %w", err), closeAll())
	}
	closers = append(closers, func() error {
		_ = logger.Sync()
		return nil
	})

	sinks := []txstream.Sink{console.New(os.Stdout)}
	deps := &cli.Dependencies{
		Addresses: cfg.Addresses,
		Close:     closeAll,
	}

	if cfg.Redis.Enabled() {
		rc, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB, redis.WithChannel(cfg.Redis.Channel))
		if err != nil {
			return nil, errors.Join(fmt.Errorf("connect redis: %w", err), closeAll())
		}

		closers = append(closers, rc.Close)
		deps.Registry = addressregistry.New(rc)
		sinks = append(sinks, rc)
	}

	if cfg.Webhook.URL != "" {
		hook, err := newWebhookSink(cfg.Webhook.URL)
		if err != nil {
			return nil, errors.Join(err, closeAll())
		}
		sinks = append(sinks, hook)
	}

	transport, err := geyser.NewClient(cfg.Endpoint, cfg.Token,
		geyser.WithInsecure(cfg.Insecure),
		geyser.WithRetry(retry.New(
			retry.WithAttempts(5),
			retry.WithDelay(time.Second),
			retry.WithMaxDelay(10*time.Second),
			retry.WithRetryIf(geyser.IsRetryable),
		)),
	)
	if err != nil {
		return nil, errors.Join(err, closeAll())
	}

	deps.NewMonitor = func(addresses map[string]string) txstream.Service {
		return txstream.New(transport, addresses,
			txstream.WithCommitment(cfg.CommitmentLevel()),
			txstream.WithSink(sinks...),
		)
	}

	logger.Info(ctx, "geyserwatch configured",
		"geyser.endpoint", cfg.Endpoint,
		"stream.commitment", cfg.Commitment,
		"redis.enabled", cfg.Redis.Enabled(),
		"webhook.enabled", cfg.Webhook.URL != "",
		"telemetry.enabled", cfg.Telemetry.Enabled,
	)

	return deps, nil
}

func main() {
	if err := cli.Run(context.Background(), os.Args, bootstrap); err != nil {
		fmt.Fprintln(os.Stderr, "geyserwatch:", err)
		os.Exit(1)
	}
}
