package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gabapcia/geyserwatch/internal/pkg/validator"
	"github.com/gabapcia/geyserwatch/internal/txstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	bonkMint = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("json file with the legacy keys", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"rpc_url": "https://grpc.example.com", "auth_token": "secret", "token_addresses": {"usdc": "`+usdcMint+`"}}`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://grpc.example.com", cfg.Endpoint)
		assert.Equal(t, "secret", cfg.Token)
		assert.Equal(t, map[string]string{"usdc": usdcMint}, cfg.Addresses)
		assert.Equal(t, defaultCommitment, cfg.Commitment)
		assert.Equal(t, defaultLogLevel, cfg.LogLevel)
		assert.Equal(t, defaultChannel, cfg.Redis.Channel)
		assert.Equal(t, defaultServiceName, cfg.Telemetry.ServiceName)
		assert.False(t, cfg.Redis.Enabled())
		assert.Equal(t, txstream.CommitmentConfirmed, cfg.CommitmentLevel())
	})

	t.Run("yaml file with nested sections", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
rpc_url: grpc.example.com:10000
token_addresses:
  bonk: `+bonkMint+`
commitment: Finalized
insecure: true
redis:
  addr: localhost:6379
  db: 2
webhook:
  url: https://hooks.example.com/tx
telemetry:
  enabled: true
  service_name: watcher-eu
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "finalized", cfg.Commitment)
		assert.Equal(t, txstream.CommitmentFinalized, cfg.CommitmentLevel())
		assert.True(t, cfg.Insecure)
		assert.True(t, cfg.Redis.Enabled())
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.Equal(t, "https://hooks.example.com/tx", cfg.Webhook.URL)
		assert.True(t, cfg.Telemetry.Enabled)
		assert.Equal(t, "watcher-eu", cfg.Telemetry.ServiceName)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"rpc_url": "file.example.com", "auth_token": "from-file"}`)

		t.Setenv("GEYSERWATCH_ENDPOINT", "env.example.com:443")
		t.Setenv("GEYSERWATCH_ADDRESSES", "usdc:"+usdcMint+",bonk:"+bonkMint)
		t.Setenv("GEYSERWATCH_REDIS_ADDR", "redis:6379")
		t.Setenv("GEYSERWATCH_LOG_LEVEL", "debug")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "env.example.com:443", cfg.Endpoint)
		assert.Equal(t, "from-file", cfg.Token)
		assert.Equal(t, map[string]string{"usdc": usdcMint, "bonk": bonkMint}, cfg.Addresses)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("environment only", func(t *testing.T) {
		t.Setenv("GEYSERWATCH_ENDPOINT", "env.example.com")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "env.example.com", cfg.Endpoint)
		assert.Empty(t, cfg.Addresses)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"rpc_url": [`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Setenv("GEYSERWATCH_ENDPOINT", "env.example.com")
		t.Setenv("GEYSERWATCH_INSECURE", "maybe")

		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{name: "missing endpoint", content: `{"auth_token": "x"}`},
			{name: "address is not a public key", content: `{"rpc_url": "h", "token_addresses": {"usdc": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"}}`},
			{name: "empty label", content: `{"rpc_url": "h", "token_addresses": {"": "` + usdcMint + `"}}`},
			{name: "unknown commitment", content: `{"rpc_url": "h", "commitment": "rooted"}`},
			{name: "unknown log level", content: `{"rpc_url": "h", "log_level": "loud"}`},
			{name: "webhook is not a url", content: `{"rpc_url": "h", "webhook": {"url": "not a url"}}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := writeFile(t, "config.json", tt.content)

				_, err := Load(path)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.ErrorIs(t, err, validator.ErrValidationFailed)
			})
		}
	})
}
