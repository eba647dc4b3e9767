// Package config loads the process configuration.
//
// Values come from an optional YAML or JSON file and are then overridden by
// GEYSERWATCH_* environment variables. The merged result is validated before
// it is returned, so callers never see a half-valid Config.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabapcia/geyserwatch/internal/pkg/validator"
	"github.com/gabapcia/geyserwatch/internal/txstream"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GEYSERWATCH"

const (
	defaultCommitment  = "confirmed"
	defaultLogLevel    = "info"
	defaultServiceName = "geyserwatch"
	defaultChannel     = "geyserwatch:transactions"
)

// ErrInvalidConfig wraps every error returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

type Redis struct {
	Addr     string `yaml:"addr" envconfig:"ADDR"`
	Username string `yaml:"username" envconfig:"USERNAME"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	DB       int    `yaml:"db" envconfig:"DB" validate:"gte=0"`
	Channel  string `yaml:"channel" envconfig:"CHANNEL"`
}

// Enabled reports whether a redis server was configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

type Webhook struct {
	URL string `yaml:"url" envconfig:"URL" validate:"omitempty,http_url"`
}

type Telemetry struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
}

// Config is the merged process configuration. The first three file keys
// keep the names used by existing config.json files.
type Config struct {
	Endpoint   string            `yaml:"rpc_url" envconfig:"ENDPOINT" validate:"required"`
	Token      string            `yaml:"auth_token" envconfig:"TOKEN"`
	Addresses  map[string]string `yaml:"token_addresses" envconfig:"ADDRESSES" validate:"dive,keys,required,endkeys,required,pubkey"`
	Commitment string            `yaml:"commitment" envconfig:"COMMITMENT" validate:"oneof=processed confirmed finalized"`
	Insecure   bool              `yaml:"insecure" envconfig:"INSECURE"`
	LogLevel   string            `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	Redis     Redis     `yaml:"redis" envconfig:"REDIS"`
	Webhook   Webhook   `yaml:"webhook" envconfig:"WEBHOOK"`
	Telemetry Telemetry `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// CommitmentLevel returns the parsed commitment. Load has already validated it.
func (c Config) CommitmentLevel() txstream.CommitmentLevel {
	level, err := txstream.ParseCommitment(c.Commitment)
	if err != nil {
		return txstream.CommitmentConfirmed
	}
	return level
}

// Load reads the file at path (skipped when path is empty), applies the
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err)
	}

	cfg.applyDefaults()

	if err := validator.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Commitment = cmp.Or(strings.ToLower(strings.TrimSpace(c.Commitment)), defaultCommitment)
	c.LogLevel = cmp.Or(strings.ToLower(strings.TrimSpace(c.LogLevel)), defaultLogLevel)
	c.Redis.Channel = cmp.Or(c.Redis.Channel, defaultChannel)
	c.Telemetry.ServiceName = cmp.Or(c.Telemetry.ServiceName, defaultServiceName)
}
