package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenProgram = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

func TestFormatError(t *testing.T) {
	t.Run("should transform validation errors to formatted errors", func(t *testing.T) {
		type Filter struct {
			Label string `validate:"required"`
		}

		err := gvalidator.New().Struct(Filter{})
		require.Error(t, err)

		formattedErr := formatError(err)
		assert.ErrorIs(t, formattedErr, ErrValidationFailed)
		assert.Contains(t, formattedErr.Error(), `Label: value "" fails "required"`)
	})

	t.Run("should return original error when not validation error", func(t *testing.T) {
		originalErr := errors.New("redis connection refused")
		assert.Equal(t, originalErr, formatError(originalErr))
	})
}

func TestValidate(t *testing.T) {
	type Subscription struct {
		Endpoint   string            `validate:"required"`
		Commitment string            `validate:"required,oneof=processed confirmed finalized"`
		Addresses  map[string]string `validate:"dive,keys,required,endkeys,required,pubkey"`
	}

	t.Run("should pass with a well formed subscription", func(t *testing.T) {
		err := Validate(Subscription{
			Endpoint:   "grpc.example.com:443",
			Commitment: "confirmed",
			Addresses:  map[string]string{"tokenProgram": tokenProgram},
		})
		assert.NoError(t, err)
	})

	t.Run("should pass with no addresses", func(t *testing.T) {
		err := Validate(Subscription{Endpoint: "localhost:10000", Commitment: "processed"})
		assert.NoError(t, err)
	})

	t.Run("should fail when an address is not a public key", func(t *testing.T) {
		err := Validate(Subscription{
			Endpoint:   "localhost:10000",
			Commitment: "finalized",
			Addresses:  map[string]string{"bad": "0xdeadbeef"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), `fails "pubkey"`)
	})

	t.Run("should fail when a label is empty", func(t *testing.T) {
		err := Validate(Subscription{
			Endpoint:   "localhost:10000",
			Commitment: "confirmed",
			Addresses:  map[string]string{"": tokenProgram},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("should report every failing field", func(t *testing.T) {
		err := Validate(Subscription{Commitment: "eventual"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)

		errStr := err.Error()
		assert.Contains(t, errStr, `Endpoint: value "" fails "required"`)
		assert.Contains(t, errStr, `Commitment: value "eventual" fails "oneof=processed confirmed finalized"`)
	})

	t.Run("should fail when input is not struct", func(t *testing.T) {
		for _, input := range []any{"address", 42, nil, []string{tokenProgram}} {
			assert.Error(t, Validate(input))
		}
	})
}

func TestValidate_FieldNames(t *testing.T) {
	type Config struct {
		Endpoint  string            `yaml:"rpc_url" validate:"required"`
		Addresses map[string]string `yaml:"token_addresses,omitempty" validate:"dive,pubkey"`
		Channel   string            `json:"channel" validate:"required"`
		Token     string            `yaml:"-" validate:"required"`
	}

	err := Validate(Config{Addresses: map[string]string{"usdc": "nope"}})
	require.ErrorIs(t, err, ErrValidationFailed)

	errStr := err.Error()
	assert.Contains(t, errStr, `rpc_url: value "" fails "required"`)
	assert.Contains(t, errStr, `token_addresses[usdc]: value "nope" fails "pubkey"`)
	assert.Contains(t, errStr, `channel: value "" fails "required"`)
	assert.Contains(t, errStr, `Token: value "" fails "required"`)
}

func TestPubkeyTag(t *testing.T) {
	type Input struct {
		Address string `validate:"pubkey"`
	}

	testCases := []struct {
		name    string
		address string
		valid   bool
	}{
		{name: "token program", address: tokenProgram, valid: true},
		{name: "system program", address: "11111111111111111111111111111111", valid: true},
		{name: "too short", address: "StV1DL6CwTryKyV", valid: false},
		{name: "outside alphabet", address: "0OIl", valid: false},
		{name: "empty", address: "", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(Input{Address: tc.address})
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}
