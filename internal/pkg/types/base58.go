package types

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Base58 represents binary ledger data (account keys, signatures, instruction
// payloads) rendered with the Bitcoin Base58 alphabet.
type Base58 string

// EncodeBase58 renders raw bytes as Base58 text.
//
// The encoding is deterministic and total over any byte sequence. No check is
// made on whether the bytes form a real address: the output is purely
// representational, so the same function serves keys, signatures and opaque
// instruction data alike. An empty input yields an empty string.
func EncodeBase58(raw []byte) Base58 {
	return Base58(base58.Encode(raw))
}

// String returns the Base58 text.
func (b Base58) String() string {
	return string(b)
}

// IsPublicKey reports whether the value decodes to a 32-byte ed25519 public key,
// which is the shape of every Solana account address.
func (b Base58) IsPublicKey() bool {
	_, err := solana.PublicKeyFromBase58(string(b))
	return err == nil
}

// MarshalJSON encodes the Base58 as a JSON string.
func (b Base58) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(b))
}
