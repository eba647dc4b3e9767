package txstream

import "github.com/gabapcia/geyserwatch/internal/pkg/types"

// DecodedTransaction is the rendered form of one validated transaction update.
// Fields are declared in the order they are emitted.
type DecodedTransaction struct {
	Filter       string               `json:"filter"`
	Signature    types.Base58         `json:"signature"`
	Slot         uint64               `json:"slot"`
	AccountKeys  []types.Base58       `json:"accountKeys"`
	Instructions []DecodedInstruction `json:"instructions"`
	Meta         *DecodedMeta         `json:"meta,omitempty"`
}

// DecodedInstruction is one instruction with its indices resolved to addresses.
//
// When the program index falls outside the account key list, ProgramID is empty
// and Error describes the problem. Accounts only lists indices that resolved.
type DecodedInstruction struct {
	ProgramID types.Base58   `json:"programId"`
	Accounts  []types.Base58 `json:"accounts"`
	Data      types.Base58   `json:"data"`
	Error     string         `json:"error,omitempty"`
}

// DecodedMeta holds the rendered transaction metadata.
type DecodedMeta struct {
	Failed            bool                  `json:"failed"`
	Fee               uint64                `json:"fee"`
	PreBalances       []uint64              `json:"preBalances"`
	PostBalances      []uint64              `json:"postBalances"`
	PreTokenBalances  []DecodedTokenBalance `json:"preTokenBalances"`
	PostTokenBalances []DecodedTokenBalance `json:"postTokenBalances"`
	LogMessages       []string              `json:"logMessages"`
	Rewards           []DecodedReward       `json:"rewards"`
	ComputeUnits      uint64                `json:"computeUnitsConsumed"`
}

// DecodedTokenBalance is a token balance entry. Account is the address at
// AccountIndex, left empty when the index does not resolve.
type DecodedTokenBalance struct {
	AccountIndex uint32       `json:"accountIndex"`
	Account      types.Base58 `json:"account,omitempty"`
	Mint         string       `json:"mint"`
	Owner        string       `json:"owner,omitempty"`
	Amount       string       `json:"amount,omitempty"`
	UIAmount     string       `json:"uiAmount"`
	Decimals     uint32       `json:"decimals"`
}

type DecodedReward struct {
	Pubkey      string `json:"pubkey"`
	Lamports    int64  `json:"lamports"`
	PostBalance uint64 `json:"postBalance"`
	RewardType  string `json:"rewardType"`
	Commission  string `json:"commission,omitempty"`
}
