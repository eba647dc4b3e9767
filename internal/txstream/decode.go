package txstream

import (
	"fmt"

	"github.com/gabapcia/geyserwatch/internal/pkg/types"
)

// DecodeTransaction renders a transaction update. It expects an update that
// passed IsValidUpdate, but tolerates missing pieces by rendering empty values.
//
// Decoding never fails as a whole. Anomalies stay local to the item they
// affect: an instruction with an out-of-range program index is flagged through
// DecodedInstruction.Error, and out-of-range account indices are left out of
// the instruction's account list. The meta section is rendered only when the
// update carries metadata.
func DecodeTransaction(update TransactionUpdate) DecodedTransaction {
	decoded := DecodedTransaction{Slot: update.Slot}

	info := update.Info
	if info == nil {
		return decoded
	}

	var message *Message
	if info.Transaction != nil {
		message = info.Transaction.Message
	}

	decoded.Signature = decodeSignature(info)

	var keys []types.Base58
	if message != nil {
		keys = decodeAccountKeys(message.AccountKeys)
		decoded.Instructions = decodeInstructions(keys, message.Instructions)
	}
	decoded.AccountKeys = keys

	if info.Meta != nil {
		decoded.Meta = decodeMeta(keys, info.Meta)
	}

	return decoded
}

// decodeSignature prefers the signature reported alongside the update and
// falls back to the first signature of the transaction itself.
func decodeSignature(info *TransactionInfo) types.Base58 {
	if len(info.Signature) > 0 {
		return types.EncodeBase58(info.Signature)
	}

	if info.Transaction != nil && len(info.Transaction.Signatures) > 0 {
		return types.EncodeBase58(info.Transaction.Signatures[0])
	}

	return ""
}

func decodeAccountKeys(raw [][]byte) []types.Base58 {
	keys := make([]types.Base58, 0, len(raw))
	for _, key := range raw {
		keys = append(keys, types.EncodeBase58(key))
	}
	return keys
}

func decodeInstructions(keys []types.Base58, instructions []Instruction) []DecodedInstruction {
	decoded := make([]DecodedInstruction, 0, len(instructions))
	for _, ix := range instructions {
		decoded = append(decoded, decodeInstruction(keys, ix))
	}
	return decoded
}

func decodeInstruction(keys []types.Base58, ix Instruction) DecodedInstruction {
	decoded := DecodedInstruction{
		Accounts: make([]types.Base58, 0, len(ix.Accounts)),
		Data:     types.EncodeBase58(ix.Data),
	}

	if programID, ok := lookup(keys, ix.ProgramIDIndex); ok {
		decoded.ProgramID = programID
	} else {
		decoded.Error = fmt.Sprintf("program id index %d out of range for %d account keys", ix.ProgramIDIndex, len(keys))
	}

	for _, idx := range ix.Accounts {
		if account, ok := lookup(keys, idx); ok {
			decoded.Accounts = append(decoded.Accounts, account)
		}
	}

	return decoded
}

func decodeMeta(keys []types.Base58, meta *TransactionMeta) *DecodedMeta {
	decoded := &DecodedMeta{
		Failed:            meta.Failed,
		Fee:               meta.Fee,
		PreBalances:       meta.PreBalances,
		PostBalances:      meta.PostBalances,
		PreTokenBalances:  decodeTokenBalances(keys, meta.PreTokenBalances),
		PostTokenBalances: decodeTokenBalances(keys, meta.PostTokenBalances),
		LogMessages:       meta.LogMessages,
		Rewards:           make([]DecodedReward, 0, len(meta.Rewards)),
	}

	for _, reward := range meta.Rewards {
		decoded.Rewards = append(decoded.Rewards, DecodedReward(reward))
	}

	if meta.ComputeUnitsConsumed != nil {
		decoded.ComputeUnits = *meta.ComputeUnitsConsumed
	}

	return decoded
}

func decodeTokenBalances(keys []types.Base58, balances []TokenBalance) []DecodedTokenBalance {
	decoded := make([]DecodedTokenBalance, 0, len(balances))
	for _, balance := range balances {
		account, _ := lookup(keys, balance.AccountIndex)
		decoded = append(decoded, DecodedTokenBalance{
			AccountIndex: balance.AccountIndex,
			Account:      account,
			Mint:         balance.Mint,
			Owner:        balance.Owner,
			Amount:       balance.Amount,
			UIAmount:     balance.UIAmount,
			Decimals:     balance.Decimals,
		})
	}
	return decoded
}

// lookup returns keys[idx] when idx is in range.
func lookup(keys []types.Base58, idx uint32) (types.Base58, bool) {
	if int(idx) >= len(keys) {
		return "", false
	}
	return keys[idx], true
}
