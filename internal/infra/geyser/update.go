package geyser

import (
	"strconv"

	"github.com/gabapcia/geyserwatch/internal/txstream"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
)

func toCommitment(level txstream.CommitmentLevel) pb.CommitmentLevel {
	switch level {
	case txstream.CommitmentProcessed:
		return pb.CommitmentLevel_PROCESSED
	case txstream.CommitmentFinalized:
		return pb.CommitmentLevel_FINALIZED
	default:
		return pb.CommitmentLevel_CONFIRMED
	}
}

// toSubscribeRequest declares a single transaction filter group. Vote and
// failed flags are left unset so the server sends both kinds.
func toSubscribeRequest(req txstream.SubscriptionRequest) *pb.SubscribeRequest {
	commitment := toCommitment(req.Commitment)

	return &pb.SubscribeRequest{
		Transactions: map[string]*pb.SubscribeRequestFilterTransactions{
			req.FilterName: {AccountInclude: req.AccountInclude},
		},
		Commitment: &commitment,
	}
}

func toUpdateEnvelope(update *pb.SubscribeUpdate) txstream.UpdateEnvelope {
	envelope := txstream.UpdateEnvelope{Filters: update.GetFilters()}

	switch oneof := update.GetUpdateOneof().(type) {
	case *pb.SubscribeUpdate_Transaction:
		envelope.Kind = txstream.UpdateKindTransaction
		envelope.Transaction = toTransactionUpdate(oneof.Transaction)
	case *pb.SubscribeUpdate_Account:
		envelope.Kind = txstream.UpdateKindAccount
	case *pb.SubscribeUpdate_Slot:
		envelope.Kind = txstream.UpdateKindSlot
	case *pb.SubscribeUpdate_TransactionStatus:
		envelope.Kind = txstream.UpdateKindTransactionStatus
	case *pb.SubscribeUpdate_Block:
		envelope.Kind = txstream.UpdateKindBlock
	case *pb.SubscribeUpdate_BlockMeta:
		envelope.Kind = txstream.UpdateKindBlockMeta
	case *pb.SubscribeUpdate_Entry:
		envelope.Kind = txstream.UpdateKindEntry
	case *pb.SubscribeUpdate_Ping:
		envelope.Kind = txstream.UpdateKindPing
	case *pb.SubscribeUpdate_Pong:
		envelope.Kind = txstream.UpdateKindPong
	default:
		envelope.Kind = txstream.UpdateKindUnknown
	}

	return envelope
}

func toTransactionUpdate(update *pb.SubscribeUpdateTransaction) *txstream.TransactionUpdate {
	if update == nil {
		return nil
	}

	return &txstream.TransactionUpdate{
		Slot: update.GetSlot(),
		Info: toTransactionInfo(update.GetTransaction()),
	}
}

func toTransactionInfo(info *pb.SubscribeUpdateTransactionInfo) *txstream.TransactionInfo {
	if info == nil {
		return nil
	}

	return &txstream.TransactionInfo{
		Signature:   info.GetSignature(),
		IsVote:      info.GetIsVote(),
		Index:       info.GetIndex(),
		Transaction: toTransaction(info.GetTransaction()),
		Meta:        toTransactionMeta(info.GetMeta()),
	}
}

func toTransaction(tx *pb.Transaction) *txstream.Transaction {
	if tx == nil {
		return nil
	}

	return &txstream.Transaction{
		Signatures: tx.GetSignatures(),
		Message:    toMessage(tx.GetMessage()),
	}
}

func toMessage(msg *pb.Message) *txstream.Message {
	if msg == nil {
		return nil
	}

	instructions := make([]txstream.Instruction, 0, len(msg.GetInstructions()))
	for _, ix := range msg.GetInstructions() {
		if ix == nil {
			continue
		}

		// Account indices travel as one byte each.
		accounts := make([]uint32, 0, len(ix.GetAccounts()))
		for _, idx := range ix.GetAccounts() {
			accounts = append(accounts, uint32(idx))
		}

		instructions = append(instructions, txstream.Instruction{
			ProgramIDIndex: ix.GetProgramIdIndex(),
			Accounts:       accounts,
			Data:           ix.GetData(),
		})
	}

	return &txstream.Message{
		AccountKeys:     msg.GetAccountKeys(),
		RecentBlockhash: msg.GetRecentBlockhash(),
		Instructions:    instructions,
		Versioned:       msg.GetVersioned(),
	}
}

func toTransactionMeta(meta *pb.TransactionStatusMeta) *txstream.TransactionMeta {
	if meta == nil {
		return nil
	}

	converted := &txstream.TransactionMeta{
		Fee:               meta.GetFee(),
		PreBalances:       meta.GetPreBalances(),
		PostBalances:      meta.GetPostBalances(),
		PreTokenBalances:  toTokenBalances(meta.GetPreTokenBalances()),
		PostTokenBalances: toTokenBalances(meta.GetPostTokenBalances()),
		LogMessages:       meta.GetLogMessages(),
		Rewards:           toRewards(meta.GetRewards()),
	}

	if txErr := meta.GetErr(); txErr != nil {
		converted.Failed = true
		converted.Err = txErr.GetErr()
	}

	if meta.ComputeUnitsConsumed != nil {
		units := *meta.ComputeUnitsConsumed
		converted.ComputeUnitsConsumed = &units
	}

	return converted
}

func toTokenBalances(balances []*pb.TokenBalance) []txstream.TokenBalance {
	converted := make([]txstream.TokenBalance, 0, len(balances))
	for _, balance := range balances {
		if balance == nil {
			continue
		}

		amount := balance.GetUiTokenAmount()
		converted = append(converted, txstream.TokenBalance{
			AccountIndex: balance.GetAccountIndex(),
			Mint:         balance.GetMint(),
			Owner:        balance.GetOwner(),
			Amount:       amount.GetAmount(),
			UIAmount:     uiAmount(amount),
			Decimals:     amount.GetDecimals(),
		})
	}
	return converted
}

// uiAmount prefers the server's preformatted string over the float value.
func uiAmount(amount *pb.UiTokenAmount) string {
	if s := amount.GetUiAmountString(); s != "" {
		return s
	}
	return strconv.FormatFloat(amount.GetUiAmount(), 'f', -1, 64)
}

func toRewards(rewards []*pb.Reward) []txstream.Reward {
	converted := make([]txstream.Reward, 0, len(rewards))
	for _, reward := range rewards {
		if reward == nil {
			continue
		}

		converted = append(converted, txstream.Reward{
			Pubkey:      reward.GetPubkey(),
			Lamports:    reward.GetLamports(),
			PostBalance: reward.GetPostBalance(),
			RewardType:  reward.GetRewardType().String(),
			Commission:  reward.GetCommission(),
		})
	}
	return converted
}
