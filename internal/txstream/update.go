package txstream

// UpdateKind identifies which variant an UpdateEnvelope carries.
type UpdateKind int

const (
	UpdateKindUnknown UpdateKind = iota
	UpdateKindAccount
	UpdateKindSlot
	UpdateKindTransaction
	UpdateKindTransactionStatus
	UpdateKindBlock
	UpdateKindBlockMeta
	UpdateKindEntry
	UpdateKindPing
	UpdateKindPong
)

var updateKindNames = map[UpdateKind]string{
	UpdateKindUnknown:           "unknown",
	UpdateKindAccount:           "account",
	UpdateKindSlot:              "slot",
	UpdateKindTransaction:       "transaction",
	UpdateKindTransactionStatus: "transaction_status",
	UpdateKindBlock:             "block",
	UpdateKindBlockMeta:         "block_meta",
	UpdateKindEntry:             "entry",
	UpdateKindPing:              "ping",
	UpdateKindPong:              "pong",
}

func (k UpdateKind) String() string {
	if name, ok := updateKindNames[k]; ok {
		return name
	}
	return updateKindNames[UpdateKindUnknown]
}

// UpdateEnvelope is one inbound message from the stream.
//
// Kind tags the variant. Only the transaction variant has a payload in this
// model (Transaction); every other kind is carried as a bare tag so callers can
// tell them apart without decoding them.
type UpdateEnvelope struct {
	Kind        UpdateKind
	Filters     []string           // names of the subscription filters that matched
	Transaction *TransactionUpdate // set only when Kind is UpdateKindTransaction
}

// TransactionUpdate is the payload of a transaction update.
type TransactionUpdate struct {
	Slot uint64
	Info *TransactionInfo
}

// TransactionInfo wraps a transaction with its execution metadata.
type TransactionInfo struct {
	Signature   []byte
	IsVote      bool
	Index       uint64
	Transaction *Transaction
	Meta        *TransactionMeta // nil when the server sent no metadata
}

type Transaction struct {
	Signatures [][]byte
	Message    *Message
}

type Message struct {
	AccountKeys     [][]byte
	RecentBlockhash []byte
	Instructions    []Instruction
	Versioned       bool
}

// Instruction references its program and accounts by position in
// Message.AccountKeys. The indices come straight from the wire and may point
// past the end of the key list.
type Instruction struct {
	ProgramIDIndex uint32
	Accounts       []uint32
	Data           []byte
}

// TransactionMeta is the post-execution accounting attached to a transaction.
type TransactionMeta struct {
	Failed               bool
	Err                  []byte // raw error payload, set only when Failed
	Fee                  uint64
	PreBalances          []uint64
	PostBalances         []uint64
	PreTokenBalances     []TokenBalance
	PostTokenBalances    []TokenBalance
	LogMessages          []string
	Rewards              []Reward
	ComputeUnitsConsumed *uint64
}

type TokenBalance struct {
	AccountIndex uint32
	Mint         string
	Owner        string
	Amount       string // raw integer amount
	UIAmount     string // decimal-adjusted amount as reported by the server
	Decimals     uint32
}

type Reward struct {
	Pubkey      string
	Lamports    int64
	PostBalance uint64
	RewardType  string
	Commission  string
}
