// Package console renders decoded transactions as human-readable text blocks.
package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gabapcia/geyserwatch/internal/pkg/types"
	"github.com/gabapcia/geyserwatch/internal/txstream"
)

type sink struct {
	mu  sync.Mutex
	out io.Writer
}

var _ txstream.Sink = (*sink)(nil)

// New returns a sink writing to out. Each transaction is written with a
// single Write call so concurrent sessions sharing a writer never interleave.
func New(out io.Writer) *sink {
	return &sink{out: out}
}

func (s *sink) Publish(_ context.Context, tx txstream.DecodedTransaction) error {
	var buf bytes.Buffer
	Render(&buf, tx)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.out.Write(buf.Bytes())
	return err
}

// Render writes the text form of tx to buf. The metadata sections are only
// written when tx carries metadata.
func Render(buf *bytes.Buffer, tx txstream.DecodedTransaction) {
	fmt.Fprintf(buf, "\nTransaction Signature: %s\n", tx.Signature)
	fmt.Fprintf(buf, "Slot: %d\n", tx.Slot)

	buf.WriteString("Account Keys:\n")
	for _, key := range tx.AccountKeys {
		fmt.Fprintf(buf, "  - %s\n", key)
	}

	buf.WriteString("Instructions:\n")
	for _, ix := range tx.Instructions {
		if ix.Error != "" {
			fmt.Fprintf(buf, "  Program ID: <unresolved> (%s)\n", ix.Error)
		} else {
			fmt.Fprintf(buf, "  Program ID: %s\n", ix.ProgramID)
		}
		fmt.Fprintf(buf, "  Accounts: [%s]\n", joinKeys(ix.Accounts))
		fmt.Fprintf(buf, "  Data: %s\n", ix.Data)
	}

	if meta := tx.Meta; meta != nil {
		if meta.Failed {
			buf.WriteString("Status: failed\n")
		}
		fmt.Fprintf(buf, "Transaction Fee: %d\n", meta.Fee)

		writeBalances(buf, "Pre Balances:", meta.PreBalances)
		writeBalances(buf, "Post Balances:", meta.PostBalances)
		writeTokenBalances(buf, "Pre Token Balances:", meta.PreTokenBalances)
		writeTokenBalances(buf, "Post Token Balances:", meta.PostTokenBalances)

		buf.WriteString("Log Messages:\n")
		for _, line := range meta.LogMessages {
			fmt.Fprintf(buf, "  %s\n", line)
		}

		buf.WriteString("Rewards:\n")
		for _, r := range meta.Rewards {
			fmt.Fprintf(buf, "  Pubkey: %s, Lamports: %d, Post Balance: %d, Reward Type: %s\n",
				r.Pubkey, r.Lamports, r.PostBalance, r.RewardType)
		}

		fmt.Fprintf(buf, "Compute Units Consumed: %d\n", meta.ComputeUnits)
	}

	buf.WriteString("\n")
}

func joinKeys(keys []types.Base58) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = "'" + k.String() + "'"
	}
	return strings.Join(parts, ", ")
}

func writeBalances(buf *bytes.Buffer, title string, balances []uint64) {
	buf.WriteString(title + "\n")
	for _, b := range balances {
		fmt.Fprintf(buf, "  %d\n", b)
	}
}

func writeTokenBalances(buf *bytes.Buffer, title string, balances []txstream.DecodedTokenBalance) {
	buf.WriteString(title + "\n")
	for _, b := range balances {
		fmt.Fprintf(buf, "  Account Index: %d, Mint: %s, Amount: %s, UI Amount: %s\n",
			b.AccountIndex, b.Mint, b.Amount, b.UIAmount)
	}
}
