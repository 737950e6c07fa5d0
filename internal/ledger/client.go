// Package ledger wraps the RPC transport behind the narrow read surface the
// mirror consumes: single and bulk account reads bound to one commitment
// level.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client wraps a solana-go RPC client and fixes the commitment level used
// for every read.
type Client struct {
	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
}

// NewClient creates a client for the RPC URL at the given commitment.
func NewClient(rpcURL string, commitment rpc.CommitmentType) *Client {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &Client{
		rpcClient:  rpc.New(rpcURL),
		commitment: commitment,
	}
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// Commitment returns the commitment level every read is bound to.
func (c *Client) Commitment() rpc.CommitmentType {
	return c.commitment
}

// GetAccountInfo reads one account. A nil buffer with a nil error means the
// account does not exist at this commitment. The returned slot is the ledger
// version the read was served at.
func (c *Client) GetAccountInfo(ctx context.Context, key solana.PublicKey) ([]byte, uint64, error) {
	res, err := c.rpcClient.GetAccountInfoWithOpts(ctx, key, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("get account info %s: %w", key, err)
	}
	slot := res.RPCContext.Context.Slot
	if res.Value == nil {
		return nil, slot, nil
	}
	return res.Value.Data.GetBinary(), slot, nil
}

// GetMultipleAccounts reads a batch of accounts in one round trip. The result
// is positionally aligned with keys; a nil entry means that account does not
// exist. All entries share the returned slot.
func (c *Client) GetMultipleAccounts(ctx context.Context, keys []solana.PublicKey) ([][]byte, uint64, error) {
	if len(keys) == 0 {
		return nil, 0, nil
	}
	res, err := c.rpcClient.GetMultipleAccountsWithOpts(ctx, keys, &rpc.GetMultipleAccountsOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("get multiple accounts: %w", err)
	}
	buffers := make([][]byte, len(keys))
	for i, account := range res.Value {
		if account == nil {
			continue
		}
		buffers[i] = account.Data.GetBinary()
	}
	return buffers, res.RPCContext.Context.Slot, nil
}

// ParseCommitment maps a config string to a commitment level.
func ParseCommitment(s string) (rpc.CommitmentType, error) {
	switch s {
	case "", "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "processed":
		return rpc.CommitmentProcessed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unknown commitment level: %s", s)
	}
}
