package stub

import (
	"context"
	"errors"

	"raydium-farm-server/internal/solana"
)

// ErrNotFound is returned when the stub has no data for a key.
var ErrNotFound = errors.New("not found")

// RPCClient implements solana.RPCClient for testing.
type RPCClient struct {
	Accounts      map[string]*solana.AccountInfo
	Balances      map[string]uint64
	TokenBalances map[string]*solana.TokenAmount
	TokenAccounts map[string][]solana.TokenAccount // keyed by owner
	Samples       []solana.PerformanceSample

	// SentTransactions records every SendTransaction payload; SendErr,
	// when set, is returned instead of a signature.
	SentTransactions [][]byte
	SendErr          error
	Signature        string
	Blockhash        string
}

// NewRPCClient creates a new stub RPC client.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Accounts:      make(map[string]*solana.AccountInfo),
		Balances:      make(map[string]uint64),
		TokenBalances: make(map[string]*solana.TokenAmount),
		TokenAccounts: make(map[string][]solana.TokenAccount),
		Signature:     "stub-signature",
		Blockhash:     "11111111111111111111111111111111",
	}
}

// GetLatestBlockhash returns the stubbed blockhash.
func (c *RPCClient) GetLatestBlockhash(_ context.Context) (string, error) {
	return c.Blockhash, nil
}

// GetAccountInfo returns the stubbed account, or nil when absent.
func (c *RPCClient) GetAccountInfo(_ context.Context, pubkey string) (*solana.AccountInfo, error) {
	return c.Accounts[pubkey], nil
}

// GetBalance returns the stubbed lamport balance.
func (c *RPCClient) GetBalance(_ context.Context, pubkey string) (uint64, error) {
	return c.Balances[pubkey], nil
}

// GetTokenAccountBalance returns the stubbed token balance.
func (c *RPCClient) GetTokenAccountBalance(_ context.Context, pubkey string) (*solana.TokenAmount, error) {
	bal, ok := c.TokenBalances[pubkey]
	if !ok {
		return nil, ErrNotFound
	}
	return bal, nil
}

// GetTokenAccountsByOwner returns the stubbed token accounts for an owner.
func (c *RPCClient) GetTokenAccountsByOwner(_ context.Context, owner, _ string) ([]solana.TokenAccount, error) {
	return c.TokenAccounts[owner], nil
}

// GetRecentPerformanceSamples returns up to limit stubbed samples.
func (c *RPCClient) GetRecentPerformanceSamples(_ context.Context, limit int) ([]solana.PerformanceSample, error) {
	if limit > len(c.Samples) {
		limit = len(c.Samples)
	}
	return c.Samples[:limit], nil
}

// SendTransaction records the payload and returns the stubbed signature.
func (c *RPCClient) SendTransaction(_ context.Context, signedTx []byte) (string, error) {
	if c.SendErr != nil {
		return "", c.SendErr
	}
	c.SentTransactions = append(c.SentTransactions, signedTx)
	return c.Signature, nil
}
