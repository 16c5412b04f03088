package solana

import "context"

// RPCClient defines the Solana RPC HTTP interface this service consumes:
// account reads, balance queries, recent performance sampling and
// transaction submission.
type RPCClient interface {
	// GetAccountInfo retrieves raw account data for a public key.
	// Returns nil when the account does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)

	// GetBalance retrieves the lamport balance of an account.
	GetBalance(ctx context.Context, pubkey string) (uint64, error)

	// GetTokenAccountBalance retrieves the token balance of an SPL token account.
	GetTokenAccountBalance(ctx context.Context, pubkey string) (*TokenAmount, error)

	// GetTokenAccountsByOwner retrieves all token accounts a wallet owns
	// under the given token program.
	GetTokenAccountsByOwner(ctx context.Context, owner, programID string) ([]TokenAccount, error)

	// GetRecentPerformanceSamples retrieves up to limit recent
	// block-production samples, most recent first.
	GetRecentPerformanceSamples(ctx context.Context, limit int) ([]PerformanceSample, error)

	// GetLatestBlockhash retrieves a recent blockhash for transaction
	// assembly.
	GetLatestBlockhash(ctx context.Context) (string, error)

	// SendTransaction submits a signed, serialized transaction and
	// returns its signature.
	SendTransaction(ctx context.Context, signedTx []byte) (string, error)
}
