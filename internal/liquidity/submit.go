// Package liquidity builds and submits Raydium AMM add-liquidity
// transactions.
package liquidity

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	ata "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/shopspring/decimal"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/layout"
	"raydium-farm-server/internal/logger"
	"raydium-farm-server/internal/pool"
	"raydium-farm-server/internal/resolver"
	solrpc "raydium-farm-server/internal/solana"
)

// depositInstruction is the Raydium AMM v4 deposit instruction tag.
const depositInstruction = 3

// ErrMissingTokenAccount is returned when the wallet holds no token
// account for a side it must contribute.
var ErrMissingTokenAccount = errors.New("wallet has no token account for pool side")

var submitLogger = logger.GetForComponent("liquidity_submit")

// ParseSecretKey decodes a hex-encoded 64-byte ed25519 secret key.
func ParseSecretKey(hexKey string) (solana.PrivateKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode secret key: %w", err)
	}
	if len(raw) != 64 {
		return nil, fmt.Errorf("secret key must be 64 bytes, got %d", len(raw))
	}
	return solana.PrivateKey(raw), nil
}

// Request describes one add-liquidity submission.
type Request struct {
	Pool     resolver.Pool
	Wallet   solana.PrivateKey
	BaseSide bool    // true: Amount is base tokens; false: quote tokens
	Amount   float64 // human-scale amount of the chosen side

	// Slippage tolerance as an integer ratio, e.g. 1/100 = 1%.
	SlippageNumerator   int64
	SlippageDenominator int64
}

// Result reports what was broadcast.
type Result struct {
	TxIDs       []string
	OtherAmount decimal.Decimal // computed contribution of the other side
}

// Submitter broadcasts add-liquidity transactions through the chain RPC.
type Submitter struct {
	rpc solrpc.RPCClient
}

// NewSubmitter creates a Submitter on the given RPC client.
func NewSubmitter(rpc solrpc.RPCClient) *Submitter {
	return &Submitter{rpc: rpc}
}

// AddLiquidity reads the pool's current reserve ratio, derives the other
// side's contribution with the slippage bound, and submits one deposit
// transaction. Failures surface immediately; nothing is retried.
func (s *Submitter) AddLiquidity(ctx context.Context, req Request) (*Result, error) {
	if req.SlippageDenominator == 0 {
		return nil, errors.New("slippage denominator must not be zero")
	}

	liq := req.Pool.Liquidity

	position, err := s.readPosition(ctx, liq)
	if err != nil {
		return nil, err
	}
	if position.Ratio.IsZero() {
		return nil, fmt.Errorf("pool %s has no base reserve to price against", liq.ID)
	}

	amount := decimal.NewFromFloat(req.Amount)
	var baseAmount, quoteAmount, otherAmount decimal.Decimal
	if req.BaseSide {
		baseAmount = amount
		quoteAmount = amount.Mul(position.Ratio)
		otherAmount = quoteAmount
	} else {
		quoteAmount = amount
		baseAmount = amount.Div(position.Ratio)
		otherAmount = baseAmount
	}

	// The fixed side is deposited exactly; the floating side gets the
	// slippage headroom.
	slip := decimal.NewFromInt(req.SlippageNumerator).
		Div(decimal.NewFromInt(req.SlippageDenominator)).
		Add(decimal.NewFromInt(1))
	if req.BaseSide {
		quoteAmount = quoteAmount.Mul(slip)
	} else {
		baseAmount = baseAmount.Mul(slip)
	}

	maxBase := domain.UnscaleAmount(baseAmount, liq.BaseDecimals)
	maxQuote := domain.UnscaleAmount(quoteAmount, liq.QuoteDecimals)

	txid, err := s.submitDeposit(ctx, req, maxBase, maxQuote)
	if err != nil {
		return nil, err
	}

	submitLogger.Info().
		Str("pool", liq.ID).
		Str("txid", txid).
		Str("otherAmount", otherAmount.String()).
		Msg("liquidity added")

	return &Result{
		TxIDs:       []string{txid},
		OtherAmount: otherAmount,
	}, nil
}

// readPosition fetches and decodes the pool state needed for pricing.
func (s *Submitter) readPosition(ctx context.Context, liq domain.LiquidityInfo) (pool.Position, error) {
	account, err := s.rpc.GetAccountInfo(ctx, liq.ID)
	if err != nil {
		return pool.Position{}, fmt.Errorf("fetch pool account: %w", err)
	}
	if account == nil {
		return pool.Position{}, fmt.Errorf("pool account %s not found", liq.ID)
	}
	data, err := account.DecodeData()
	if err != nil {
		return pool.Position{}, fmt.Errorf("pool account data: %w", err)
	}
	state, err := layout.DecodeLiquidityStateV4(data)
	if err != nil {
		return pool.Position{}, err
	}

	ooAccount, err := s.rpc.GetAccountInfo(ctx, state.OpenOrders.String())
	if err != nil {
		return pool.Position{}, fmt.Errorf("fetch open orders: %w", err)
	}
	if ooAccount == nil {
		return pool.Position{}, fmt.Errorf("open orders account %s not found", state.OpenOrders)
	}
	ooData, err := ooAccount.DecodeData()
	if err != nil {
		return pool.Position{}, fmt.Errorf("open orders data: %w", err)
	}
	openOrders, err := layout.DecodeOpenOrders(ooData)
	if err != nil {
		return pool.Position{}, err
	}

	baseVault, err := s.rpc.GetTokenAccountBalance(ctx, state.BaseVault.String())
	if err != nil {
		return pool.Position{}, fmt.Errorf("base vault balance: %w", err)
	}
	quoteVault, err := s.rpc.GetTokenAccountBalance(ctx, state.QuoteVault.String())
	if err != nil {
		return pool.Position{}, fmt.Errorf("quote vault balance: %w", err)
	}

	return pool.Read(pool.Inputs{
		State:      state,
		OpenOrders: openOrders,
		BaseVault:  baseVault,
		QuoteVault: quoteVault,
	})
}

// submitDeposit assembles, signs and broadcasts the deposit transaction.
func (s *Submitter) submitDeposit(ctx context.Context, req Request, maxBase, maxQuote uint64) (string, error) {
	liq := req.Pool.Liquidity
	owner := req.Wallet.PublicKey()

	accounts, err := s.rpc.GetTokenAccountsByOwner(ctx, owner.String(), layout.TokenProgramID)
	if err != nil {
		return "", fmt.Errorf("enumerate token accounts: %w", err)
	}

	baseMint := solana.MustPublicKeyFromBase58(liq.BaseMint)
	quoteMint := solana.MustPublicKeyFromBase58(liq.QuoteMint)
	lpMint := solana.MustPublicKeyFromBase58(liq.LpMint)

	baseAccount, ok := findTokenAccount(accounts, baseMint)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingTokenAccount, liq.BaseMint)
	}
	quoteAccount, ok := findTokenAccount(accounts, quoteMint)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingTokenAccount, liq.QuoteMint)
	}

	var instructions []solana.Instruction

	lpAccount, ok := findTokenAccount(accounts, lpMint)
	if !ok {
		// First deposit into this pool: create the LP token account
		// in the same transaction.
		derived, _, err := solana.FindAssociatedTokenAddress(owner, lpMint)
		if err != nil {
			return "", fmt.Errorf("derive lp token account: %w", err)
		}
		lpAccount = derived
		instructions = append(instructions,
			ata.NewCreateInstruction(owner, owner, lpMint).Build())
	}

	baseSide := uint64(0)
	if !req.BaseSide {
		baseSide = 1
	}
	deposit := solana.NewInstruction(
		solana.MustPublicKeyFromBase58(liq.ProgramID),
		depositAccounts(liq, owner, baseAccount, quoteAccount, lpAccount),
		depositData(maxBase, maxQuote, baseSide),
	)
	instructions = append(instructions, deposit)

	blockhash, err := s.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch blockhash: %w", err)
	}
	recent, err := solana.HashFromBase58(blockhash)
	if err != nil {
		return "", fmt.Errorf("parse blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, recent, solana.TransactionPayer(owner))
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(owner) {
			return &req.Wallet
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	wire, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}

	txid, err := s.rpc.SendTransaction(ctx, wire)
	if err != nil {
		return "", fmt.Errorf("broadcast transaction: %w", err)
	}
	return txid, nil
}

// depositAccounts lists the AMM v4 deposit instruction's account metas in
// program order.
func depositAccounts(liq domain.LiquidityInfo, owner, baseAccount, quoteAccount, lpAccount solana.PublicKey) solana.AccountMetaSlice {
	key := solana.MustPublicKeyFromBase58
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(key(layout.TokenProgramID), false, false),
		solana.NewAccountMeta(key(liq.ID), true, false),
		solana.NewAccountMeta(key(liq.Authority), false, false),
		solana.NewAccountMeta(key(liq.OpenOrders), false, false),
		solana.NewAccountMeta(key(liq.TargetOrders), true, false),
		solana.NewAccountMeta(key(liq.LpMint), true, false),
		solana.NewAccountMeta(key(liq.BaseVault), true, false),
		solana.NewAccountMeta(key(liq.QuoteVault), true, false),
		solana.NewAccountMeta(key(liq.MarketID), false, false),
		solana.NewAccountMeta(baseAccount, true, false),
		solana.NewAccountMeta(quoteAccount, true, false),
		solana.NewAccountMeta(lpAccount, true, false),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(key(liq.MarketEventQueue), false, false),
	}
}

// depositData encodes the deposit instruction payload.
func depositData(maxBase, maxQuote, baseSide uint64) []byte {
	data := make([]byte, 25)
	data[0] = depositInstruction
	binary.LittleEndian.PutUint64(data[1:9], maxBase)
	binary.LittleEndian.PutUint64(data[9:17], maxQuote)
	binary.LittleEndian.PutUint64(data[17:25], baseSide)
	return data
}

// findTokenAccount returns the wallet's token account for a mint.
func findTokenAccount(accounts []solrpc.TokenAccount, mint solana.PublicKey) (solana.PublicKey, bool) {
	for _, acc := range accounts {
		decoded, err := layout.DecodeTokenAccount(acc.Data)
		if err != nil {
			continue
		}
		if decoded.Mint.Equals(mint) {
			return solana.MustPublicKeyFromBase58(acc.Pubkey), true
		}
	}
	return solana.PublicKey{}, false
}
