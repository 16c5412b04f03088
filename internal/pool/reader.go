// Package pool derives a pool's effective reserves and the caller's LP
// position from decoded on-chain state.
package pool

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/layout"
	solrpc "raydium-farm-server/internal/solana"
)

// ErrDataUnavailable is returned when the chain reports no display amount
// for a pool vault. The caller must treat the whole position as
// unavailable rather than compute from partial reserves.
var ErrDataUnavailable = errors.New("pool vault balance unavailable")

// Inputs collects the decoded chain state one position read needs.
type Inputs struct {
	State      *layout.LiquidityStateV4
	OpenOrders *layout.OpenOrders
	BaseVault  *solrpc.TokenAmount
	QuoteVault *solrpc.TokenAmount

	// WalletLpRaw is the caller's LP token-account raw balance,
	// zero when the wallet holds no LP account for this pool.
	WalletLpRaw uint64
}

// Position is the derived pool view.
type Position struct {
	BaseReserve  decimal.Decimal // display units
	QuoteReserve decimal.Decimal
	Ratio        decimal.Decimal // quote per base; 0 when base reserve is 0
	LpSupply     decimal.Decimal // pool LP reserve, display units
	LpHolding    decimal.Decimal // caller's LP balance, display units
}

// Read computes effective reserves and LP figures. Effective reserves are
// vault balances plus open-order totals minus pending PnL adjustments.
//
// LP amounts are scaled by the pool's base token decimals, not the LP
// mint's. That mirrors the deployed system's observable output; see
// DESIGN.md before changing the decimal source.
func Read(in Inputs) (Position, error) {
	if in.BaseVault == nil || in.BaseVault.UIAmount == nil ||
		in.QuoteVault == nil || in.QuoteVault.UIAmount == nil {
		return Position{}, ErrDataUnavailable
	}

	baseDecimals := int(in.State.BaseDecimal)
	quoteDecimals := int(in.State.QuoteDecimal)

	base := decimal.NewFromFloat(*in.BaseVault.UIAmount).
		Add(domain.ScaleRawUint(in.OpenOrders.BaseTokenTotal, baseDecimals)).
		Sub(domain.ScaleRawUint(in.State.BaseNeedTakePnl, baseDecimals))

	quote := decimal.NewFromFloat(*in.QuoteVault.UIAmount).
		Add(domain.ScaleRawUint(in.OpenOrders.QuoteTokenTotal, quoteDecimals)).
		Sub(domain.ScaleRawUint(in.State.QuoteNeedTakePnl, quoteDecimals))

	ratio := decimal.Zero
	if !base.IsZero() {
		ratio = quote.Div(base)
	}

	return Position{
		BaseReserve:  base,
		QuoteReserve: quote,
		Ratio:        ratio,
		LpSupply:     domain.ScaleRawUint(in.State.LpReserve, baseDecimals),
		LpHolding:    domain.ScaleRawUint(in.WalletLpRaw, baseDecimals),
	}, nil
}

// WalletLpBalance scans a wallet's token accounts for the pool's LP mint
// and returns the raw balance, zero when no account matches.
func WalletLpBalance(accounts []solrpc.TokenAccount, lpMint solana.PublicKey) uint64 {
	for _, acc := range accounts {
		decoded, err := layout.DecodeTokenAccount(acc.Data)
		if err != nil {
			continue
		}
		if decoded.Mint.Equals(lpMint) {
			return decoded.Amount
		}
	}
	return 0
}
