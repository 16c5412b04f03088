// Package resolver turns a trading-pair symbol string into the farm, pair
// and liquidity records that share one LP mint, using a single market-data
// snapshot.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/raydium"
)

const (
	// NativeMintPlaceholder is the system-program address the token list
	// uses for native SOL. SOL itself is never a pool mint; pools hold
	// wrapped SOL instead.
	NativeMintPlaceholder = "11111111111111111111111111111111"

	// WrappedSolMint is the canonical wrapped SOL mint.
	WrappedSolMint = "So11111111111111111111111111111111111111112"
)

// Resolution failures. ErrInvalidPair and ErrUnknownSymbol cover the
// symbol side, ErrPoolNotFound the liquidity lookup, ErrNoFarm the farm
// cross-reference (not every pool has a farm).
var (
	ErrInvalidPair   = errors.New("pair must be of the form SYMBOL1-SYMBOL2")
	ErrUnknownSymbol = errors.New("unknown token symbol")
	ErrPoolNotFound  = errors.New("no liquidity pool matches the pair")
	ErrNoFarm        = errors.New("no farm stakes this pool's LP mint")
)

// Pool is a pair string resolved against the liquidity and token lists.
type Pool struct {
	BaseMint   string
	QuoteMint  string
	BaseToken  domain.TokenInfo
	QuoteToken domain.TokenInfo
	Liquidity  domain.LiquidityInfo
}

// Resolved extends Pool with the farm and pair records sharing the
// pool's LP mint.
type Resolved struct {
	Pool
	Farm domain.FarmInfo
	Pair domain.PairInfo
}

// ResolvePool resolves "SYMBOL1-SYMBOL2" to a liquidity pool. When
// several pools trade the same mint pair, the first in fetch order wins
// (official entries precede unofficial ones); ambiguity is not resolved
// further.
func ResolvePool(snap *raydium.Snapshot, pair string) (Pool, error) {
	parts := strings.Split(pair, "-")
	if len(parts) != 2 {
		return Pool{}, fmt.Errorf("%w: %q", ErrInvalidPair, pair)
	}

	baseToken, ok := snap.Tokens.BySymbol[parts[0]]
	if !ok {
		return Pool{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, parts[0])
	}
	quoteToken, ok := snap.Tokens.BySymbol[parts[1]]
	if !ok {
		return Pool{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, parts[1])
	}

	baseMint := baseToken.Mint
	if baseMint == NativeMintPlaceholder {
		baseMint = WrappedSolMint
	}
	quoteMint := quoteToken.Mint

	for _, liq := range snap.Liquidity {
		if liq.BaseMint == baseMint && liq.QuoteMint == quoteMint {
			return Pool{
				BaseMint:   baseMint,
				QuoteMint:  quoteMint,
				BaseToken:  baseToken,
				QuoteToken: quoteToken,
				Liquidity:  liq,
			}, nil
		}
	}

	return Pool{}, fmt.Errorf("%w: %q", ErrPoolNotFound, pair)
}

// Resolve resolves a pair to its pool and cross-references the farm and
// pair records through the shared LP mint. A pool without a farm returns
// ErrNoFarm. A missing pair record degrades to a zero-valued PairInfo
// (no fee APR, no LP price) rather than failing.
func Resolve(snap *raydium.Snapshot, pair string) (*Resolved, error) {
	pool, err := ResolvePool(snap, pair)
	if err != nil {
		return nil, err
	}

	farm, ok := snap.FarmByLpMint(pool.Liquidity.LpMint)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoFarm, pool.Liquidity.LpMint)
	}

	pairInfo, _ := snap.PairByLpMint(farm.LpMint)

	return &Resolved{
		Pool: pool,
		Farm: farm,
		Pair: pairInfo,
	}, nil
}
