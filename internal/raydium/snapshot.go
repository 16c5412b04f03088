package raydium

import (
	"context"

	"golang.org/x/sync/errgroup"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/logger"
)

var snapshotLogger = logger.GetForComponent("raydium_snapshot")

// Snapshot is one request's view of the market-data API. The six documents
// are fetched together and never refreshed, so a snapshot is internally
// consistent but carries no freshness guarantee across requests.
type Snapshot struct {
	Farms     []domain.FarmInfo
	Pairs     []domain.PairInfo
	Liquidity []domain.LiquidityInfo
	Tokens    domain.TokenTable
	Prices    domain.PriceTable
	ChainTime ChainTime
}

// FetchSnapshot retrieves all six documents concurrently. The documents
// are independent, but every one must succeed before the snapshot is
// usable; any failure fails the whole fetch.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Farms, err = c.FetchFarms(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Pairs, err = c.FetchPairs(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Liquidity, err = c.FetchLiquidity(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Tokens, err = c.FetchTokens(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Prices, err = c.FetchPrices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.ChainTime, err = c.FetchChainTime(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshotLogger.Debug().
		Int("farms", len(snap.Farms)).
		Int("pairs", len(snap.Pairs)).
		Int("pools", len(snap.Liquidity)).
		Int("tokens", len(snap.Tokens.ByMint)).
		Msg("market data snapshot fetched")

	return snap, nil
}

// PairByLpMint returns the pair whose LP mint matches, if any.
func (s *Snapshot) PairByLpMint(lpMint string) (domain.PairInfo, bool) {
	for _, p := range s.Pairs {
		if p.LpMint == lpMint {
			return p, true
		}
	}
	return domain.PairInfo{}, false
}

// FarmByLpMint returns the first farm staking the given LP mint, if any.
func (s *Snapshot) FarmByLpMint(lpMint string) (domain.FarmInfo, bool) {
	for _, f := range s.Farms {
		if f.LpMint == lpMint {
			return f, true
		}
	}
	return domain.FarmInfo{}, false
}
