// Package status assembles the /getStatus report: one market-data
// snapshot, one pass of chain reads, then the derived pool and farm
// metrics.
package status

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/farm"
	"raydium-farm-server/internal/layout"
	"raydium-farm-server/internal/logger"
	"raydium-farm-server/internal/pool"
	"raydium-farm-server/internal/raydium"
	"raydium-farm-server/internal/resolver"
	solrpc "raydium-farm-server/internal/solana"
)

// lamportsPerSol scales wallet balances to SOL.
const lamportsPerSol = 1_000_000_000

var statusLogger = logger.GetForComponent("status")

// MarketData is the market-data collaborator surface the service needs.
type MarketData interface {
	FetchSnapshot(ctx context.Context) (*raydium.Snapshot, error)
}

// Service performs the status flow. It holds no per-request state; every
// request fetches a fresh snapshot and fresh chain reads.
type Service struct {
	market MarketData
	rpc    solrpc.RPCClient
}

// NewService creates a status service over the two collaborators.
func NewService(market MarketData, rpc solrpc.RPCClient) *Service {
	return &Service{market: market, rpc: rpc}
}

// Status resolves the pair and builds the report. The pool and farm
// sections are populated only when requested; otherwise they marshal as
// empty objects.
func (s *Service) Status(ctx context.Context, pair, wallet string, includePool, includeFarm bool) (*domain.StatusReport, error) {
	snap, err := s.market.FetchSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("market snapshot: %w", err)
	}

	res, err := resolver.Resolve(snap, pair)
	if err != nil {
		return nil, err
	}

	owner, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}

	lamports, err := s.rpc.GetBalance(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("wallet balance: %w", err)
	}
	balance := float64(lamports) / lamportsPerSol

	tokenAccounts, err := s.rpc.GetTokenAccountsByOwner(ctx, wallet, layout.TokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("wallet token accounts: %w", err)
	}

	position, err := s.readPosition(ctx, res, tokenAccounts)
	if err != nil {
		return nil, err
	}

	report := &domain.StatusReport{
		WalletBalance: balance,
		PairAddress:   res.Liquidity.ID,
		Address1:      res.BaseMint,
		Address2:      res.QuoteMint,
		Pool:          struct{}{},
		Farm:          struct{}{},
	}

	if includePool {
		report.Pool = domain.PoolStatus{
			Pair:           pair,
			Liquidity:      position.LpSupply.IntPart(),
			Volume:         res.Pair.Volume7d,
			LiquidityValue: position.Ratio.InexactFloat64(),
			LpTokens:       position.LpHolding.InexactFloat64(),
		}
	}

	if includeFarm {
		metrics, err := s.computeFarm(ctx, snap, res, owner)
		if err != nil {
			return nil, err
		}
		report.Farm = domain.FarmStatus{
			Pair:         pair,
			Apr:          metrics.TotalAprPercent.String(),
			Tvl:          metrics.Tvl.String(),
			DepositValue: metrics.UserDeposited.String(),
			RewardValue:  metrics.Rewards,
		}
	}

	statusLogger.Debug().
		Str("pair", pair).
		Str("pool", res.Liquidity.ID).
		Msg("status report assembled")

	return report, nil
}

// readPosition decodes the pool account, its open orders and vault
// balances into the derived position.
func (s *Service) readPosition(ctx context.Context, res *resolver.Resolved, tokenAccounts []solrpc.TokenAccount) (pool.Position, error) {
	account, err := s.rpc.GetAccountInfo(ctx, res.Liquidity.ID)
	if err != nil {
		return pool.Position{}, fmt.Errorf("fetch pool account: %w", err)
	}
	if account == nil {
		return pool.Position{}, fmt.Errorf("pool account %s not found", res.Liquidity.ID)
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
		State:       state,
		OpenOrders:  openOrders,
		BaseVault:   baseVault,
		QuoteVault:  quoteVault,
		WalletLpRaw: pool.WalletLpBalance(tokenAccounts, state.LpMint),
	})
}

// computeFarm decodes the farm account, its LP vault balance and the
// wallet's stake ledger, then runs the APR computation.
func (s *Service) computeFarm(ctx context.Context, snap *raydium.Snapshot, res *resolver.Resolved, owner solana.PublicKey) (farm.Metrics, error) {
	account, err := s.rpc.GetAccountInfo(ctx, res.Farm.ID)
	if err != nil {
		return farm.Metrics{}, fmt.Errorf("fetch farm account: %w", err)
	}
	if account == nil {
		return farm.Metrics{}, fmt.Errorf("farm account %s not found", res.Farm.ID)
	}
	data, err := account.DecodeData()
	if err != nil {
		return farm.Metrics{}, fmt.Errorf("farm account data: %w", err)
	}
	state, err := layout.DecodeFarmState(res.Farm.Version, data)
	if err != nil {
		return farm.Metrics{}, err
	}

	lpVault, err := s.rpc.GetTokenAccountBalance(ctx, res.Farm.LpVault)
	if err != nil {
		return farm.Metrics{}, fmt.Errorf("farm lp vault balance: %w", err)
	}
	lpVaultAmount, err := decimal.NewFromString(lpVault.Amount)
	if err != nil {
		return farm.Metrics{}, fmt.Errorf("farm lp vault amount: %w", err)
	}

	samples, err := s.rpc.GetRecentPerformanceSamples(ctx, farm.PerformanceSampleCount)
	if err != nil {
		return farm.Metrics{}, fmt.Errorf("performance samples: %w", err)
	}

	deposited, err := s.ledgerDeposited(ctx, res.Farm, owner)
	if err != nil {
		return farm.Metrics{}, err
	}

	return farm.Compute(farm.Inputs{
		Farm:            res.Farm,
		State:           state,
		ChainTimeMillis: snap.ChainTime.Millis(),
		Prices:          snap.Prices,
		Tokens:          snap.Tokens,
		LpVaultAmount:   lpVaultAmount,
		LpDecimals:      res.Liquidity.LpDecimals,
		LpPrice:         res.Pair.LpPrice,
		FeeApr24h:       res.Pair.Apr24h,
		BlocksPerSecond: farm.EstimateBlocksPerSecond(samples),
		LedgerDeposited: decimal.NewFromUint64(deposited),
	}), nil
}

// ledgerDeposited reads the wallet's stake ledger for the farm. A wallet
// with no ledger account has deposited nothing; that degrades to zero
// rather than failing the report.
func (s *Service) ledgerDeposited(ctx context.Context, farmInfo domain.FarmInfo, owner solana.PublicKey) (uint64, error) {
	programID, err := solana.PublicKeyFromBase58(farmInfo.ProgramID)
	if err != nil {
		return 0, fmt.Errorf("parse farm program: %w", err)
	}
	farmID, err := solana.PublicKeyFromBase58(farmInfo.ID)
	if err != nil {
		return 0, fmt.Errorf("parse farm id: %w", err)
	}

	addr, err := layout.LedgerAddress(farmInfo.Version, programID, farmID, owner)
	if err != nil {
		return 0, err
	}

	account, err := s.rpc.GetAccountInfo(ctx, addr.String())
	if err != nil {
		return 0, fmt.Errorf("fetch ledger account: %w", err)
	}
	if account == nil {
		return 0, nil
	}
	data, err := account.DecodeData()
	if err != nil {
		return 0, fmt.Errorf("ledger account data: %w", err)
	}

	ledger, err := layout.DecodeLedger(farmInfo.Version, data)
	if err != nil {
		return 0, err
	}
	return ledger.Deposited, nil
}
