// Package farm computes reward yields for a resolved farm: per-stream
// APR, aggregate APR, TVL and the querying wallet's deposited value.
package farm

import (
	"github.com/shopspring/decimal"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/layout"
)

// SecondsPerYear annualizes per-second emission rates.
const SecondsPerYear = 365 * 24 * 60 * 60

// Inputs collects everything one APR computation needs. All raw integer
// amounts arrive unscaled; Compute performs every decimal conversion.
type Inputs struct {
	Farm            domain.FarmInfo
	State           *layout.FarmState
	ChainTimeMillis int64
	Prices          domain.PriceTable
	Tokens          domain.TokenTable

	LpVaultAmount decimal.Decimal // raw LP staked in the farm vault
	LpDecimals    int
	LpPrice       float64 // LP unit price; 0 when the API reports none
	FeeApr24h     float64 // pair's 24h fee/trading APR, percentage units

	BlocksPerSecond decimal.Decimal // chain block production estimate
	LedgerDeposited decimal.Decimal // raw LP deposited by the wallet; 0 without a ledger
}

// Metrics is the result of one APR computation.
type Metrics struct {
	StreamAprs      []decimal.Decimal    // per-stream fractions; excluded streams hold 0
	TotalAprPercent decimal.Decimal      // 100 × Σ fractions + FeeApr24h
	Tvl             decimal.Decimal      // USD value staked in the farm
	UserDeposited   decimal.Decimal      // wallet's deposit in LP display units
	Rewards         []domain.RewardYield // streams with positive APR
}

// Compute derives all farm metrics from one consistent snapshot. A reward
// stream with missing mint, price or token metadata contributes zero
// rather than failing the computation; zero TVL likewise yields zero APR
// for every stream.
func Compute(in Inputs) Metrics {
	tvl := computeTvl(in.LpVaultAmount, in.LpDecimals, in.LpPrice)

	streams := make([]decimal.Decimal, len(in.State.Rewards))
	var rewards []domain.RewardYield

	for i, r := range in.State.Rewards {
		apr := computeStreamApr(in, i, r, tvl)
		streams[i] = apr

		if !apr.IsPositive() {
			continue
		}
		mint := rewardMint(in, i, r)
		token := in.Tokens.ByMint[mint]
		rewards = append(rewards, domain.RewardYield{
			Apr:         apr.Mul(decimal.NewFromInt(100)).String() + "%",
			RewardToken: token.Symbol,
		})
	}

	total := decimal.Zero
	for _, apr := range streams {
		total = total.Add(apr)
	}
	total = total.Mul(decimal.NewFromInt(100)).Add(decimal.NewFromFloat(in.FeeApr24h))

	return Metrics{
		StreamAprs:      streams,
		TotalAprPercent: total,
		Tvl:             tvl,
		UserDeposited:   domain.ScaleRaw(in.LedgerDeposited, in.LpDecimals),
		Rewards:         rewards,
	}
}

// rewardMint picks the reward token mint for stream i: live chain state
// for v6 farms, the static farm list for earlier versions.
func rewardMint(in Inputs, i int, r layout.RewardState) string {
	if in.Farm.Version == domain.FarmVersionV6 {
		if r.Mint.IsZero() {
			return ""
		}
		return r.Mint.String()
	}
	if i >= len(in.Farm.Rewards) {
		return ""
	}
	return in.Farm.Rewards[i].Mint
}

// computeStreamApr returns the annualized yield fraction of one reward
// stream, or zero when the stream is inactive or underspecified.
func computeStreamApr(in Inputs, i int, r layout.RewardState, tvl decimal.Decimal) decimal.Decimal {
	if in.Farm.Version == domain.FarmVersionV6 && !rewardActive(r, in.ChainTimeMillis) {
		return decimal.Zero
	}

	mint := rewardMint(in, i, r)
	if mint == "" {
		return decimal.Zero
	}

	price := in.Prices.Price(mint)
	if price == 0 {
		return decimal.Zero
	}

	token, ok := in.Tokens.ByMint[mint]
	if !ok {
		return decimal.Zero
	}

	var emissionPerSecond decimal.Decimal
	if in.Farm.Version == domain.FarmVersionV6 {
		emissionPerSecond = domain.ScaleRawUint(r.PerSecond, token.Decimals)
	} else {
		emissionPerSecond = domain.ScaleRawUint(r.PerSlot, token.Decimals).Mul(in.BlocksPerSecond)
	}

	annualized := emissionPerSecond.
		Mul(decimal.NewFromInt(SecondsPerYear)).
		Mul(decimal.NewFromFloat(price))

	if tvl.IsZero() {
		return decimal.Zero
	}
	return annualized.Div(tvl)
}

// rewardActive reports whether a v6 reward's schedule window covers the
// current chain time. Both boundaries are inclusive: a reward opening or
// ending exactly now still counts.
func rewardActive(r layout.RewardState, chainTimeMillis int64) bool {
	openMillis := r.OpenTime * 1000
	endMillis := r.EndTime * 1000
	return chainTimeMillis >= openMillis && chainTimeMillis <= endMillis
}

// computeTvl values the farm's staked LP at the LP unit price.
func computeTvl(lpVaultAmount decimal.Decimal, lpDecimals int, lpPrice float64) decimal.Decimal {
	return domain.ScaleRaw(lpVaultAmount, lpDecimals).Mul(decimal.NewFromFloat(lpPrice))
}
