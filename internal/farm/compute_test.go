package farm

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/layout"
)

// fixtureMint is a valid base58 pubkey usable as a reward mint.
var fixtureMint = solana.MustPublicKeyFromBase58("4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R")

func v6Inputs(perSecond uint64, openTime, endTime, nowMillis int64, price float64) Inputs {
	mint := fixtureMint.String()
	return Inputs{
		Farm: domain.FarmInfo{Version: domain.FarmVersionV6},
		State: &layout.FarmState{
			Version: 6,
			Rewards: []layout.RewardState{
				{Mint: fixtureMint, OpenTime: openTime, EndTime: endTime, PerSecond: perSecond},
			},
		},
		ChainTimeMillis: nowMillis,
		Prices:          domain.PriceTable{mint: price},
		Tokens: domain.TokenTable{
			ByMint: map[string]domain.TokenInfo{
				mint: {Symbol: "RAY", Mint: mint, Decimals: 0},
			},
		},
		LpVaultAmount: decimal.NewFromInt(31_536_000),
		LpDecimals:    0,
		LpPrice:       1,
	}
}

func TestCompute_V6StreamApr(t *testing.T) {
	// 1 reward unit per second at price 1 over a 31,536,000 TVL:
	// annualized 31,536,000 / 31,536,000 = fraction 1.0.
	in := v6Inputs(1, 100, 200, 150_000, 1)

	m := Compute(in)

	if len(m.StreamAprs) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(m.StreamAprs))
	}
	if !m.StreamAprs[0].Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected fraction 1, got %s", m.StreamAprs[0])
	}
	if !m.TotalAprPercent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected total 100, got %s", m.TotalAprPercent)
	}
	if len(m.Rewards) != 1 || m.Rewards[0].RewardToken != "RAY" {
		t.Errorf("unexpected reward breakdown %+v", m.Rewards)
	}
	if m.Rewards[0].Apr != "100%" {
		t.Errorf("expected reward apr 100%%, got %s", m.Rewards[0].Apr)
	}
}

func TestCompute_V6ScheduleBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		nowMillis int64
		active    bool
	}{
		{"before open", 99_999, false},
		{"exactly at open", 100_000, true},
		{"inside window", 150_000, true},
		{"exactly at end", 200_000, true},
		{"after end", 200_001, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := v6Inputs(1, 100, 200, tc.nowMillis, 1)
			m := Compute(in)

			if tc.active && !m.StreamAprs[0].IsPositive() {
				t.Errorf("expected active stream at %d", tc.nowMillis)
			}
			if !tc.active && !m.StreamAprs[0].IsZero() {
				t.Errorf("expected excluded stream at %d, got %s", tc.nowMillis, m.StreamAprs[0])
			}
		})
	}
}

func TestCompute_ZeroPriceContributesZero(t *testing.T) {
	in := v6Inputs(1, 100, 200, 150_000, 0)

	m := Compute(in)

	if !m.StreamAprs[0].IsZero() {
		t.Errorf("expected zero apr for unpriced reward, got %s", m.StreamAprs[0])
	}
}

func TestCompute_MissingTokenMetadataContributesZero(t *testing.T) {
	in := v6Inputs(1, 100, 200, 150_000, 1)
	in.Tokens = domain.TokenTable{ByMint: map[string]domain.TokenInfo{}}

	m := Compute(in)

	if !m.StreamAprs[0].IsZero() {
		t.Errorf("expected zero apr without token metadata, got %s", m.StreamAprs[0])
	}
}

func TestCompute_MissingMintContributesZero(t *testing.T) {
	in := v6Inputs(1, 100, 200, 150_000, 1)
	in.State.Rewards[0].Mint = solana.PublicKey{}

	m := Compute(in)

	if !m.StreamAprs[0].IsZero() {
		t.Errorf("expected zero apr without reward mint, got %s", m.StreamAprs[0])
	}
}

func TestCompute_ZeroTvlNoDivisionByZero(t *testing.T) {
	in := v6Inputs(1, 100, 200, 150_000, 1)
	in.LpVaultAmount = decimal.Zero

	m := Compute(in)

	if !m.Tvl.IsZero() {
		t.Errorf("expected zero TVL, got %s", m.Tvl)
	}
	if !m.StreamAprs[0].IsZero() {
		t.Errorf("expected zero apr at zero TVL, got %s", m.StreamAprs[0])
	}
	if !m.TotalAprPercent.IsZero() {
		t.Errorf("expected zero total at zero TVL, got %s", m.TotalAprPercent)
	}
}

func TestCompute_AggregateIsFeeAprWithoutStreams(t *testing.T) {
	in := v6Inputs(1, 100, 200, 150_000, 1)
	in.State.Rewards = nil
	in.FeeApr24h = 7.25

	m := Compute(in)

	if !m.TotalAprPercent.Equal(decimal.NewFromFloat(7.25)) {
		t.Errorf("expected total 7.25, got %s", m.TotalAprPercent)
	}
	if len(m.Rewards) != 0 {
		t.Errorf("expected no reward breakdown, got %+v", m.Rewards)
	}
}

func TestCompute_AggregateSumsStreamFractions(t *testing.T) {
	// Two identical active streams contributing 1.0 each plus a 3.5
	// fee APR: total = 100 × 2 + 3.5.
	in := v6Inputs(1, 100, 200, 150_000, 1)
	in.State.Rewards = append(in.State.Rewards, in.State.Rewards[0])
	in.FeeApr24h = 3.5

	m := Compute(in)

	if !m.TotalAprPercent.Equal(decimal.NewFromFloat(203.5)) {
		t.Errorf("expected total 203.5, got %s", m.TotalAprPercent)
	}
}

func TestCompute_V3UsesStaticMintAndBlockRate(t *testing.T) {
	mint := fixtureMint.String()
	in := Inputs{
		Farm: domain.FarmInfo{
			Version: domain.FarmVersionV3,
			Rewards: []domain.RewardInfo{{Mint: mint}},
		},
		State: &layout.FarmState{
			Version: 3,
			Rewards: []layout.RewardState{{PerSlot: 2}},
		},
		Prices: domain.PriceTable{mint: 1},
		Tokens: domain.TokenTable{
			ByMint: map[string]domain.TokenInfo{
				mint: {Symbol: "RAY", Mint: mint, Decimals: 0},
			},
		},
		// 2 units per slot at 0.5 slots/s = 1 unit per second.
		BlocksPerSecond: decimal.NewFromFloat(0.5),
		LpVaultAmount:   decimal.NewFromInt(31_536_000),
		LpDecimals:      0,
		LpPrice:         1,
	}

	m := Compute(in)

	if !m.StreamAprs[0].Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected fraction 1, got %s", m.StreamAprs[0])
	}
}

func TestCompute_V3MissingStaticRewardContributesZero(t *testing.T) {
	in := Inputs{
		Farm: domain.FarmInfo{Version: domain.FarmVersionV3},
		State: &layout.FarmState{
			Version: 3,
			Rewards: []layout.RewardState{{PerSlot: 2}},
		},
		Prices:          domain.PriceTable{},
		Tokens:          domain.TokenTable{ByMint: map[string]domain.TokenInfo{}},
		BlocksPerSecond: decimal.NewFromFloat(0.5),
		LpVaultAmount:   decimal.NewFromInt(1000),
		LpPrice:         1,
	}

	m := Compute(in)

	if !m.StreamAprs[0].IsZero() {
		t.Errorf("expected zero apr for unlisted reward, got %s", m.StreamAprs[0])
	}
}

func TestCompute_UserDeposited(t *testing.T) {
	in := v6Inputs(1, 100, 200, 150_000, 1)
	in.LpDecimals = 3
	in.LedgerDeposited = decimal.NewFromInt(1500)

	m := Compute(in)

	if !m.UserDeposited.Equal(decimal.NewFromFloat(1.5)) {
		t.Errorf("expected deposit 1.5, got %s", m.UserDeposited)
	}
}
