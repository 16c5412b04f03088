package layout

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// FarmStateV3 is the Raydium farm program v3 state layout. Rewards are
// emitted per slot from a single vault.
type FarmStateV3 struct {
	State             uint64
	Nonce             uint64
	LpVault           solana.PublicKey
	RewardVault       solana.PublicKey
	Owner             solana.PublicKey
	FeeOwner          solana.PublicKey
	FeeY              uint64
	FeeX              uint64
	TotalReward       uint64
	RewardPerShareNet bin.Uint128
	LastBlock         uint64
	RewardPerBlock    uint64
}

// FarmStateV5 is the v5 (dual reward) state layout.
type FarmStateV5 struct {
	State           uint64
	Nonce           uint64
	LpVault         solana.PublicKey
	RewardVaultA    solana.PublicKey
	TotalRewardA    uint64
	PerShareRewardA bin.Uint128
	PerBlockRewardA uint64
	Option          uint8
	RewardVaultB    solana.PublicKey
	TotalRewardB    uint64
	PerShareRewardB bin.Uint128
	PerBlockRewardB uint64
	LastBlock       uint64
	Owner           solana.PublicKey
}

// FarmStateV6 is the v6 state layout. Up to five reward streams, each
// emitted per second within an explicit schedule window.
type FarmStateV6 struct {
	Discriminator       [8]byte
	State               uint64
	Nonce               uint64
	ValidRewardTokenNum uint64
	RewardMultiplier    bin.Uint128
	RewardPeriodMax     uint64
	RewardPeriodMin     uint64
	RewardPeriodExtend  uint64
	LpMint              solana.PublicKey
	RewardInfos         [6]FarmStateV6Reward
	LpVault             solana.PublicKey
	Creator             solana.PublicKey
}

// FarmStateV6Reward is one reward stream inside FarmStateV6.
type FarmStateV6Reward struct {
	RewardState           uint64
	OpenTime              uint64
	EndTime               uint64
	LastUpdateTime        uint64
	TotalReward           uint64
	TotalRewardEmissioned uint64
	RewardClaimed         uint64
	RewardPerSecond       uint64
	AccRewardPerShare     bin.Uint128
	RewardVault           solana.PublicKey
	RewardMint            solana.PublicKey
	RewardSender          solana.PublicKey
	RewardType            uint64
	Padding               [15]uint64
}

// RewardState is one reward stream of a farm in version-neutral form.
// For v3/v5 farms, Mint is zero (the reward mint comes from the static
// farm list) and emission is PerSlot; for v6 farms the mint and schedule
// window come from chain state and emission is PerSecond.
type RewardState struct {
	Mint      solana.PublicKey
	Vault     solana.PublicKey
	OpenTime  int64
	EndTime   int64
	PerSecond uint64
	PerSlot   uint64
}

// FarmState is a decoded farm account, version-neutral.
type FarmState struct {
	Version int
	Rewards []RewardState
}

// DecodeFarmState decodes a farm account for the given program version.
func DecodeFarmState(version int, data []byte) (*FarmState, error) {
	switch version {
	case 3:
		var state FarmStateV3
		if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
			return nil, fmt.Errorf("decode farm state v3: %w", err)
		}
		return &FarmState{
			Version: version,
			Rewards: []RewardState{
				{Vault: state.RewardVault, PerSlot: state.RewardPerBlock},
			},
		}, nil

	case 5:
		var state FarmStateV5
		if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
			return nil, fmt.Errorf("decode farm state v5: %w", err)
		}
		return &FarmState{
			Version: version,
			Rewards: []RewardState{
				{Vault: state.RewardVaultA, PerSlot: state.PerBlockRewardA},
				{Vault: state.RewardVaultB, PerSlot: state.PerBlockRewardB},
			},
		}, nil

	case 6:
		var state FarmStateV6
		if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
			return nil, fmt.Errorf("decode farm state v6: %w", err)
		}
		n := int(state.ValidRewardTokenNum)
		if n > len(state.RewardInfos) {
			n = len(state.RewardInfos)
		}
		rewards := make([]RewardState, 0, n)
		for _, r := range state.RewardInfos[:n] {
			rewards = append(rewards, RewardState{
				Mint:      r.RewardMint,
				Vault:     r.RewardVault,
				OpenTime:  int64(r.OpenTime),
				EndTime:   int64(r.EndTime),
				PerSecond: r.RewardPerSecond,
			})
		}
		return &FarmState{Version: version, Rewards: rewards}, nil

	default:
		return nil, fmt.Errorf("unsupported farm version %d", version)
	}
}
