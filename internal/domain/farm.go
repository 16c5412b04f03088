package domain

// Farm program versions with distinct reward-schedule semantics.
// Versions below 6 emit rewards per slot; version 6 emits per second
// within an explicit [open, end] window.
const (
	FarmVersionV3 = 3
	FarmVersionV5 = 5
	FarmVersionV6 = 6
)

// RewardInfo is one reward stream of a farm, from the static farm list.
// OpenTime/EndTime and PerSecond are populated for version-6 farms only.
type RewardInfo struct {
	Mint      string // Reward token mint
	Vault     string // Reward vault address
	OpenTime  int64  // Unix seconds; 0 when not scheduled
	EndTime   int64  // Unix seconds; 0 when not scheduled
	PerSecond string // Raw emission rate as reported (v6)
	Sender    string
	Type      string // "Standard SPL" | "Option tokens"
}

// FarmInfo identifies a yield farm from the Raydium farm list.
type FarmInfo struct {
	ID        string // Farm account address
	LpMint    string // Staked LP token mint
	LpVault   string // Vault holding the staked LP tokens
	BaseMint  string
	QuoteMint string
	Name      string
	Version   int
	ProgramID string
	Authority string
	Rewards   []RewardInfo
	Upcoming  bool
	Category  string // "stake" | "raydium" | "fusion" | "ecosystem"
}

// LiquidityInfo is the pool-level record from the Raydium liquidity list.
// It links a FarmInfo to a PairInfo through the shared LP mint and carries
// the full key set needed to build pool transactions.
type LiquidityInfo struct {
	ID            string // AMM pool address
	BaseMint      string
	QuoteMint     string
	LpMint        string
	BaseDecimals  int
	QuoteDecimals int
	LpDecimals    int
	Version       int
	ProgramID     string

	Authority        string
	OpenOrders       string
	TargetOrders     string
	BaseVault        string
	QuoteVault       string
	WithdrawQueue    string
	LpVault          string
	MarketProgramID  string
	MarketID         string
	MarketAuthority  string
	MarketBaseVault  string
	MarketQuoteVault string
	MarketBids       string
	MarketAsks       string
	MarketEventQueue string

	Official bool
}
