package domain

// RewardYield is one active reward stream's contribution in the farm
// section of a status report.
type RewardYield struct {
	Apr         string `json:"apr"` // e.g. "12.5%"
	RewardToken string `json:"rewardToken"`
}

// PoolStatus is the optional pool section of a status report.
type PoolStatus struct {
	Pair           string  `json:"pair"`
	Liquidity      int64   `json:"liquidity"` // LP reserve in display units
	Volume         float64 `json:"volume"`
	LiquidityValue float64 `json:"liquidity_value"` // quote/base reserve ratio
	LpTokens       float64 `json:"lpTokens"`        // caller's LP holding
}

// FarmStatus is the optional farm section of a status report.
type FarmStatus struct {
	Pair         string        `json:"pair"`
	Apr          string        `json:"APR"` // aggregate, percentage units
	Tvl          string        `json:"TVL"`
	DepositValue string        `json:"deposit_value"`
	RewardValue  []RewardYield `json:"reward_value"`
}

// StatusReport is the /getStatus response body. Pool and Farm hold empty
// objects when the caller did not request the respective section.
type StatusReport struct {
	WalletBalance float64     `json:"walletBalance"`
	PairAddress   string      `json:"pairAddress"`
	Address1      string      `json:"address1"` // base token mint
	Address2      string      `json:"address2"` // quote token mint
	Pool          interface{} `json:"pool"`
	Farm          interface{} `json:"farm"`
}
