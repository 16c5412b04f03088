package domain

// PairInfo is the read-only market snapshot of a trading pair as reported
// by the Raydium pairs endpoint. Volume, fee and APR figures cover the
// 24h/7d/30d rolling windows.
type PairInfo struct {
	AmmID  string // AMM pool address
	Name   string // e.g. "SOL-USDC"
	LpMint string // LP token mint, links to FarmInfo / LiquidityInfo
	Market string

	Price   float64 // Current pair price
	LpPrice float64 // LP token unit price; 0 when the API reports null

	Apr24h float64 // Fee/trading APR, percentage units
	Apr7d  float64
	Apr30d float64

	Fee24h float64
	Fee7d  float64
	Fee30d float64

	Volume24h float64
	Volume7d  float64
	Volume30d float64

	Liquidity       float64
	TokenAmountCoin float64
	TokenAmountPc   float64
	TokenAmountLp   float64

	Official bool
}
