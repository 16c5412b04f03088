package raydium

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"raydium-farm-server/internal/domain"
)

// DefaultEndpoint is the hosted Raydium market-data API.
const DefaultEndpoint = "https://api.raydium.io"

// Document paths under the API endpoint.
const (
	pathFarms     = "/v2/sdk/farm-v2/mainnet.json"
	pathPairs     = "/v2/main/pairs"
	pathLiquidity = "/v2/sdk/liquidity/mainnet.json"
	pathTokens    = "/v2/sdk/token/raydium.mainnet.json"
	pathPrices    = "/v2/main/price"
	pathChainTime = "/v2/main/chain/time"
)

// DefaultTimeout bounds each document fetch.
const DefaultTimeout = 30 * time.Second

// Client fetches farm, pair, liquidity, token, price and chain-time
// documents from the Raydium API. It holds no state between requests.
type Client struct {
	endpoint string
	client   *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a market-data client for the given API endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches one JSON document and decodes it into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}

	return nil
}

// jsonFarm mirrors one farm entry of the farm list document.
type jsonFarm struct {
	ID          string `json:"id"`
	LpMint      string `json:"lpMint"`
	LpVault     string `json:"lpVault"`
	BaseMint    string `json:"baseMint"`
	QuoteMint   string `json:"quoteMint"`
	Name        string `json:"name"`
	Version     int    `json:"version"`
	ProgramID   string `json:"programId"`
	Authority   string `json:"authority"`
	Upcoming    bool   `json:"upcoming"`
	RewardInfos []struct {
		RewardMint      string      `json:"rewardMint"`
		RewardVault     string      `json:"rewardVault"`
		RewardOpenTime  int64       `json:"rewardOpenTime"`
		RewardEndTime   int64       `json:"rewardEndTime"`
		RewardPerSecond json.Number `json:"rewardPerSecond"` // string or number
		RewardSender    string      `json:"rewardSender"`
		RewardType      string      `json:"rewardType"`
	} `json:"rewardInfos"`
}

func (f *jsonFarm) toDomain(category string) domain.FarmInfo {
	farm := domain.FarmInfo{
		ID:        f.ID,
		LpMint:    f.LpMint,
		LpVault:   f.LpVault,
		BaseMint:  f.BaseMint,
		QuoteMint: f.QuoteMint,
		Name:      f.Name,
		Version:   f.Version,
		ProgramID: f.ProgramID,
		Authority: f.Authority,
		Upcoming:  f.Upcoming,
		Category:  category,
	}
	for _, r := range f.RewardInfos {
		farm.Rewards = append(farm.Rewards, domain.RewardInfo{
			Mint:      r.RewardMint,
			Vault:     r.RewardVault,
			OpenTime:  r.RewardOpenTime,
			EndTime:   r.RewardEndTime,
			PerSecond: r.RewardPerSecond.String(),
			Sender:    r.RewardSender,
			Type:      r.RewardType,
		})
	}
	return farm
}

// FetchFarms retrieves the farm list, flattened across the document's
// category groups in a fixed order.
func (c *Client) FetchFarms(ctx context.Context) ([]domain.FarmInfo, error) {
	var doc struct {
		Stake     []jsonFarm `json:"stake"`
		Raydium   []jsonFarm `json:"raydium"`
		Fusion    []jsonFarm `json:"fusion"`
		Ecosystem []jsonFarm `json:"ecosystem"`
	}
	if err := c.get(ctx, pathFarms, &doc); err != nil {
		return nil, fmt.Errorf("fetch farms: %w", err)
	}

	groups := []struct {
		category string
		farms    []jsonFarm
	}{
		{"stake", doc.Stake},
		{"raydium", doc.Raydium},
		{"fusion", doc.Fusion},
		{"ecosystem", doc.Ecosystem},
	}

	var farms []domain.FarmInfo
	for _, g := range groups {
		for i := range g.farms {
			farms = append(farms, g.farms[i].toDomain(g.category))
		}
	}
	return farms, nil
}

// FetchPairs retrieves the pair statistics list.
func (c *Client) FetchPairs(ctx context.Context) ([]domain.PairInfo, error) {
	var doc []struct {
		AmmID           string   `json:"ammId"`
		Name            string   `json:"name"`
		LpMint          string   `json:"lpMint"`
		Market          string   `json:"market"`
		Price           float64  `json:"price"`
		LpPrice         *float64 `json:"lpPrice"`
		Apr24h          float64  `json:"apr24h"`
		Apr7d           float64  `json:"apr7d"`
		Apr30d          float64  `json:"apr30d"`
		Fee24h          float64  `json:"fee24h"`
		Fee7d           float64  `json:"fee7d"`
		Fee30d          float64  `json:"fee30d"`
		Volume24h       float64  `json:"volume24h"`
		Volume7d        float64  `json:"volume7d"`
		Volume30d       float64  `json:"volume30d"`
		Liquidity       float64  `json:"liquidity"`
		TokenAmountCoin float64  `json:"tokenAmountCoin"`
		TokenAmountPc   float64  `json:"tokenAmountPc"`
		TokenAmountLp   float64  `json:"tokenAmountLp"`
		Official        bool     `json:"official"`
	}
	if err := c.get(ctx, pathPairs, &doc); err != nil {
		return nil, fmt.Errorf("fetch pairs: %w", err)
	}

	pairs := make([]domain.PairInfo, 0, len(doc))
	for _, p := range doc {
		pair := domain.PairInfo{
			AmmID:           p.AmmID,
			Name:            p.Name,
			LpMint:          p.LpMint,
			Market:          p.Market,
			Price:           p.Price,
			Apr24h:          p.Apr24h,
			Apr7d:           p.Apr7d,
			Apr30d:          p.Apr30d,
			Fee24h:          p.Fee24h,
			Fee7d:           p.Fee7d,
			Fee30d:          p.Fee30d,
			Volume24h:       p.Volume24h,
			Volume7d:        p.Volume7d,
			Volume30d:       p.Volume30d,
			Liquidity:       p.Liquidity,
			TokenAmountCoin: p.TokenAmountCoin,
			TokenAmountPc:   p.TokenAmountPc,
			TokenAmountLp:   p.TokenAmountLp,
			Official:        p.Official,
		}
		if p.LpPrice != nil {
			pair.LpPrice = *p.LpPrice
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// jsonLiquidity mirrors one pool entry of the liquidity list document.
type jsonLiquidity struct {
	ID               string `json:"id"`
	BaseMint         string `json:"baseMint"`
	QuoteMint        string `json:"quoteMint"`
	LpMint           string `json:"lpMint"`
	BaseDecimals     int    `json:"baseDecimals"`
	QuoteDecimals    int    `json:"quoteDecimals"`
	LpDecimals       int    `json:"lpDecimals"`
	Version          int    `json:"version"`
	ProgramID        string `json:"programId"`
	Authority        string `json:"authority"`
	OpenOrders       string `json:"openOrders"`
	TargetOrders     string `json:"targetOrders"`
	BaseVault        string `json:"baseVault"`
	QuoteVault       string `json:"quoteVault"`
	WithdrawQueue    string `json:"withdrawQueue"`
	LpVault          string `json:"lpVault"`
	MarketProgramID  string `json:"marketProgramId"`
	MarketID         string `json:"marketId"`
	MarketAuthority  string `json:"marketAuthority"`
	MarketBaseVault  string `json:"marketBaseVault"`
	MarketQuoteVault string `json:"marketQuoteVault"`
	MarketBids       string `json:"marketBids"`
	MarketAsks       string `json:"marketAsks"`
	MarketEventQueue string `json:"marketEventQueue"`
}

func (l *jsonLiquidity) toDomain(official bool) domain.LiquidityInfo {
	return domain.LiquidityInfo{
		ID:               l.ID,
		BaseMint:         l.BaseMint,
		QuoteMint:        l.QuoteMint,
		LpMint:           l.LpMint,
		BaseDecimals:     l.BaseDecimals,
		QuoteDecimals:    l.QuoteDecimals,
		LpDecimals:       l.LpDecimals,
		Version:          l.Version,
		ProgramID:        l.ProgramID,
		Authority:        l.Authority,
		OpenOrders:       l.OpenOrders,
		TargetOrders:     l.TargetOrders,
		BaseVault:        l.BaseVault,
		QuoteVault:       l.QuoteVault,
		WithdrawQueue:    l.WithdrawQueue,
		LpVault:          l.LpVault,
		MarketProgramID:  l.MarketProgramID,
		MarketID:         l.MarketID,
		MarketAuthority:  l.MarketAuthority,
		MarketBaseVault:  l.MarketBaseVault,
		MarketQuoteVault: l.MarketQuoteVault,
		MarketBids:       l.MarketBids,
		MarketAsks:       l.MarketAsks,
		MarketEventQueue: l.MarketEventQueue,
		Official:         official,
	}
}

// FetchLiquidity retrieves the liquidity pool list, official entries
// before unofficial ones. Resolution relies on this order.
func (c *Client) FetchLiquidity(ctx context.Context) ([]domain.LiquidityInfo, error) {
	var doc struct {
		Official   []jsonLiquidity `json:"official"`
		UnOfficial []jsonLiquidity `json:"unOfficial"`
	}
	if err := c.get(ctx, pathLiquidity, &doc); err != nil {
		return nil, fmt.Errorf("fetch liquidity: %w", err)
	}

	pools := make([]domain.LiquidityInfo, 0, len(doc.Official)+len(doc.UnOfficial))
	for i := range doc.Official {
		pools = append(pools, doc.Official[i].toDomain(true))
	}
	for i := range doc.UnOfficial {
		pools = append(pools, doc.UnOfficial[i].toDomain(false))
	}
	return pools, nil
}

// FetchTokens retrieves the token list as a lookup table, official tokens
// taking precedence over unofficial ones on symbol collision.
func (c *Client) FetchTokens(ctx context.Context) (domain.TokenTable, error) {
	var doc struct {
		Official   []jsonToken `json:"official"`
		UnOfficial []jsonToken `json:"unOfficial"`
	}
	if err := c.get(ctx, pathTokens, &doc); err != nil {
		return domain.TokenTable{}, fmt.Errorf("fetch tokens: %w", err)
	}

	tokens := make([]domain.TokenInfo, 0, len(doc.Official)+len(doc.UnOfficial))
	for _, t := range append(doc.Official, doc.UnOfficial...) {
		tokens = append(tokens, domain.TokenInfo{
			Symbol:      t.Symbol,
			Name:        t.Name,
			Mint:        t.Mint,
			Decimals:    t.Decimals,
			CoingeckoID: t.Extensions.CoingeckoID,
			Icon:        t.Icon,
			HasFreeze:   t.HasFreeze != 0,
		})
	}
	return domain.NewTokenTable(tokens), nil
}

type jsonToken struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Mint       string `json:"mint"`
	Decimals   int    `json:"decimals"`
	Extensions struct {
		CoingeckoID string `json:"coingeckoId"`
	} `json:"extensions"`
	Icon      string `json:"icon"`
	HasFreeze int    `json:"hasFreeze"`
}

// FetchPrices retrieves the mint → USD unit price table.
func (c *Client) FetchPrices(ctx context.Context) (domain.PriceTable, error) {
	var doc map[string]float64
	if err := c.get(ctx, pathPrices, &doc); err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	return domain.PriceTable(doc), nil
}

// FetchChainTime retrieves the chain clock and returns the current chain
// date in milliseconds (chainTime plus reported offset).
func (c *Client) FetchChainTime(ctx context.Context) (ChainTime, error) {
	var doc struct {
		ChainTime int64 `json:"chainTime"`
		Offset    int64 `json:"offset"`
	}
	if err := c.get(ctx, pathChainTime, &doc); err != nil {
		return ChainTime{}, fmt.Errorf("fetch chain time: %w", err)
	}
	return ChainTime{Seconds: doc.ChainTime, Offset: doc.Offset}, nil
}

// ChainTime is the chain clock as reported by the API.
type ChainTime struct {
	Seconds int64 // chain time, unix seconds
	Offset  int64 // reported clock offset, seconds
}

// Millis returns the current chain date in milliseconds.
func (t ChainTime) Millis() int64 {
	return t.Seconds*1000 + t.Offset*1000
}
