package domain

// TokenInfo describes an SPL token as published by the Raydium token list.
// Immutable once fetched; a request works against one consistent list.
type TokenInfo struct {
	Symbol      string // Ticker symbol, e.g. "SOL"
	Name        string // Display name
	Mint        string // Mint address (unique per token)
	Decimals    int    // Decimal precision of raw amounts
	CoingeckoID string // Optional extension metadata
	Icon        string
	HasFreeze   bool
}

// TokenTable holds the per-request token lookup mappings.
// Keyed independently by mint and by symbol; the first token fetched
// wins on duplicate symbols (fetch order: official, then unOfficial).
type TokenTable struct {
	ByMint   map[string]TokenInfo
	BySymbol map[string]TokenInfo
}

// NewTokenTable builds both mappings from a token list in fetch order.
func NewTokenTable(tokens []TokenInfo) TokenTable {
	t := TokenTable{
		ByMint:   make(map[string]TokenInfo, len(tokens)),
		BySymbol: make(map[string]TokenInfo, len(tokens)),
	}
	for _, tok := range tokens {
		if _, ok := t.ByMint[tok.Mint]; !ok {
			t.ByMint[tok.Mint] = tok
		}
		if _, ok := t.BySymbol[tok.Symbol]; !ok {
			t.BySymbol[tok.Symbol] = tok
		}
	}
	return t
}

// PriceTable maps token mint address to its USD unit price.
// A missing entry reads as zero, which downstream math treats as
// "this stream contributes nothing" rather than an error.
type PriceTable map[string]float64

// Price returns the unit price for a mint, or 0 when unknown.
func (p PriceTable) Price(mint string) float64 {
	return p[mint]
}
