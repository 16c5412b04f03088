package solana

import "encoding/base64"

// AccountInfo represents Solana account information.
type AccountInfo struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Data       string `json:"data"` // base64 encoded
	Executable bool   `json:"executable"`
	RentEpoch  uint64 `json:"rentEpoch"`
}

// DecodeData returns the account data as raw bytes.
func (a *AccountInfo) DecodeData() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Data)
}

// TokenAmount is the balance of an SPL token account as reported by
// getTokenAccountBalance. UIAmount is nil when the node cannot report a
// display value; callers must treat that as data unavailable.
type TokenAmount struct {
	Amount         string   `json:"amount"` // raw integer amount
	Decimals       int      `json:"decimals"`
	UIAmount       *float64 `json:"uiAmount"`
	UIAmountString string   `json:"uiAmountString"`
}

// TokenAccount is one entry from getTokenAccountsByOwner: the account
// address plus its undecoded SPL account data.
type TokenAccount struct {
	Pubkey string
	Data   []byte
}

// PerformanceSample is one entry from getRecentPerformanceSamples.
type PerformanceSample struct {
	Slot             int64 `json:"slot"`
	NumSlots         int64 `json:"numSlots"`
	NumTransactions  int64 `json:"numTransactions"`
	SamplePeriodSecs int64 `json:"samplePeriodSecs"`
}
