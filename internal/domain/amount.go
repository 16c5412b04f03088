package domain

import "github.com/shopspring/decimal"

// On-chain amounts are raw integers; every monetary figure leaving this
// server is a display value obtained as raw / 10^decimals. Conversions go
// through these helpers so raw and scaled values never mix silently.

// ScaleRaw converts a raw integer amount to display units.
func ScaleRaw(raw decimal.Decimal, decimals int) decimal.Decimal {
	return raw.Shift(int32(-decimals))
}

// ScaleRawUint is ScaleRaw for amounts already held as uint64.
func ScaleRawUint(raw uint64, decimals int) decimal.Decimal {
	return ScaleRaw(decimal.NewFromUint64(raw), decimals)
}

// UnscaleAmount converts a display-unit amount to its raw integer form,
// truncating any precision beyond the token's decimals.
func UnscaleAmount(amount decimal.Decimal, decimals int) uint64 {
	return uint64(amount.Shift(int32(decimals)).Truncate(0).IntPart())
}
