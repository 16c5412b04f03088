package farm

import (
	"github.com/shopspring/decimal"

	"raydium-farm-server/internal/solana"
)

// PerformanceSampleCount is how many recent samples feed the
// blocks-per-second estimate. The figure is approximate by nature and is
// re-sampled on every request; nothing is smoothed across requests.
const PerformanceSampleCount = 4

// samplePeriodSeconds is the node's fixed performance sample interval.
const samplePeriodSeconds = 60

// EstimateBlocksPerSecond averages slot production over recent
// performance samples and normalizes to a per-second rate. No samples
// yields zero, which downstream APR math treats as "no emission".
func EstimateBlocksPerSecond(samples []solana.PerformanceSample) decimal.Decimal {
	if len(samples) == 0 {
		return decimal.Zero
	}

	var total int64
	for _, s := range samples {
		total += s.NumSlots
	}

	return decimal.NewFromInt(total).
		Div(decimal.NewFromInt(int64(len(samples)))).
		Div(decimal.NewFromInt(samplePeriodSeconds))
}
