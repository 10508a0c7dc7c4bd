// Package settle filters out contracts whose prices indicate the underlying
// event has already resolved. A resolved market's price degenerates to the
// boolean outcome and carries no tradeable spread information; letting it
// into matching produces false arbitrage signals.
package settle

import "github.com/kwatts/spreadarb/internal/domain"

// DefaultEpsilon is the default distance from 0 or 1 within which a price is
// treated as degenerate.
const DefaultEpsilon = 1e-6

// IsSettled reports whether either outcome price of the contract lies within
// epsilon of 0 or 1. Both prices are checked independently; either one
// triggering is sufficient. epsilon <= 0 falls back to DefaultEpsilon.
func IsSettled(c domain.Contract, epsilon float64) bool {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return nearBool(c.OutcomeAPrice, epsilon) || nearBool(c.OutcomeBPrice, epsilon)
}

// Filter returns the contracts that are still live. Settled contracts are
// dropped, not flagged; nothing downstream needs them.
func Filter(contracts []domain.Contract, epsilon float64) []domain.Contract {
	out := make([]domain.Contract, 0, len(contracts))
	for _, c := range contracts {
		if IsSettled(c, epsilon) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func nearBool(p, epsilon float64) bool {
	return (p >= -epsilon && p <= epsilon) || (p >= 1-epsilon && p <= 1+epsilon)
}
