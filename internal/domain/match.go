package domain

import "fmt"

// MatchedPair is one contract from each venue referring to the same game and
// the same canonical line.
type MatchedPair struct {
	Polymarket ResolvedContract
	Kalshi     ResolvedContract
}

// Key returns the shared game key of the pair.
func (p MatchedPair) Key() GameKey { return p.Polymarket.Key }

// Line returns the shared canonical line of the pair.
func (p MatchedPair) Line() float64 { return p.Polymarket.RLine }

// Ambiguity describes a (GameKey, line) group that could not be paired
// cleanly: duplicate listings on one venue, or no counterparty on the other.
// Ambiguous groups are excluded from matching and surfaced as warnings; they
// are a data-quality signal, never a silent pair.
type Ambiguity struct {
	Key             GameKey
	Line            float64
	PolymarketCount int
	KalshiCount     int
}

func (a Ambiguity) String() string {
	return fmt.Sprintf("%s line=%g poly=%d kalshi=%d", a.Key, a.Line, a.PolymarketCount, a.KalshiCount)
}
