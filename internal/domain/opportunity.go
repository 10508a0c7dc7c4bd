package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction names which venue takes the "favorite covers" leg.
type Direction string

const (
	// DirectionFavPolyDogKalshi buys favorite-covers on Polymarket and
	// underdog-covers on Kalshi.
	DirectionFavPolyDogKalshi Direction = "fav_poly_dog_kalshi"
	// DirectionFavKalshiDogPoly buys favorite-covers on Kalshi and
	// underdog-covers on Polymarket.
	DirectionFavKalshiDogPoly Direction = "fav_kalshi_dog_poly"
)

// ArbOpportunity is a detected risk-free position combination on a matched
// pair. Exactly one of the two legs resolves true regardless of the game
// outcome, so Profit is guaranteed per unit stake. Opportunities are
// transient per-cycle records; nothing in this process persists them.
type ArbOpportunity struct {
	ID           string
	Pair         MatchedPair
	Direction    Direction
	FavoredCost  decimal.Decimal // price paid for the favorite-covers leg
	UnderdogCost decimal.Decimal // price paid for the underdog-covers leg
	FeeMargin    decimal.Decimal
	Profit       decimal.Decimal // 1 - FavoredCost - UnderdogCost - FeeMargin
	DetectedAt   time.Time
}

// DedupKey identifies the opportunity irrespective of detection time, so
// repeated cycles over unchanged venue data collapse to one alert.
func (o ArbOpportunity) DedupKey() string {
	return fmt.Sprintf("%s:%g:%s", o.Pair.Key(), o.Pair.Line(), o.Direction)
}
