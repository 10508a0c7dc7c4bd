// Package arbitrage evaluates matched cross-venue pairs for guaranteed-profit
// position combinations. A spread pair admits two candidate combinations,
// favorite-covers on one venue plus underdog-covers on the other; exactly one
// leg of each combination pays out, so the combination is profitable whenever
// the two entry prices plus fees sum below 1.
package arbitrage

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kwatts/spreadarb/internal/domain"
)

var one = decimal.NewFromInt(1)

// Evaluator prices the two position combinations of a matched pair. Profit
// arithmetic is done in decimals so that reported margins are exact; venue
// prices arrive as floats but convert losslessly enough at quote precision.
type Evaluator struct {
	feeMargin decimal.Decimal
	logger    *slog.Logger
}

// NewEvaluator creates an evaluator applying the given flat fee margin per
// combination. The margin models venue fees and slippage; 0 disables it.
func NewEvaluator(feeMargin float64, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		feeMargin: decimal.NewFromFloat(feeMargin),
		logger:    logger.With(slog.String("component", "evaluator")),
	}
}

// Evaluate returns the most profitable combination on the pair, or nil when
// neither combination clears the fee margin. Pairs whose venues disagree on
// which team is favored are rejected outright: at equal line magnitude the two
// propositions are then not logically complementary, and pricing them as if
// they were would report phantom profit.
func (e *Evaluator) Evaluate(pair domain.MatchedPair) *domain.ArbOpportunity {
	if pair.Polymarket.Favored != pair.Kalshi.Favored {
		e.logger.Warn("favored team mismatch, pair skipped",
			slog.String("game", pair.Key().String()),
			slog.String("polymarket_favored", pair.Polymarket.Favored),
			slog.String("kalshi_favored", pair.Kalshi.Favored),
		)
		return nil
	}

	candidates := []struct {
		direction domain.Direction
		favored   float64
		underdog  float64
	}{
		{domain.DirectionFavPolyDogKalshi, pair.Polymarket.FavoredCoverPrice(), pair.Kalshi.UnderdogCoverPrice()},
		{domain.DirectionFavKalshiDogPoly, pair.Kalshi.FavoredCoverPrice(), pair.Polymarket.UnderdogCoverPrice()},
	}

	var best *domain.ArbOpportunity
	for _, c := range candidates {
		fav := decimal.NewFromFloat(c.favored)
		dog := decimal.NewFromFloat(c.underdog)
		profit := one.Sub(fav).Sub(dog).Sub(e.feeMargin)
		if profit.Sign() <= 0 {
			continue
		}
		if best != nil && profit.LessThanOrEqual(best.Profit) {
			continue
		}
		best = &domain.ArbOpportunity{
			ID:           uuid.NewString(),
			Pair:         pair,
			Direction:    c.direction,
			FavoredCost:  fav,
			UnderdogCost: dog,
			FeeMargin:    e.feeMargin,
			Profit:       profit,
			DetectedAt:   time.Now().UTC(),
		}
	}
	return best
}

// EvaluateAll evaluates every pair and collects the opportunities.
func (e *Evaluator) EvaluateAll(pairs []domain.MatchedPair) []domain.ArbOpportunity {
	var out []domain.ArbOpportunity
	for _, p := range pairs {
		if opp := e.Evaluate(p); opp != nil {
			out = append(out, *opp)
		}
	}
	return out
}
