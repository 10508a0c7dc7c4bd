package arbitrage

import (
	"io"
	"log/slog"
	"testing"

	"github.com/kwatts/spreadarb/internal/domain"
)

func testEvaluator(fee float64) *Evaluator {
	return NewEvaluator(fee, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// pair builds a matched pair where slot A on Polymarket and YES on Kalshi both
// price "favorite covers".
func pair(polyFav, polyDog, kalshiFav, kalshiDog float64) domain.MatchedPair {
	key := domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-08"}
	return domain.MatchedPair{
		Polymarket: domain.ResolvedContract{
			Contract: domain.Contract{
				Venue:         domain.VenuePolymarket,
				OutcomeAPrice: polyFav,
				OutcomeBPrice: polyDog,
			},
			Key:          key,
			RLine:        3.5,
			Favored:      "PHI",
			FavoredSlotA: true,
		},
		Kalshi: domain.ResolvedContract{
			Contract: domain.Contract{
				Venue:         domain.VenueKalshi,
				OutcomeAPrice: kalshiFav,
				OutcomeBPrice: kalshiDog,
			},
			Key:          key,
			RLine:        3.5,
			Favored:      "PHI",
			FavoredSlotA: true,
		},
	}
}

func TestEvaluateExactProfit(t *testing.T) {
	// Favorite at 0.40 on Polymarket, underdog at 0.55 on Kalshi. The other
	// direction (0.60 + 0.60) is a loser.
	opp := testEvaluator(0).Evaluate(pair(0.40, 0.60, 0.60, 0.55))
	if opp == nil {
		t.Fatal("Evaluate = nil, want an opportunity")
	}
	if opp.Direction != domain.DirectionFavPolyDogKalshi {
		t.Errorf("Direction = %s, want %s", opp.Direction, domain.DirectionFavPolyDogKalshi)
	}
	if got := opp.Profit.String(); got != "0.05" {
		t.Errorf("Profit = %s, want exactly 0.05", got)
	}
	if opp.ID == "" {
		t.Error("ID is empty")
	}
}

func TestEvaluateFeeMarginEatsTheEdge(t *testing.T) {
	if opp := testEvaluator(0.06).Evaluate(pair(0.40, 0.60, 0.60, 0.55)); opp != nil {
		t.Errorf("Evaluate = %+v, want nil with fee margin 0.06", opp)
	}
}

func TestEvaluateNoOpportunityAtOrAboveOne(t *testing.T) {
	tests := []struct {
		name string
		p    domain.MatchedPair
		fee  float64
	}{
		{name: "both directions above one", p: pair(0.52, 0.50, 0.51, 0.49)},
		{name: "exactly one", p: pair(0.45, 0.60, 0.60, 0.55)},
		{name: "fee pushes sum to one", p: pair(0.40, 0.60, 0.60, 0.55), fee: 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if opp := testEvaluator(tt.fee).Evaluate(tt.p); opp != nil {
				t.Errorf("Evaluate = %+v, want nil", opp)
			}
		})
	}
}

func TestEvaluatePicksBetterDirection(t *testing.T) {
	// Direction 1: 0.40 + 0.55 = 0.95 (profit 0.05).
	// Direction 2: 0.45 + 0.45 = 0.90 (profit 0.10).
	opp := testEvaluator(0).Evaluate(pair(0.40, 0.45, 0.45, 0.55))
	if opp == nil {
		t.Fatal("Evaluate = nil, want an opportunity")
	}
	if opp.Direction != domain.DirectionFavKalshiDogPoly {
		t.Errorf("Direction = %s, want %s", opp.Direction, domain.DirectionFavKalshiDogPoly)
	}
	if got := opp.Profit.String(); got != "0.1" {
		t.Errorf("Profit = %s, want 0.1", got)
	}
}

func TestEvaluateFavoredMismatchSkipped(t *testing.T) {
	p := pair(0.40, 0.60, 0.60, 0.55)
	p.Kalshi.Favored = "ATL"
	if opp := testEvaluator(0).Evaluate(p); opp != nil {
		t.Errorf("Evaluate = %+v, want nil when venues disagree on the favorite", opp)
	}
}

func TestEvaluateSlotAlignment(t *testing.T) {
	// Same prices as the exact-profit case, but the Polymarket contract quotes
	// the underdog in slot A. The favorite price sits in slot B.
	p := pair(0.60, 0.40, 0.60, 0.55)
	p.Polymarket.FavoredSlotA = false
	opp := testEvaluator(0).Evaluate(p)
	if opp == nil {
		t.Fatal("Evaluate = nil, want an opportunity")
	}
	if got := opp.Profit.String(); got != "0.05" {
		t.Errorf("Profit = %s, want 0.05", got)
	}
	if opp.Direction != domain.DirectionFavPolyDogKalshi {
		t.Errorf("Direction = %s, want %s", opp.Direction, domain.DirectionFavPolyDogKalshi)
	}
}

func TestEvaluateAll(t *testing.T) {
	pairs := []domain.MatchedPair{
		pair(0.40, 0.60, 0.60, 0.55), // profitable
		pair(0.52, 0.50, 0.51, 0.49), // not profitable
	}
	opps := testEvaluator(0).EvaluateAll(pairs)
	if len(opps) != 1 {
		t.Fatalf("EvaluateAll returned %d opportunities, want 1", len(opps))
	}
}
