package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwatts/spreadarb/internal/domain"
	"github.com/kwatts/spreadarb/internal/resolve"
)

func testOpportunity() domain.ArbOpportunity {
	key := domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-08"}
	return domain.ArbOpportunity{
		ID: "test-id",
		Pair: domain.MatchedPair{
			Polymarket: domain.ResolvedContract{Key: key, RLine: 3.5, Favored: "PHI", FavoredSlotA: true},
			Kalshi:     domain.ResolvedContract{Key: key, RLine: 3.5, Favored: "PHI", FavoredSlotA: true},
		},
		Direction:    domain.DirectionFavPolyDogKalshi,
		FavoredCost:  decimal.RequireFromString("0.4"),
		UnderdogCost: decimal.RequireFromString("0.55"),
		FeeMargin:    decimal.Zero,
		Profit:       decimal.RequireFromString("0.05"),
		DetectedAt:   time.Now(),
	}
}

func TestOpportunityMessage(t *testing.T) {
	msg := OpportunityMessage(testOpportunity(), resolve.DefaultTable())

	if msg.Event != EventArbDetected {
		t.Errorf("Event = %q, want %q", msg.Event, EventArbDetected)
	}
	if !strings.Contains(msg.Title, "+5.00%") {
		t.Errorf("Title = %q, want profit percentage", msg.Title)
	}
	for _, want := range []string{
		"Atlanta Falcons",
		"Philadelphia Eagles",
		"2025-09-08",
		"Polymarket @ 0.4",
		"Kalshi @ 0.55",
		"0.05 per unit",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("Body missing %q:\n%s", want, msg.Body)
		}
	}
	// Zero fee margin is not worth a line.
	if strings.Contains(msg.Body, "Fee margin") {
		t.Errorf("Body mentions fee margin at zero:\n%s", msg.Body)
	}
}

func TestVenueDownMessage(t *testing.T) {
	msg := VenueDownMessage(domain.VenueKalshi, errors.New("connection refused"))
	if msg.Event != EventVenueUnavailable {
		t.Errorf("Event = %q, want %q", msg.Event, EventVenueUnavailable)
	}
	if !strings.Contains(msg.Title, "kalshi") {
		t.Errorf("Title = %q, want the venue name", msg.Title)
	}
	if !strings.Contains(msg.Body, "connection refused") {
		t.Errorf("Body = %q, want the cause", msg.Body)
	}
}
