package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kwatts/spreadarb/internal/domain"
)

// TeamNamer maps canonical team IDs to display names.
type TeamNamer interface {
	Name(id string) string
}

// OpportunityMessage renders a detected opportunity as an alert message.
func OpportunityMessage(opp domain.ArbOpportunity, names TeamNamer) Message {
	key := opp.Pair.Key()
	favored := names.Name(opp.Pair.Polymarket.Favored)

	favVenue, dogVenue := "Polymarket", "Kalshi"
	if opp.Direction == domain.DirectionFavKalshiDogPoly {
		favVenue, dogVenue = "Kalshi", "Polymarket"
	}

	profitPct := opp.Profit.Mul(decimal.NewFromInt(100))

	var b strings.Builder
	fmt.Fprintf(&b, "Game: %s vs %s (%s)\n", names.Name(key.TeamA), names.Name(key.TeamB), key.Date)
	fmt.Fprintf(&b, "Line: %s -%g\n", favored, opp.Pair.Line())
	fmt.Fprintf(&b, "Buy favorite covers on %s @ %s\n", favVenue, opp.FavoredCost)
	fmt.Fprintf(&b, "Buy underdog covers on %s @ %s\n", dogVenue, opp.UnderdogCost)
	if !opp.FeeMargin.IsZero() {
		fmt.Fprintf(&b, "Fee margin: %s\n", opp.FeeMargin)
	}
	fmt.Fprintf(&b, "Guaranteed profit: %s per unit (%s%%)", opp.Profit, profitPct)

	return Message{
		Event: EventArbDetected,
		Title: fmt.Sprintf("Spread arbitrage: %s vs %s, +%s%%", key.TeamA, key.TeamB, profitPct.StringFixed(2)),
		Body:  b.String(),
	}
}

// VenueDownMessage renders a venue fetch failure as an alert message.
func VenueDownMessage(venue domain.Venue, err error) Message {
	return Message{
		Event: EventVenueUnavailable,
		Title: fmt.Sprintf("Venue unavailable: %s", venue),
		Body:  fmt.Sprintf("Listing fetch failed, cycle skipped for this venue.\n%v", err),
	}
}
