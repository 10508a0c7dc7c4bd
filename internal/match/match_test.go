package match

import (
	"reflect"
	"testing"

	"github.com/kwatts/spreadarb/internal/domain"
)

func resolved(venue domain.Venue, id string, key domain.GameKey, line float64) domain.ResolvedContract {
	return domain.ResolvedContract{
		Contract: domain.Contract{Venue: venue, ExternalID: id},
		Key:      key,
		RLine:    line,
		Favored:  key.TeamB,
	}
}

var (
	gamePhiAtl = domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-08"}
	gameGbChi  = domain.GameKey{TeamA: "CHI", TeamB: "GB", Date: "2025-09-08"}
)

func TestPairsHappyPath(t *testing.T) {
	input := []domain.ResolvedContract{
		resolved(domain.VenuePolymarket, "p1", gamePhiAtl, 3.5),
		resolved(domain.VenueKalshi, "k1", gamePhiAtl, 3.5),
		resolved(domain.VenuePolymarket, "p2", gameGbChi, 7),
		resolved(domain.VenueKalshi, "k2", gameGbChi, 7),
	}

	pairs, ambiguities := Pairs(input, 0, 0)
	if len(ambiguities) != 0 {
		t.Fatalf("ambiguities = %v, want none", ambiguities)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	// Sorted by game key string: ATL@PHI before CHI@GB.
	if pairs[0].Polymarket.ExternalID != "p1" || pairs[0].Kalshi.ExternalID != "k1" {
		t.Errorf("pairs[0] = %s/%s, want p1/k1", pairs[0].Polymarket.ExternalID, pairs[0].Kalshi.ExternalID)
	}
	if pairs[1].Polymarket.ExternalID != "p2" || pairs[1].Kalshi.ExternalID != "k2" {
		t.Errorf("pairs[1] = %s/%s, want p2/k2", pairs[1].Polymarket.ExternalID, pairs[1].Kalshi.ExternalID)
	}
}

func TestPairsDifferentLinesDoNotMatch(t *testing.T) {
	input := []domain.ResolvedContract{
		resolved(domain.VenuePolymarket, "p1", gamePhiAtl, 3.5),
		resolved(domain.VenueKalshi, "k1", gamePhiAtl, 7.5),
	}

	pairs, ambiguities := Pairs(input, 0, 0)
	if len(pairs) != 0 {
		t.Errorf("got %d pairs across different lines, want 0", len(pairs))
	}
	if len(ambiguities) != 0 {
		t.Errorf("singleton groups flagged ambiguous: %v", ambiguities)
	}
}

func TestPairsDuplicateVenueIsAmbiguous(t *testing.T) {
	input := []domain.ResolvedContract{
		resolved(domain.VenuePolymarket, "p1", gamePhiAtl, 3.5),
		resolved(domain.VenueKalshi, "k1", gamePhiAtl, 3.5),
		resolved(domain.VenueKalshi, "k2", gamePhiAtl, 3.5),
	}

	pairs, ambiguities := Pairs(input, 0, 0)
	if len(pairs) != 0 {
		t.Fatalf("got %d pairs from an ambiguous group, want 0", len(pairs))
	}
	if len(ambiguities) != 1 {
		t.Fatalf("got %d ambiguities, want 1", len(ambiguities))
	}
	amb := ambiguities[0]
	if amb.Key != gamePhiAtl || amb.Line != 3.5 || amb.PolymarketCount != 1 || amb.KalshiCount != 2 {
		t.Errorf("ambiguity = %+v", amb)
	}
}

func TestPairsSameVenueOnlyIsAmbiguous(t *testing.T) {
	input := []domain.ResolvedContract{
		resolved(domain.VenueKalshi, "k1", gamePhiAtl, 3.5),
		resolved(domain.VenueKalshi, "k2", gamePhiAtl, 3.5),
	}

	pairs, ambiguities := Pairs(input, 0, 0)
	if len(pairs) != 0 {
		t.Fatalf("got %d pairs, want 0", len(pairs))
	}
	if len(ambiguities) != 1 || ambiguities[0].KalshiCount != 2 || ambiguities[0].PolymarketCount != 0 {
		t.Fatalf("ambiguities = %v, want one group with 2 kalshi / 0 polymarket", ambiguities)
	}
}

func TestPairsSymmetricInInputOrder(t *testing.T) {
	input := []domain.ResolvedContract{
		resolved(domain.VenuePolymarket, "p1", gamePhiAtl, 3.5),
		resolved(domain.VenueKalshi, "k1", gamePhiAtl, 3.5),
		resolved(domain.VenueKalshi, "k2", gameGbChi, 7),
		resolved(domain.VenuePolymarket, "p2", gameGbChi, 7),
		resolved(domain.VenueKalshi, "k3", gameGbChi, 3),
	}
	reversed := make([]domain.ResolvedContract, len(input))
	for i, rc := range input {
		reversed[len(input)-1-i] = rc
	}

	p1, a1 := Pairs(input, 0, 0)
	p2, a2 := Pairs(reversed, 0, 0)
	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("pairs differ under input reversal:\n%v\n%v", p1, p2)
	}
	if !reflect.DeepEqual(a1, a2) {
		t.Errorf("ambiguities differ under input reversal:\n%v\n%v", a1, a2)
	}
}

func TestPairsDayTolerance(t *testing.T) {
	// A 00:20 UTC kickoff dates the Polymarket contract one calendar day
	// after the Kalshi ticker date.
	input := []domain.ResolvedContract{
		resolved(domain.VenuePolymarket, "p1", domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-09"}, 3.5),
		resolved(domain.VenueKalshi, "k1", domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-08"}, 3.5),
	}

	if pairs, _ := Pairs(input, 0, 0); len(pairs) != 0 {
		t.Errorf("exact matching paired dates one day apart")
	}
	pairs, ambiguities := Pairs(input, 0, 1)
	if len(pairs) != 1 {
		t.Fatalf("day tolerance 1 got %d pairs, want 1", len(pairs))
	}
	if len(ambiguities) != 0 {
		t.Errorf("ambiguities = %v, want none", ambiguities)
	}

	// Tolerance 1 still keeps games further apart distinct.
	farApart := []domain.ResolvedContract{
		resolved(domain.VenuePolymarket, "p1", domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-14"}, 3.5),
		resolved(domain.VenueKalshi, "k1", domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-08"}, 3.5),
	}
	if pairs, _ := Pairs(farApart, 0, 1); len(pairs) != 0 {
		t.Errorf("day tolerance 1 paired games a week apart")
	}
}

func TestPairsLineTolerance(t *testing.T) {
	input := []domain.ResolvedContract{
		resolved(domain.VenuePolymarket, "p1", gamePhiAtl, 3.0),
		resolved(domain.VenueKalshi, "k1", gamePhiAtl, 3.5),
	}

	if pairs, _ := Pairs(input, 0, 0); len(pairs) != 0 {
		t.Errorf("exact matching paired lines 3.0 and 3.5")
	}
	pairs, _ := Pairs(input, 0.5, 0)
	if len(pairs) != 1 {
		t.Fatalf("tolerance 0.5 got %d pairs, want 1", len(pairs))
	}
}
