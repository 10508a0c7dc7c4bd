package resolve

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/kwatts/spreadarb/internal/domain"
)

func testResolver() *Resolver {
	return NewResolver(DefaultTable(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func floatPtr(v float64) *float64 { return &v }

func TestResolveKalshi(t *testing.T) {
	r := testResolver()

	rc, err := r.Resolve(domain.Contract{
		Venue:      domain.VenueKalshi,
		ExternalID: "KXNFLSPREAD-25SEP08PHIATL-PHI3.5",
		Line:       floatPtr(3.5),
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	wantKey := domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-08"}
	if rc.Key != wantKey {
		t.Errorf("Key = %+v, want %+v", rc.Key, wantKey)
	}
	if rc.RLine != 3.5 {
		t.Errorf("RLine = %g, want 3.5", rc.RLine)
	}
	if rc.Favored != "PHI" {
		t.Errorf("Favored = %q, want PHI", rc.Favored)
	}
	if !rc.FavoredSlotA {
		t.Error("FavoredSlotA = false, want true (YES is favorite covers)")
	}
}

func TestResolveKalshiErrors(t *testing.T) {
	r := testResolver()

	tests := []struct {
		name     string
		contract domain.Contract
		wantErr  error
	}{
		{
			name: "missing line",
			contract: domain.Contract{
				Venue:      domain.VenueKalshi,
				ExternalID: "KXNFLSPREAD-25SEP08PHIATL-PHI3.5",
			},
			wantErr: domain.ErrNoSpreadLine,
		},
		{
			name: "undecodable ticker",
			contract: domain.Contract{
				Venue:      domain.VenueKalshi,
				ExternalID: "something-else-entirely",
				Line:       floatPtr(3.5),
			},
			wantErr: domain.ErrUnknownTeam,
		},
		{
			name: "unknown team blob",
			contract: domain.Contract{
				Venue:      domain.VenueKalshi,
				ExternalID: "KXNFLSPREAD-25SEP08QQQZZZ-QQQ3.5",
				Line:       floatPtr(3.5),
			},
			wantErr: domain.ErrUnknownTeam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.contract)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolvePolymarket(t *testing.T) {
	r := testResolver()
	kickoff := time.Date(2025, 9, 8, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		contract    domain.Contract
		wantFavored string
		wantSlotA   bool
		wantLine    float64
	}{
		{
			name: "negative line favors the subject",
			contract: domain.Contract{
				Venue:         domain.VenuePolymarket,
				ExternalID:    "phi-atl-spread",
				RawLabel:      "Eagles vs. Falcons: Eagles -3.5",
				OutcomeALabel: "Eagles -3.5",
				Line:          floatPtr(-3.5),
				EndTime:       kickoff,
			},
			wantFavored: "PHI",
			wantSlotA:   true,
			wantLine:    3.5,
		},
		{
			name: "positive line favors the other team",
			contract: domain.Contract{
				Venue:         domain.VenuePolymarket,
				ExternalID:    "phi-atl-spread-dog",
				RawLabel:      "Eagles vs. Falcons",
				OutcomeALabel: "Eagles +3.5",
				Line:          floatPtr(3.5),
				EndTime:       kickoff,
			},
			wantFavored: "ATL",
			wantSlotA:   false,
			wantLine:    3.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := r.Resolve(tt.contract)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			wantKey := domain.GameKey{TeamA: "ATL", TeamB: "PHI", Date: "2025-09-08"}
			if rc.Key != wantKey {
				t.Errorf("Key = %+v, want %+v", rc.Key, wantKey)
			}
			if rc.Favored != tt.wantFavored {
				t.Errorf("Favored = %q, want %q", rc.Favored, tt.wantFavored)
			}
			if rc.FavoredSlotA != tt.wantSlotA {
				t.Errorf("FavoredSlotA = %v, want %v", rc.FavoredSlotA, tt.wantSlotA)
			}
			if rc.RLine != tt.wantLine {
				t.Errorf("RLine = %g, want %g", rc.RLine, tt.wantLine)
			}
		})
	}
}

func TestResolvePolymarketErrors(t *testing.T) {
	r := testResolver()

	tests := []struct {
		name     string
		contract domain.Contract
		wantErr  error
	}{
		{
			name: "missing line",
			contract: domain.Contract{
				Venue:    domain.VenuePolymarket,
				RawLabel: "Eagles vs. Falcons",
				EndTime:  time.Now(),
			},
			wantErr: domain.ErrNoSpreadLine,
		},
		{
			name: "missing event date",
			contract: domain.Contract{
				Venue:    domain.VenuePolymarket,
				RawLabel: "Eagles vs. Falcons",
				Line:     floatPtr(-3.5),
			},
			wantErr: domain.ErrNoEventDate,
		},
		{
			name: "only one team in label",
			contract: domain.Contract{
				Venue:    domain.VenuePolymarket,
				RawLabel: "Eagles to cover the spread",
				Line:     floatPtr(-3.5),
				EndTime:  time.Now(),
			},
			wantErr: domain.ErrUnknownTeam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.contract)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
