package kalshi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kwatts/spreadarb/internal/domain"
)

// Normalize converts Kalshi market records into canonical contracts. Identity
// and line live in the ticker; tickers that fail the spread grammar produce
// no contract at all. That is the expected outcome for moneyline and
// multi-leg products, so it is logged at debug, not as an error.
func Normalize(markets []Market, logger *slog.Logger) []domain.Contract {
	out := make([]domain.Contract, 0, len(markets))
	for i := range markets {
		m := &markets[i]

		info, ok := DecodeTicker(m.Ticker)
		if !ok {
			logger.Debug("kalshi: unrecognized ticker", slog.String("ticker", m.Ticker))
			continue
		}

		// Only tickers whose side token carries a line are spread products;
		// lineless tickers (e.g. KXNFLGAME moneylines) are skipped even when
		// they carry a strike. The strike, when present, is the venue's
		// authoritative line and overrides the ticker-embedded one.
		if !info.HasLine {
			logger.Debug("kalshi: ticker carries no spread line", slog.String("ticker", m.Ticker))
			continue
		}
		line := info.Line
		if m.FloorStrike > 0 {
			line = m.FloorStrike
		}

		yesPrice := normalizeProb(m.YesAsk)
		noPrice := normalizeProb(m.NoAsk)
		if yesPrice == 0 && m.LastPrice > 0 {
			yesPrice = normalizeProb(m.LastPrice)
		}
		if noPrice == 0 && m.LastPrice > 0 {
			noPrice = 1 - normalizeProb(m.LastPrice)
		}

		label := m.Title
		if m.Subtitle != "" {
			label = m.Title + " " + m.Subtitle
		}

		l := line
		out = append(out, domain.Contract{
			Venue:         domain.VenueKalshi,
			ExternalID:    m.Ticker,
			RawLabel:      label,
			OutcomeALabel: "Yes",
			Line:          &l,
			OutcomeAPrice: yesPrice,
			OutcomeBPrice: noPrice,
			Volume:        float64(m.Volume),
			EndTime:       m.endTime(),
		})
	}
	return out
}

// Source couples the Kalshi client with the adapter so the scanner can treat
// both venues uniformly.
type Source struct {
	client *Client
	logger *slog.Logger
}

// NewSource creates a scanner source backed by the given Kalshi client.
func NewSource(client *Client, logger *slog.Logger) *Source {
	return &Source{
		client: client,
		logger: logger.With(slog.String("component", "kalshi_source")),
	}
}

// Venue reports the venue this source feeds.
func (s *Source) Venue() domain.Venue { return domain.VenueKalshi }

// Fetch lists the venue's open markets and normalizes them.
func (s *Source) Fetch(ctx context.Context) ([]domain.Contract, error) {
	markets, err := s.client.ListMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: kalshi: %v", domain.ErrVenueUnavailable, err)
	}
	return Normalize(markets, s.logger), nil
}
