package polymarket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kwatts/spreadarb/internal/domain"
)

// Normalize converts raw Gamma market records into canonical contracts.
// Records whose encoded price or outcome arrays fail to parse are skipped
// individually; one malformed record never drops the remainder of the batch.
func Normalize(markets []APIMarket, logger *slog.Logger) []domain.Contract {
	out := make([]domain.Contract, 0, len(markets))
	for i := range markets {
		c, err := markets[i].ToContract()
		if err != nil {
			logger.Warn("polymarket: skipping malformed record",
				slog.String("market_id", markets[i].ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		out = append(out, c)
	}
	return out
}

// Source couples the Gamma client with the adapter so the scanner can treat
// both venues uniformly.
type Source struct {
	client *Client
	logger *slog.Logger
}

// NewSource creates a scanner source backed by the given Gamma client.
func NewSource(client *Client, logger *slog.Logger) *Source {
	return &Source{
		client: client,
		logger: logger.With(slog.String("component", "polymarket_source")),
	}
}

// Venue reports the venue this source feeds.
func (s *Source) Venue() domain.Venue { return domain.VenuePolymarket }

// Fetch lists the venue's open markets and normalizes them. A fetch failure
// is returned as-is so the scanner can distinguish "venue down" from "venue
// has no spreads".
func (s *Source) Fetch(ctx context.Context) ([]domain.Contract, error) {
	markets, err := s.client.ListMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: polymarket: %v", domain.ErrVenueUnavailable, err)
	}
	return Normalize(markets, s.logger), nil
}
