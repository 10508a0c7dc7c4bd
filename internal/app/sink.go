package app

import (
	"context"
	"log/slog"

	"github.com/kwatts/spreadarb/internal/domain"
	"github.com/kwatts/spreadarb/internal/metrics"
	"github.com/kwatts/spreadarb/internal/notify"
	"github.com/kwatts/spreadarb/internal/scanner"
)

// alertSink receives scanner outcomes and turns them into operator alerts.
// The cooldown gate sits here, not in the scanner: detection should see every
// opportunity every cycle, alerting should not.
type alertSink struct {
	cooldown scanner.Cooldown
	notifier *notify.Notifier
	names    notify.TeamNamer
	metrics  *metrics.ScanMetrics
	logger   *slog.Logger
}

func newAlertSink(cooldown scanner.Cooldown, notifier *notify.Notifier, names notify.TeamNamer, m *metrics.ScanMetrics, logger *slog.Logger) *alertSink {
	return &alertSink{
		cooldown: cooldown,
		notifier: notifier,
		names:    names,
		metrics:  m,
		logger:   logger.With(slog.String("component", "alert_sink")),
	}
}

// Opportunities logs and alerts each detected opportunity. A cooldown backend
// error fails open: a duplicate alert is cheaper than a missed one.
func (s *alertSink) Opportunities(ctx context.Context, opps []domain.ArbOpportunity) {
	for _, opp := range opps {
		s.logger.Info("arbitrage opportunity",
			slog.String("id", opp.ID),
			slog.String("game", opp.Pair.Key().String()),
			slog.Float64("line", opp.Pair.Line()),
			slog.String("direction", string(opp.Direction)),
			slog.String("profit", opp.Profit.String()),
		)

		allowed, err := s.cooldown.Allow(ctx, opp.DedupKey())
		if err != nil {
			s.logger.Warn("cooldown check failed, alerting anyway",
				slog.String("key", opp.DedupKey()),
				slog.String("error", err.Error()),
			)
			allowed = true
		}
		if !allowed {
			s.metrics.AlertsSuppressed.Inc()
			s.logger.Debug("alert suppressed by cooldown", slog.String("key", opp.DedupKey()))
			continue
		}

		s.metrics.AlertsSent.Inc()
		if err := s.notifier.Notify(ctx, notify.OpportunityMessage(opp, s.names)); err != nil {
			s.logger.Error("opportunity alert delivery failed", slog.String("error", err.Error()))
		}
	}
}

// VenueUnavailable alerts a venue fetch failure. The same cooldown window
// applies so a venue outage produces one alert per window, not one per cycle.
func (s *alertSink) VenueUnavailable(ctx context.Context, venue domain.Venue, fetchErr error) {
	allowed, err := s.cooldown.Allow(ctx, "venue_down:"+string(venue))
	if err != nil {
		allowed = true
	}
	if !allowed {
		return
	}
	if err := s.notifier.Notify(ctx, notify.VenueDownMessage(venue, fetchErr)); err != nil {
		s.logger.Error("venue alert delivery failed",
			slog.String("venue", string(venue)),
			slog.String("error", err.Error()),
		)
	}
}
