// Package scanner drives the detection pipeline: fetch both venues, drop
// settled contracts, resolve identities, match pairs across venues, evaluate
// for arbitrage, and hand opportunities to the sink. Each cycle is stateless;
// all state worth keeping (the alert cooldown) lives behind the sink.
package scanner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kwatts/spreadarb/internal/arbitrage"
	"github.com/kwatts/spreadarb/internal/domain"
	"github.com/kwatts/spreadarb/internal/match"
	"github.com/kwatts/spreadarb/internal/metrics"
	"github.com/kwatts/spreadarb/internal/resolve"
	"github.com/kwatts/spreadarb/internal/settle"
)

// Source lists the live contracts of one venue, already normalized.
type Source interface {
	Venue() domain.Venue
	Fetch(ctx context.Context) ([]domain.Contract, error)
}

// Sink receives the outcomes of a cycle. Calls are synchronous; the sink owns
// alert dedup and delivery.
type Sink interface {
	Opportunities(ctx context.Context, opps []domain.ArbOpportunity)
	VenueUnavailable(ctx context.Context, venue domain.Venue, err error)
}

// Config holds per-cycle tuning.
type Config struct {
	Interval      time.Duration
	SettleEpsilon float64
	LineTolerance float64
	DayTolerance  int
}

// Scanner runs detection cycles over a fixed set of venue sources.
type Scanner struct {
	cfg       Config
	sources   []Source
	resolver  *resolve.Resolver
	evaluator *arbitrage.Evaluator
	sink      Sink
	metrics   *metrics.ScanMetrics
	logger    *slog.Logger
}

// New creates a scanner. All collaborators are required.
func New(cfg Config, sources []Source, resolver *resolve.Resolver, evaluator *arbitrage.Evaluator, sink Sink, m *metrics.ScanMetrics, logger *slog.Logger) *Scanner {
	return &Scanner{
		cfg:       cfg,
		sources:   sources,
		resolver:  resolver,
		evaluator: evaluator,
		sink:      sink,
		metrics:   m,
		logger:    logger.With(slog.String("component", "scanner")),
	}
}

// Run executes cycles at the configured interval until ctx is cancelled. The
// first cycle runs immediately.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("scanner started", slog.Duration("interval", s.cfg.Interval))
	defer s.logger.Info("scanner stopped")

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		s.RunCycle(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunCycle performs one full detection cycle and returns the opportunities it
// found. A venue being unreachable makes the cycle yield nothing; it never
// propagates as an error, because the next cycle retries anyway.
func (s *Scanner) RunCycle(ctx context.Context) []domain.ArbOpportunity {
	started := time.Now()
	defer func() {
		s.metrics.CycleDuration.Observe(time.Since(started).Seconds())
	}()

	batches, venueDown := s.fetchAll(ctx)
	if venueDown {
		s.metrics.CyclesTotal.WithLabelValues("venue_unavailable").Inc()
		return nil
	}

	resolved := s.resolveAll(batches)
	pairs, ambiguities := match.Pairs(resolved, s.cfg.LineTolerance, s.cfg.DayTolerance)
	s.metrics.PairsMatched.Set(float64(len(pairs)))
	s.metrics.AmbiguousGroups.Set(float64(len(ambiguities)))
	for _, amb := range ambiguities {
		s.logger.Warn("ambiguous match group excluded", slog.String("group", amb.String()))
	}

	opps := s.evaluator.EvaluateAll(pairs)
	for _, opp := range opps {
		s.metrics.OpportunitiesSeen.WithLabelValues(string(opp.Direction)).Inc()
	}
	if len(opps) > 0 {
		s.sink.Opportunities(ctx, opps)
	}

	s.metrics.CyclesTotal.WithLabelValues("ok").Inc()
	s.logger.Info("cycle complete",
		slog.Int("pairs", len(pairs)),
		slog.Int("ambiguous", len(ambiguities)),
		slog.Int("opportunities", len(opps)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return opps
}

// fetchAll fetches every source concurrently. A failed venue is reported and
// flags the cycle; partial data from one venue alone cannot be matched, so the
// cycle is abandoned rather than half-run.
func (s *Scanner) fetchAll(ctx context.Context) ([][]domain.Contract, bool) {
	batches := make([][]domain.Contract, len(s.sources))
	fetchErrs := make([]error, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			contracts, err := src.Fetch(gctx)
			if err != nil {
				fetchErrs[i] = err
				return nil
			}
			batches[i] = contracts
			return nil
		})
	}
	_ = g.Wait() // goroutines report through the slices

	venueDown := false
	for i, src := range s.sources {
		if err := fetchErrs[i]; err != nil {
			venueDown = true
			venue := src.Venue()
			s.metrics.VenueUnavailable.WithLabelValues(string(venue)).Inc()
			s.logger.Error("venue unavailable",
				slog.String("venue", string(venue)),
				slog.String("error", err.Error()),
			)
			s.sink.VenueUnavailable(ctx, venue, err)
			continue
		}
		s.metrics.ContractsFetched.WithLabelValues(string(src.Venue())).Add(float64(len(batches[i])))
	}
	return batches, venueDown
}

// resolveAll filters settled contracts and resolves identities. Every
// exclusion is per-record; one bad listing never costs the batch.
func (s *Scanner) resolveAll(batches [][]domain.Contract) []domain.ResolvedContract {
	var resolved []domain.ResolvedContract
	for _, batch := range batches {
		for _, c := range batch {
			if settle.IsSettled(c, s.cfg.SettleEpsilon) {
				s.metrics.ContractsSkipped.WithLabelValues(string(c.Venue), "settled").Inc()
				continue
			}
			rc, err := s.resolver.Resolve(c)
			if err != nil {
				s.metrics.ContractsSkipped.WithLabelValues(string(c.Venue), skipReason(err)).Inc()
				s.logger.Debug("contract excluded",
					slog.String("venue", string(c.Venue)),
					slog.String("id", c.ExternalID),
					slog.String("error", err.Error()),
				)
				continue
			}
			resolved = append(resolved, rc)
		}
	}
	return resolved
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoSpreadLine):
		return "no_spread_line"
	case errors.Is(err, domain.ErrUnknownTeam):
		return "unknown_team"
	case errors.Is(err, domain.ErrNoEventDate):
		return "no_event_date"
	default:
		return "other"
	}
}
