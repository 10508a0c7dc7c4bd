// Package app wires the scanner's dependencies (venue clients, alias table,
// cooldown backend, notifiers, metrics server) from configuration and owns
// the process lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kwatts/spreadarb/internal/arbitrage"
	"github.com/kwatts/spreadarb/internal/cache/redis"
	"github.com/kwatts/spreadarb/internal/config"
	"github.com/kwatts/spreadarb/internal/metrics"
	"github.com/kwatts/spreadarb/internal/notify"
	"github.com/kwatts/spreadarb/internal/platform/kalshi"
	"github.com/kwatts/spreadarb/internal/platform/polymarket"
	"github.com/kwatts/spreadarb/internal/resolve"
	"github.com/kwatts/spreadarb/internal/scanner"
)

// App is the root application object. It owns the configuration, logger, and
// cleanup functions called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates an App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires all dependencies and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting scanner",
		slog.String("log_level", a.cfg.LogLevel),
		slog.Duration("interval", a.cfg.Scanner.Interval.Duration),
	)

	m := metrics.NewScanMetrics()

	cooldown, err := a.wireCooldown(ctx)
	if err != nil {
		return err
	}

	table, err := resolve.LoadTable(a.cfg.Teams.AliasFile)
	if err != nil {
		return fmt.Errorf("app: team aliases: %w", err)
	}
	resolver := resolve.NewResolver(table, a.logger)
	evaluator := arbitrage.NewEvaluator(a.cfg.Scanner.FeeMargin, a.logger)

	sources := []scanner.Source{
		polymarket.NewSource(polymarket.NewClient(polymarket.ClientConfig{
			BaseURL:   a.cfg.Polymarket.GammaHost,
			PageLimit: a.cfg.Polymarket.PageLimit,
			MaxPages:  a.cfg.Polymarket.MaxPages,
			RateRPS:   a.cfg.Polymarket.RateRPS,
			Timeout:   a.cfg.Polymarket.Timeout.Duration,
		}), a.logger),
		kalshi.NewSource(kalshi.NewClient(kalshi.ClientConfig{
			BaseURL:      a.cfg.Kalshi.BaseURL,
			SeriesTicker: a.cfg.Kalshi.SeriesTicker,
			PageLimit:    a.cfg.Kalshi.PageLimit,
			MaxPages:     a.cfg.Kalshi.MaxPages,
			RateRPS:      a.cfg.Kalshi.RateRPS,
			Timeout:      a.cfg.Kalshi.Timeout.Duration,
		}), a.logger),
	}

	sink := newAlertSink(cooldown, a.wireNotifier(), table, m, a.logger)
	sc := scanner.New(scanner.Config{
		Interval:      a.cfg.Scanner.Interval.Duration,
		SettleEpsilon: a.cfg.Scanner.SettleEpsilon,
		LineTolerance: a.cfg.Scanner.LineTolerance,
		DayTolerance:  a.cfg.Scanner.DayTolerance,
	}, sources, resolver, evaluator, sink, m, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sc.Run(gctx) })
	if a.cfg.Server.Enabled {
		g.Go(func() error { return a.serveMetrics(gctx, m) })
	}
	return g.Wait()
}

// Close tears down resources in reverse registration order.
func (a *App) Close() {
	a.logger.Info("shutting down")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// wireCooldown returns the Redis-backed cooldown when an addr is configured,
// else the process-local fallback.
func (a *App) wireCooldown(ctx context.Context) (scanner.Cooldown, error) {
	ttl := a.cfg.Scanner.AlertCooldown.Duration
	if a.cfg.Redis.Addr == "" {
		a.logger.Info("redis not configured, using in-memory alert cooldown")
		return scanner.NewMemoryCooldown(ttl), nil
	}

	client, err := redis.New(ctx, redis.ClientConfig{
		Addr:       a.cfg.Redis.Addr,
		Password:   a.cfg.Redis.Password,
		DB:         a.cfg.Redis.DB,
		PoolSize:   a.cfg.Redis.PoolSize,
		MaxRetries: a.cfg.Redis.MaxRetries,
		TLSEnabled: a.cfg.Redis.TLSEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("app: redis: %w", err)
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	a.logger.Info("redis alert cooldown enabled", slog.String("addr", a.cfg.Redis.Addr))
	return redis.NewCooldown(client, ttl), nil
}

// wireNotifier builds the notifier from whichever channels are configured. No
// channels is valid; opportunities are still logged and counted.
func (a *App) wireNotifier() *notify.Notifier {
	var senders []notify.Sender
	if a.cfg.Notify.TelegramToken != "" {
		senders = append(senders, notify.NewTelegramSender(a.cfg.Notify.TelegramToken, a.cfg.Notify.TelegramChatID))
	}
	if a.cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(a.cfg.Notify.DiscordWebhookURL))
	}
	if len(senders) == 0 {
		a.logger.Info("no notification channels configured, alerts are log-only")
	}
	return notify.NewNotifier(senders, a.cfg.Notify.Events, a.logger)
}

// serveMetrics runs the observability listener (/metrics, /healthz) until the
// context is cancelled.
func (a *App) serveMetrics(ctx context.Context, m *metrics.ScanMetrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	a.logger.Info("metrics server listening", slog.Int("port", a.cfg.Server.Port))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: metrics server: %w", err)
	}
}
