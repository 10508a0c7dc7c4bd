// Package config defines the top-level configuration for the spread arbitrage
// scanner and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by SPREADARB_* environment variables.
type Config struct {
	Polymarket PolymarketConfig `toml:"polymarket"`
	Kalshi     KalshiConfig     `toml:"kalshi"`
	Scanner    ScannerConfig    `toml:"scanner"`
	Teams      TeamsConfig      `toml:"teams"`
	Redis      RedisConfig      `toml:"redis"`
	Server     ServerConfig     `toml:"server"`
	Notify     NotifyConfig     `toml:"notify"`
	LogLevel   string           `toml:"log_level"`
}

// PolymarketConfig holds Polymarket Gamma API parameters.
type PolymarketConfig struct {
	GammaHost string   `toml:"gamma_host"`
	PageLimit int      `toml:"page_limit"`
	MaxPages  int      `toml:"max_pages"`
	RateRPS   float64  `toml:"rate_rps"`
	Timeout   duration `toml:"timeout"`
}

// KalshiConfig holds Kalshi exchange API parameters. The market listing is a
// public endpoint; no credentials are required.
type KalshiConfig struct {
	BaseURL      string   `toml:"base_url"`
	SeriesTicker string   `toml:"series_ticker"`
	PageLimit    int      `toml:"page_limit"`
	MaxPages     int      `toml:"max_pages"`
	RateRPS      float64  `toml:"rate_rps"`
	Timeout      duration `toml:"timeout"`
}

// ScannerConfig holds matching-cycle parameters.
type ScannerConfig struct {
	Interval duration `toml:"interval"`
	// FeeMargin is the round-trip trading cost per unit stake subtracted
	// from the raw price gap before an opportunity is reported.
	FeeMargin float64 `toml:"fee_margin"`
	// SettleEpsilon: a contract with either outcome price within this
	// distance of 0 or 1 is considered settled and dropped.
	SettleEpsilon float64 `toml:"settle_epsilon"`
	// LineTolerance widens line matching beyond exact equality. Spread
	// arbitrage requires identical lines; leave at 0 unless you know better.
	LineTolerance float64 `toml:"line_tolerance"`
	// DayTolerance widens game-date matching by whole calendar days. 1
	// absorbs venues dating a late kickoff on different sides of UTC
	// midnight; wider risks merging doubleheaders.
	DayTolerance int `toml:"day_tolerance"`
	// AlertCooldown suppresses repeat alerts for an unchanged opportunity.
	AlertCooldown duration `toml:"alert_cooldown"`
}

// TeamsConfig holds team alias table parameters.
type TeamsConfig struct {
	// AliasFile optionally points at a TOML file whose teams extend or
	// override the built-in alias table.
	AliasFile string `toml:"alias_file"`
}

// RedisConfig holds Redis connection parameters. An empty addr disables
// Redis; the alert cooldown then falls back to process-local memory.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// ServerConfig holds the observability HTTP listener parameters (/metrics and
// /healthz).
type ServerConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "30s", "5m").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Polymarket: PolymarketConfig{
			GammaHost: "https://gamma-api.polymarket.com",
			PageLimit: 100,
			MaxPages:  20,
			RateRPS:   5,
			Timeout:   duration{30 * time.Second},
		},
		Kalshi: KalshiConfig{
			BaseURL:      "https://api.elections.kalshi.com/trade-api/v2",
			SeriesTicker: "KXNFLSPREAD",
			PageLimit:    200,
			MaxPages:     20,
			RateRPS:      5,
			Timeout:      duration{30 * time.Second},
		},
		Scanner: ScannerConfig{
			Interval:      duration{30 * time.Second},
			FeeMargin:     0.0,
			SettleEpsilon: 1e-6,
			LineTolerance: 0.0,
			DayTolerance:  0,
			AlertCooldown: duration{10 * time.Minute},
		},
		Redis: RedisConfig{
			Addr:       "",
			DB:         0,
			PoolSize:   10,
			MaxRetries: 3,
		},
		Server: ServerConfig{
			Enabled: true,
			Port:    9090,
		},
		Notify: NotifyConfig{
			Events: []string{"arb_detected", "venue_unavailable"},
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Polymarket.GammaHost == "" {
		errs = append(errs, "polymarket: gamma_host must not be empty")
	}
	if c.Polymarket.PageLimit < 1 {
		errs = append(errs, "polymarket: page_limit must be >= 1")
	}
	if c.Polymarket.RateRPS <= 0 {
		errs = append(errs, "polymarket: rate_rps must be > 0")
	}

	if c.Kalshi.BaseURL == "" {
		errs = append(errs, "kalshi: base_url must not be empty")
	}
	if c.Kalshi.SeriesTicker == "" {
		errs = append(errs, "kalshi: series_ticker must not be empty")
	}
	if c.Kalshi.PageLimit < 1 {
		errs = append(errs, "kalshi: page_limit must be >= 1")
	}
	if c.Kalshi.RateRPS <= 0 {
		errs = append(errs, "kalshi: rate_rps must be > 0")
	}

	if c.Scanner.Interval.Duration <= 0 {
		errs = append(errs, "scanner: interval must be > 0")
	}
	if c.Scanner.FeeMargin < 0 || c.Scanner.FeeMargin >= 1 {
		errs = append(errs, fmt.Sprintf("scanner: fee_margin must be in [0,1), got %g", c.Scanner.FeeMargin))
	}
	if c.Scanner.SettleEpsilon <= 0 || c.Scanner.SettleEpsilon >= 0.5 {
		errs = append(errs, fmt.Sprintf("scanner: settle_epsilon must be in (0,0.5), got %g", c.Scanner.SettleEpsilon))
	}
	if c.Scanner.LineTolerance < 0 {
		errs = append(errs, "scanner: line_tolerance must be >= 0")
	}
	if c.Scanner.DayTolerance < 0 {
		errs = append(errs, "scanner: day_tolerance must be >= 0")
	}

	if c.Redis.Addr != "" && c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	// Telegram credentials must be set together, or not at all.
	tt := c.Notify.TelegramToken != ""
	tc := c.Notify.TelegramChatID != ""
	if tt != tc {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
