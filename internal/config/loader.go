package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies SPREADARB_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load. An empty path skips the
// file and uses defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known SPREADARB_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Polymarket.GammaHost, "SPREADARB_POLYMARKET_GAMMA_HOST")
	setInt(&cfg.Polymarket.PageLimit, "SPREADARB_POLYMARKET_PAGE_LIMIT")
	setInt(&cfg.Polymarket.MaxPages, "SPREADARB_POLYMARKET_MAX_PAGES")
	setFloat64(&cfg.Polymarket.RateRPS, "SPREADARB_POLYMARKET_RATE_RPS")
	setDuration(&cfg.Polymarket.Timeout, "SPREADARB_POLYMARKET_TIMEOUT")

	setStr(&cfg.Kalshi.BaseURL, "SPREADARB_KALSHI_BASE_URL")
	setStr(&cfg.Kalshi.SeriesTicker, "SPREADARB_KALSHI_SERIES_TICKER")
	setInt(&cfg.Kalshi.PageLimit, "SPREADARB_KALSHI_PAGE_LIMIT")
	setInt(&cfg.Kalshi.MaxPages, "SPREADARB_KALSHI_MAX_PAGES")
	setFloat64(&cfg.Kalshi.RateRPS, "SPREADARB_KALSHI_RATE_RPS")
	setDuration(&cfg.Kalshi.Timeout, "SPREADARB_KALSHI_TIMEOUT")

	setDuration(&cfg.Scanner.Interval, "SPREADARB_SCANNER_INTERVAL")
	setFloat64(&cfg.Scanner.FeeMargin, "SPREADARB_SCANNER_FEE_MARGIN")
	setFloat64(&cfg.Scanner.SettleEpsilon, "SPREADARB_SCANNER_SETTLE_EPSILON")
	setFloat64(&cfg.Scanner.LineTolerance, "SPREADARB_SCANNER_LINE_TOLERANCE")
	setInt(&cfg.Scanner.DayTolerance, "SPREADARB_SCANNER_DAY_TOLERANCE")
	setDuration(&cfg.Scanner.AlertCooldown, "SPREADARB_SCANNER_ALERT_COOLDOWN")

	setStr(&cfg.Teams.AliasFile, "SPREADARB_TEAMS_ALIAS_FILE")

	setStr(&cfg.Redis.Addr, "SPREADARB_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "SPREADARB_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "SPREADARB_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "SPREADARB_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "SPREADARB_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "SPREADARB_REDIS_TLS_ENABLED")

	setBool(&cfg.Server.Enabled, "SPREADARB_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "SPREADARB_SERVER_PORT")

	setStr(&cfg.Notify.TelegramToken, "SPREADARB_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "SPREADARB_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "SPREADARB_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "SPREADARB_NOTIFY_EVENTS")

	setStr(&cfg.LogLevel, "SPREADARB_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
