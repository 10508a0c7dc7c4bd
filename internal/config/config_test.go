package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Defaults().Validate(): %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_level = "debug"

[scanner]
interval = "45s"
fee_margin = 0.02

[kalshi]
series_ticker = "KXNFLSPREAD"

[notify]
events = ["arb_detected"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Scanner.Interval.Duration != 45*time.Second {
		t.Errorf("Interval = %v, want 45s", cfg.Scanner.Interval.Duration)
	}
	if cfg.Scanner.FeeMargin != 0.02 {
		t.Errorf("FeeMargin = %g, want 0.02", cfg.Scanner.FeeMargin)
	}
	// Untouched sections keep their defaults.
	if cfg.Polymarket.GammaHost == "" {
		t.Error("GammaHost default lost after file load")
	}
	if len(cfg.Notify.Events) != 1 || cfg.Notify.Events[0] != "arb_detected" {
		t.Errorf("Events = %v", cfg.Notify.Events)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPREADARB_SCANNER_INTERVAL", "90s")
	t.Setenv("SPREADARB_KALSHI_SERIES_TICKER", "KXNFLSPREADS25")
	t.Setenv("SPREADARB_NOTIFY_EVENTS", "arb_detected, venue_unavailable")
	t.Setenv("SPREADARB_SERVER_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scanner.Interval.Duration != 90*time.Second {
		t.Errorf("Interval = %v, want 90s", cfg.Scanner.Interval.Duration)
	}
	if cfg.Kalshi.SeriesTicker != "KXNFLSPREADS25" {
		t.Errorf("SeriesTicker = %q", cfg.Kalshi.SeriesTicker)
	}
	if len(cfg.Notify.Events) != 2 || cfg.Notify.Events[1] != "venue_unavailable" {
		t.Errorf("Events = %v", cfg.Notify.Events)
	}
	if cfg.Server.Enabled {
		t.Error("Server.Enabled = true, want false from env")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load of a missing file succeeded, want error")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "verbose"
	cfg.Scanner.FeeMargin = 1.5
	cfg.Scanner.Interval = duration{0}
	cfg.Notify.TelegramToken = "token-without-chat"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"log_level", "fee_margin", "interval", "telegram_token"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate error missing %q: %v", want, err)
		}
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d duration
	if err := d.UnmarshalText([]byte("2m30s")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if d.Duration != 2*time.Minute+30*time.Second {
		t.Errorf("Duration = %v, want 2m30s", d.Duration)
	}
	if err := d.UnmarshalText([]byte("not-a-duration")); err == nil {
		t.Error("UnmarshalText accepted garbage")
	}
}
