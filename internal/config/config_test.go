package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"APP_ENV", "DB_PATH", "PORT", "LOG_LEVEL", "CURRENCY_LABEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != defaultPort || cfg.DBPath != defaultDBPath || cfg.LogLevel != defaultLogLevel {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CurrencyLabel != "TL" {
		t.Fatalf("CurrencyLabel=%q, want TL", cfg.CurrencyLabel)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev environment by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PATH", "/tmp/catalog.db")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CURRENCY_LABEL", "EUR")

	cfg := Load()

	if cfg.IsDev() {
		t.Fatalf("production must not be dev")
	}
	if cfg.DBPath != "/tmp/catalog.db" || cfg.Port != "9090" || cfg.CurrencyLabel != "EUR" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel=%q, want debug", cfg.LogLevel)
	}
}
