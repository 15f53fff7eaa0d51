package cli

import (
	"os"
	"path/filepath"
	"testing"

	"expensetracker/internal/config"
)

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CURRENCY_SYMBOL=£\nSESSION_COOKIE=from_file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SESSION_COOKIE", "from_env")
	t.Setenv("CURRENCY_SYMBOL", "")
	os.Unsetenv("CURRENCY_SYMBOL")

	LoadEnvFile(path)
	t.Cleanup(func() { os.Unsetenv("CURRENCY_SYMBOL") })

	cfg := config.Load()
	if cfg.CurrencySymbol != "£" {
		t.Errorf("CurrencySymbol = %q, want value from .env", cfg.CurrencySymbol)
	}
	if cfg.SessionCookie != "from_env" {
		t.Errorf("SessionCookie = %q, process env must win", cfg.SessionCookie)
	}
}

func TestLoadEnvFileMissingIsIgnored(t *testing.T) {
	LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
}

func TestSetupLoggerInstallsComponent(t *testing.T) {
	cfg := config.Load()
	cfg.LogFormat = "json"
	logger := SetupLogger(cfg)
	if logger.Component() != "app" {
		t.Fatalf("Component = %q", logger.Component())
	}
}
