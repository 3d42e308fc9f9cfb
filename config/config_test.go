// config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL_HOURS", "8")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.UploadsDir != "uploads" {
		t.Errorf("expected default uploads dir, got %q", cfg.UploadsDir)
	}
	if cfg.TokenTTL != 8*time.Hour {
		t.Errorf("expected 8h TTL, got %v", cfg.TokenTTL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:env.db")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:cli.db", "-jwt-secret", "cli-secret"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:cli.db" {
		t.Errorf("CLI should override env: got %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "cli-secret" {
		t.Errorf("CLI should override env: got %q", cfg.JWTSecret)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL_HOURS", "")

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-jwt-secret", "s"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default 24h TTL, got %v", cfg.TokenTTL)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for missing database URL")
	}

	if _, err := ParseFlags([]string{"-d", "file:test.db"}); err == nil {
		t.Error("expected error for missing JWT secret")
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	if _, err := ParseFlags([]string{"-d", "x", "-t", "mysql", "-jwt-secret", "s"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
