package config

import (
	"strconv"
	"testing"
)

// setTokenEnv sets the minimum environment for token mode.
func setTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ACADEMY_TOKEN_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setTokenEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("StoreDriver = %q, want sqlite", cfg.StoreDriver)
	}
	if !cfg.TokenAuth() {
		t.Error("expected token mode by default")
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
	if cfg.MessageRetentionDays != 90 {
		t.Errorf("MessageRetentionDays = %d, want 90", cfg.MessageRetentionDays)
	}
	if cfg.UseRedisCache() {
		t.Error("Redis must be off unless configured")
	}
}

func TestLoadOverrides(t *testing.T) {
	setTokenEnv(t)
	t.Setenv("ACADEMY_SERVER_PORT", "9000")
	t.Setenv("ACADEMY_STORE_DRIVER", "memory")
	t.Setenv("ACADEMY_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ACADEMY_TOKEN_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 9000 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
	if cfg.StoreDriver != "memory" {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.TokenTTL.Minutes() != 30 {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
}

func TestLoadRejectsBadAuthMode(t *testing.T) {
	setTokenEnv(t)
	t.Setenv("ACADEMY_AUTH_MODE", "session")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown auth mode")
	}
}

func TestLoadTokenSecretValidation(t *testing.T) {
	t.Run("missing secret in token mode", func(t *testing.T) {
		t.Setenv("ACADEMY_TOKEN_SECRET", "")
		if _, err := Load(); err == nil {
			t.Error("expected error for missing secret")
		}
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("ACADEMY_TOKEN_SECRET", strconv.Itoa(12345))
		if _, err := Load(); err == nil {
			t.Error("expected error for short secret")
		}
	})

	t.Run("known weak secret", func(t *testing.T) {
		t.Setenv("ACADEMY_TOKEN_SECRET", "change-me-to-32-byte-secret-key!")
		if _, err := Load(); err == nil {
			t.Error("expected error for known weak secret")
		}
	})

	t.Run("credentials mode needs no secret", func(t *testing.T) {
		t.Setenv("ACADEMY_AUTH_MODE", "credentials")
		t.Setenv("ACADEMY_TOKEN_SECRET", "")
		if _, err := Load(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestLoadRejectsEmptyAdminCredentials(t *testing.T) {
	setTokenEnv(t)
	t.Setenv("ACADEMY_ADMIN_USERNAME", "   ")

	if _, err := Load(); err == nil {
		t.Error("expected error for blank admin username")
	}
}
