package config

import (
	"os"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"CONFERENCE_HTTP_ADDR",
			"CONFERENCE_SQLITE_PATH",
			"CONFERENCE_TOKEN_TTL",
			"CONFERENCE_SNAPSHOT_KEEP",
			"CONFERENCE_ORGANIZER_USERNAME",
			"CONFERENCE_ORGANIZER_PASSWORD",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		const secret = "super-secret"
		t.Setenv("CONFERENCE_TOKEN_SECRET", secret)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPAddr != ":8080" {
			t.Fatalf("expected default HTTP addr :8080, got %q", cfg.HTTPAddr)
		}
		if cfg.SQLitePath != "conference.db" {
			t.Fatalf("unexpected default path: %q", cfg.SQLitePath)
		}
		if cfg.TokenSecret != secret {
			t.Fatalf("expected token secret to be %q, got %q", secret, cfg.TokenSecret)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Fatalf("expected default token TTL 24h, got %s", cfg.TokenTTL)
		}
		if cfg.SnapshotKeep != 10 {
			t.Fatalf("expected default snapshot keep 10, got %d", cfg.SnapshotKeep)
		}
	})

	t.Run("errors when required values are missing", func(t *testing.T) {
		for _, key := range []string{
			"CONFERENCE_TOKEN_SECRET",
			"CONFERENCE_HTTP_ADDR",
			"CONFERENCE_SQLITE_PATH",
		} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
	})

	t.Run("parses duration and numeric fields", func(t *testing.T) {
		t.Setenv("CONFERENCE_TOKEN_SECRET", "secret-value")
		t.Setenv("CONFERENCE_HTTP_ADDR", ":9090")
		t.Setenv("CONFERENCE_SQLITE_PATH", "/tmp/conference.db")
		t.Setenv("CONFERENCE_TOKEN_TTL", "12h")
		t.Setenv("CONFERENCE_SNAPSHOT_KEEP", "5")
		t.Setenv("CONFERENCE_STATS_CACHE_TTL", "1m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.TokenTTL != 12*time.Hour {
			t.Fatalf("expected token TTL 12h, got %s", cfg.TokenTTL)
		}
		if cfg.SnapshotKeep != 5 {
			t.Fatalf("expected snapshot keep 5, got %d", cfg.SnapshotKeep)
		}
		if cfg.StatsCacheTTL != time.Minute {
			t.Fatalf("expected stats cache TTL 1m, got %s", cfg.StatsCacheTTL)
		}
		if cfg.HTTPAddr != ":9090" {
			t.Fatalf("expected HTTP addr :9090, got %q", cfg.HTTPAddr)
		}
		if cfg.SQLitePath != "/tmp/conference.db" {
			t.Fatalf("unexpected path: %q", cfg.SQLitePath)
		}
	})

	t.Run("rejects mismatched organizer bootstrap pair", func(t *testing.T) {
		t.Setenv("CONFERENCE_TOKEN_SECRET", "secret-value")
		t.Setenv("CONFERENCE_ORGANIZER_USERNAME", "boss")
		if err := os.Unsetenv("CONFERENCE_ORGANIZER_PASSWORD"); err != nil {
			t.Fatalf("failed to unset organizer password: %v", err)
		}

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for username without password")
		}
	})
}
