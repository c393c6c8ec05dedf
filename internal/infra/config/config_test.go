package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_MODE", "memory")
	t.Setenv("SESSION_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.Currency != "PEN" {
		t.Errorf("Currency = %q, want PEN", cfg.Currency)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}
	if cfg.OutboxPollInterval != 500*time.Millisecond {
		t.Errorf("OutboxPollInterval = %v, want 500ms", cfg.OutboxPollInterval)
	}
	want := []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}
	if len(cfg.RetryBackoff) != len(want) {
		t.Fatalf("RetryBackoff = %v, want %v", cfg.RetryBackoff, want)
	}
	for i, d := range want {
		if cfg.RetryBackoff[i] != d {
			t.Errorf("RetryBackoff[%d] = %v, want %v", i, cfg.RetryBackoff[i], d)
		}
	}
}

func TestLoadMongoRequiresURI(t *testing.T) {
	t.Setenv("STORAGE_MODE", "mongo")
	t.Setenv("MONGO_URI", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing MONGO_URI")
	}
}

func TestLoadRejectsUnknownModes(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"storage", "STORAGE_MODE", "postgres"},
		{"sessions", "SESSION_STORE", "cookie"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("STORAGE_MODE", "memory")
			t.Setenv("SESSION_STORE", "memory")
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoadParsesBrokersAndBackoff(t *testing.T) {
	t.Setenv("STORAGE_MODE", "memory")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("RETRY_BACKOFF", "2s, 10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if len(cfg.RetryBackoff) != 2 || cfg.RetryBackoff[1] != 10*time.Second {
		t.Errorf("RetryBackoff = %v", cfg.RetryBackoff)
	}
}
