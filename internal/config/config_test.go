package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("unexpected data dir: %q", cfg.DataDir)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", cfg.OpenAIModel)
	}
	if cfg.LLMProvider != ProviderOpenAI {
		t.Fatalf("unexpected provider: %q", cfg.LLMProvider)
	}
	if cfg.SessionIdleTimeout != 2*time.Hour {
		t.Fatalf("unexpected idle timeout: %v", cfg.SessionIdleTimeout)
	}
	if cfg.WebhookMode() {
		t.Fatalf("webhook mode without WEBHOOK_URL")
	}
	if len(cfg.Admins()) != 0 {
		t.Fatalf("expected no admins, got %v", cfg.Admins())
	}
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing BOT_TOKEN")
	}
}

func TestAdmins_ListAndSinglePrecedence(t *testing.T) {
	t.Setenv("BOT_TOKEN", "t")
	t.Setenv("ADMIN_IDS", "10, 20,,30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]int64{10, 20, 30}, cfg.Admins()); diff != "" {
		t.Fatalf("admins mismatch (-want +got):\n%s", diff)
	}

	t.Setenv("ADMIN_ID", "7")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]int64{7}, cfg.Admins()); diff != "" {
		t.Fatalf("ADMIN_ID should win (-want +got):\n%s", diff)
	}
}

func TestAdmins_InvalidEntryFails(t *testing.T) {
	t.Setenv("BOT_TOKEN", "t")
	t.Setenv("ADMIN_IDS", "10,abc")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid admin id")
	}
}
