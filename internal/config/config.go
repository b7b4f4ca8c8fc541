package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	BotToken string `env:"BOT_TOKEN,required"`

	// Admin allow-list: ADMIN_ID wins over ADMIN_IDS when both are set
	AdminID        int64  `env:"ADMIN_ID"`
	AdminIDsRaw    string `env:"ADMIN_IDS"`
	AdminsFilePath string `env:"ADMINS_FILE_PATH"`
	AdminIDs       []int64

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Transport
	WebhookURL string `env:"WEBHOOK_URL"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Storage
	DataDir         string `env:"DATA_DIR" envDefault:"./data"`
	JournalFilePath string `env:"JOURNAL_FILE_PATH" envDefault:"logs/ai.jsonl"`

	// Runtime
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	AIWorkers          int           `env:"AI_WORKERS" envDefault:"4"`
	SendRatePerSec     int           `env:"SEND_RATE_PER_SEC" envDefault:"25"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, fmt.Errorf("BOT_TOKEN is empty")
	}
	ids, err := parseIDList(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}
	cfg.AdminIDs = ids
	if cfg.AIWorkers <= 0 {
		cfg.AIWorkers = 1
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Admins returns the effective allow-list.
func (c *Config) Admins() []int64 {
	if c.AdminID != 0 {
		return []int64{c.AdminID}
	}
	out := make([]int64, 0, len(c.AdminIDs))
	for _, id := range c.AdminIDs {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// WebhookMode reports whether updates arrive through the webhook endpoint.
func (c *Config) WebhookMode() bool { return c.WebhookURL != "" }

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
