package llm

import (
	"fmt"
	"strings"

	"cook-companion/internal/config"
)

// NewFromConfig builds the configured provider. A nil client with a nil
// error means no credential is set and AI features run in fallback mode.
func NewFromConfig(cfg *config.Config) (Client, error) {
	switch strings.ToLower(string(cfg.LLMProvider)) {
	case string(config.ProviderOpenAI), "":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, nil
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case string(config.ProviderYandex):
		if strings.TrimSpace(cfg.YandexOAuthToken) == "" || strings.TrimSpace(cfg.YandexFolderID) == "" {
			return nil, nil
		}
		c, err := NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
