package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const webhookAttempts = 3

// retryInterval is the first backoff delay; it doubles per attempt.
var retryInterval = time.Second

type requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// RegisterWebhook points Telegram at baseURL+/webhook. Rate-limit responses
// are retried with exponential backoff; any other error stops immediately.
func RegisterWebhook(ctx context.Context, api requester, baseURL string) error {
	link := strings.TrimRight(baseURL, "/") + WebhookPath
	cfg, err := tgbotapi.NewWebhook(link)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, webhookAttempts-1), ctx)

	op := func() error {
		_, err := api.Request(cfg)
		if err == nil {
			return nil
		}
		if isRateLimited(err) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		log.Printf("⚠️ Rate limited while setting webhook, retrying in %s: %v", wait, err)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return fmt.Errorf("set webhook %s: %w", link, err)
	}
	log.Printf("✅ Webhook set: %s", link)
	return nil
}

// DeleteWebhook switches the bot back to long polling.
func DeleteWebhook(api requester) error {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

func isRateLimited(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return tgErr.Code == 429
	}
	return strings.Contains(err.Error(), "429") || strings.Contains(err.Error(), "Too Many Requests")
}
