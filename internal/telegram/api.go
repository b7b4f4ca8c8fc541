package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// photoFetcher downloads the bytes behind a Telegram file id.
type photoFetcher interface {
	FetchPhoto(ctx context.Context, fileID string) ([]byte, error)
}

type botAPISender struct{ api *tgbotapi.BotAPI }

func (s botAPISender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.api.Send(c)
}

func (s botAPISender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return s.api.Request(c)
}

// limitedSender keeps outbound calls under Telegram's global rate limit.
type limitedSender struct {
	next    sender
	limiter *rate.Limiter
}

func newLimitedSender(next sender, perSecond float64) sender {
	if perSecond <= 0 {
		return next
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &limitedSender{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *limitedSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := l.limiter.Wait(context.Background()); err != nil {
		return tgbotapi.Message{}, err
	}
	return l.next.Send(c)
}

func (l *limitedSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := l.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}
	return l.next.Request(c)
}

type apiPhotoFetcher struct {
	api    *tgbotapi.BotAPI
	client *http.Client
}

func (f apiPhotoFetcher) FetchPhoto(ctx context.Context, fileID string) ([]byte, error) {
	url, err := f.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// isParseError reports whether Telegram rejected a message's Markdown.
func isParseError(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return strings.Contains(tgErr.Message, "can't parse entities")
	}
	return strings.Contains(err.Error(), "can't parse entities")
}
