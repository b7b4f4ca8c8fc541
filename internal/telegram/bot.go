package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cook-companion/internal/auth"
	"cook-companion/internal/chef"
	"cook-companion/internal/recipes"
	"cook-companion/internal/session"
	"cook-companion/internal/worker"
)

// executor runs model calls off the update loop.
type executor interface {
	Submit(ctx context.Context, task worker.Task) error
}

type Bot struct {
	s        sender
	photos   photoFetcher
	store    recipes.Store
	chef     *chef.Gateway
	sessions *session.Store
	admins   *auth.Service
	exec     executor
}

// Deps are the collaborators the bot routes between.
type Deps struct {
	Store    recipes.Store
	Chef     *chef.Gateway
	Sessions *session.Store
	Admins   *auth.Service
	Pool     executor
	// SendRate caps outbound calls per second; 0 disables the limiter.
	SendRate float64
}

func New(api *tgbotapi.BotAPI, d Deps) *Bot {
	return &Bot{
		s:        newLimitedSender(botAPISender{api: api}, d.SendRate),
		photos:   apiPhotoFetcher{api: api, client: &http.Client{Timeout: 30 * time.Second}},
		store:    d.Store,
		chef:     d.Chef,
		sessions: d.Sessions,
		admins:   d.Admins,
		exec:     d.Pool,
	}
}

// Run handles updates one at a time until ctx is done or updates is closed.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, u)
		}
	}
}

// HandleUpdate routes a single update. Panics are logged, not propagated.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("🔥 panic while handling update %d: %v\n%s", u.UpdateID, r, debug.Stack())
		}
	}()
	switch {
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.From != nil:
		msg := u.Message
		switch {
		case msg.IsCommand():
			b.handleCommand(msg)
		case len(msg.Photo) > 0:
			b.handlePhoto(ctx, msg)
		case msg.Text != "":
			b.handleText(ctx, msg)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.admins != nil && b.admins.IsAdmin(userID)
}

// Notify sends a plain message to every admin. Used for scheduled reports.
func (b *Bot) Notify(text string) {
	if b.admins == nil {
		return
	}
	for _, id := range b.admins.IDs() {
		for _, part := range paginate(text, maxMessageRunes) {
			b.deliver(tgbotapi.NewMessage(id, part))
		}
	}
}

func (b *Bot) sendMessage(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	b.deliver(msg)
}

func (b *Bot) sendMarkdown(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = markup
	b.deliver(msg)
}

// sendLong sends Markdown text split into Telegram-sized messages.
func (b *Bot) sendLong(chatID int64, text string) {
	for _, part := range paginate(text, maxMessageRunes) {
		b.sendMarkdown(chatID, part, nil)
	}
}

// deliver sends msg, retrying once without formatting if Telegram rejects
// the Markdown.
func (b *Bot) deliver(msg tgbotapi.MessageConfig) {
	if msg.Text == "" {
		return
	}
	_, err := b.s.Send(msg)
	if err != nil && msg.ParseMode != "" && isParseError(err) {
		log.Printf("⚠️ Markdown rejected for chat %d, resending as plain text: %v", msg.ChatID, err)
		msg.ParseMode = ""
		_, err = b.s.Send(msg)
	}
	if err != nil {
		log.Printf("❌ failed to send message to %d: %v", msg.ChatID, err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := b.s.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("⚠️ failed to answer callback %s: %v", cb.ID, err)
	}
}

// displayName is the name stored with a comment.
func displayName(u *tgbotapi.User, fallbackID int64) string {
	if u != nil {
		if u.UserName != "" {
			return u.UserName
		}
		if u.FirstName != "" {
			if u.LastName != "" {
				return u.FirstName + " " + u.LastName
			}
			return u.FirstName
		}
	}
	return fmt.Sprintf("User %d", fallbackID)
}
