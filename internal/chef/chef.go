// Package chef is the boundary to the language/vision model. Every
// operation returns text for the user and never an error: failures are
// logged and turned into an apology.
package chef

import (
	"context"
	"fmt"
	"log"
	"time"

	"cook-companion/internal/journal"
	"cook-companion/internal/llm"
)

const (
	generationMaxTokens = 1000
	followupMaxTokens   = 500
)

// User-facing fallbacks.
const (
	UnavailableMessage          = "I can't access the recipe generator right now. Please try again later."
	AssistantUnavailableMessage = "I can't access the AI assistant right now."
	GenerationFailedMessage     = "Sorry, I'm having trouble generating recipes right now. Please try again."
	FollowupFailedMessage       = "Sorry, I'm having trouble responding right now. Please try again."
)

type Gateway struct {
	client   llm.Client
	recorder journal.Recorder
	now      func() time.Time
}

// New builds a gateway. A nil client puts it in fallback mode; a nil
// recorder disables the journal.
func New(client llm.Client, recorder journal.Recorder) *Gateway {
	return &Gateway{client: client, recorder: recorder, now: time.Now}
}

// Available reports whether a model client is configured.
func (g *Gateway) Available() bool { return g != nil && g.client != nil }

// SuggestFromImage proposes recipes for the ingredients in a photo.
func (g *Gateway) SuggestFromImage(ctx context.Context, userID int64, image []byte) string {
	if !g.Available() {
		return UnavailableMessage
	}
	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: imageInstruction},
			{Role: llm.RoleUser, Content: imageUserText, Images: []llm.Image{{MIME: "image/jpeg", Data: image}}},
		},
		MaxTokens: generationMaxTokens,
	}
	return g.complete(ctx, userID, journal.KindImage, fmt.Sprintf("[photo %d bytes]", len(image)), req, GenerationFailedMessage)
}

// SuggestFromText proposes recipes for a typed ingredient list.
func (g *Gateway) SuggestFromText(ctx context.Context, userID int64, ingredients string) string {
	if !g.Available() {
		return UnavailableMessage
	}
	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: textInstruction},
			{Role: llm.RoleUser, Content: fmt.Sprintf(textUserTemplate, ingredients)},
		},
		MaxTokens: generationMaxTokens,
	}
	return g.complete(ctx, userID, journal.KindText, ingredients, req, GenerationFailedMessage)
}

// AnswerFollowup answers a cooking question about previously suggested recipes.
func (g *Gateway) AnswerFollowup(ctx context.Context, userID int64, question, recipeContext string) string {
	if !g.Available() {
		return AssistantUnavailableMessage
	}
	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: followupInstruction},
			{Role: llm.RoleUser, Content: fmt.Sprintf(followupUserTemplate, recipeContext, question)},
		},
		MaxTokens: followupMaxTokens,
	}
	return g.complete(ctx, userID, journal.KindFollowup, question, req, FollowupFailedMessage)
}

func (g *Gateway) complete(ctx context.Context, userID int64, kind journal.Kind, prompt string, req llm.Request, apology string) string {
	started := g.now()
	resp, err := g.client.Generate(ctx, req)
	ev := journal.Event{Timestamp: started.UTC(), UserID: userID, Kind: kind, Prompt: prompt}
	if err == nil && resp.Content == "" {
		err = fmt.Errorf("empty completion")
	}
	if err != nil {
		log.Printf("❌ %s request for user %d failed: %v", kind, userID, err)
		ev.Failed = true
		g.record(ev)
		return apology
	}
	log.Printf("🤖 %s reply for user %d [model=%s, tokens: prompt=%d, completion=%d, total=%d, took=%s]",
		kind, userID, resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens, g.now().Sub(started).Round(time.Millisecond))
	ev.Model = resp.Model
	ev.Response = resp.Content
	g.record(ev)
	return resp.Content
}

func (g *Gateway) record(ev journal.Event) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.Append(ev); err != nil {
		log.Printf("⚠️ failed to journal %s event: %v", ev.Kind, err)
	}
}
