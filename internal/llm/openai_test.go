package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"cook-companion/internal/config"
)

func TestToOpenAIMessage_TextOnly(t *testing.T) {
	m := toOpenAIMessage(Message{Role: RoleUser, Content: "hello"})
	if m.Content != "hello" || len(m.MultiContent) != 0 {
		t.Fatalf("unexpected message: %+v", m)
	}
}

func TestToOpenAIMessage_WithImage(t *testing.T) {
	m := toOpenAIMessage(Message{Role: RoleUser, Content: "what is this?", Images: []Image{{Data: []byte{0xff, 0xd8}}}})
	if m.Content != "" {
		t.Fatalf("Content must be empty when MultiContent is used: %q", m.Content)
	}
	if len(m.MultiContent) != 2 {
		t.Fatalf("want 2 parts, got %d", len(m.MultiContent))
	}
	if m.MultiContent[0].Type != openai.ChatMessagePartTypeText || m.MultiContent[0].Text != "what is this?" {
		t.Fatalf("unexpected text part: %+v", m.MultiContent[0])
	}
	img := m.MultiContent[1]
	if img.Type != openai.ChatMessagePartTypeImageURL || img.ImageURL == nil {
		t.Fatalf("unexpected image part: %+v", img)
	}
	if img.ImageURL.URL != "data:image/jpeg;base64,/9g=" {
		t.Fatalf("unexpected data url: %q", img.ImageURL.URL)
	}
}

func TestDataURL_KeepsMime(t *testing.T) {
	u := DataURL(Image{MIME: "image/png", Data: []byte("x")})
	if !strings.HasPrefix(u, "data:image/png;base64,") {
		t.Fatalf("unexpected url: %q", u)
	}
}

func TestNewFromConfig(t *testing.T) {
	c, err := NewFromConfig(&config.Config{LLMProvider: config.ProviderOpenAI})
	if err != nil || c != nil {
		t.Fatalf("no key should yield nil client, got %v, %v", c, err)
	}
	c, err = NewFromConfig(&config.Config{LLMProvider: config.ProviderOpenAI, OpenAIAPIKey: "sk", OpenAIModel: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*OpenAIClient); !ok {
		t.Fatalf("want *OpenAIClient, got %T", c)
	}
	c, err = NewFromConfig(&config.Config{LLMProvider: config.ProviderYandex})
	if err != nil || c != nil {
		t.Fatalf("yandex without credentials should yield nil client, got %v, %v", c, err)
	}
	if _, err := NewFromConfig(&config.Config{LLMProvider: "nope"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestOpenAIClient_Generate(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"  Omelette  "},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":3,"completion_tokens":4,"total_tokens":7}}`)
	}))
	defer srv.Close()

	c := NewOpenAI("sk-test", srv.URL+"/v1", "gpt-4o-mini")
	resp, err := c.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "eggs"}},
		MaxTokens: 500,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Content != "Omelette" || resp.TotalTokens != 7 || resp.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(gotBody, `"max_tokens":500`) {
		t.Fatalf("max_tokens not forwarded: %s", gotBody)
	}
}

func TestOpenAIClient_GenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"slow down","type":"rate_limit"}}`)
	}))
	defer srv.Close()

	c := NewOpenAI("sk-test", srv.URL+"/v1", "gpt-4o-mini")
	if _, err := c.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}}); err == nil {
		t.Fatalf("expected error on 429")
	}
}
