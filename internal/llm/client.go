package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrImagesUnsupported is returned by text-only providers given an image.
var ErrImagesUnsupported = errors.New("llm: provider does not accept images")

// Image is an inline picture attached to a user message.
type Image struct {
	MIME string
	Data []byte
}

type Message struct {
	Role    string
	Content string
	Images  []Image
}

type Request struct {
	Messages []Message
	// MaxTokens caps the completion; 0 leaves it to the provider.
	MaxTokens int
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
