package biz

import (
	"context"

	"github.com/kart-io/shopbot/pkg/component/ollama"
)

// ChatClient generates chat completions.
type ChatClient interface {
	Chat(ctx context.Context, messages []ollama.ChatMessage, opts ...ollama.ChatOption) (string, error)
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
}
