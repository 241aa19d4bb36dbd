package biz

import (
	"context"
	"time"

	"github.com/kart-io/shopbot/internal/bot/metrics"
	"github.com/kart-io/shopbot/pkg/component/ollama"
)

// smallTalkPersona keeps casual conversation friendly and honest.
const smallTalkPersona = "You are a friendly and conversational assistant designed for small talk. " +
	"You can answer questions about the weather, your name, your purpose, and more. " +
	"If you don't know something, just say 'I don't know' instead of making it up."

// SmallTalk handles casual conversation queries.
type SmallTalk struct {
	chat    ChatClient
	metrics *metrics.BotMetrics
}

// NewSmallTalk creates a small talk pipeline.
func NewSmallTalk(chat ChatClient) *SmallTalk {
	return &SmallTalk{chat: chat, metrics: metrics.GetBotMetrics()}
}

// Talk replies to a casual query in the assistant persona.
func (t *SmallTalk) Talk(ctx context.Context, query string) (string, error) {
	start := time.Now()
	answer, err := t.chat.Chat(ctx, []ollama.ChatMessage{
		ollama.System(smallTalkPersona),
		ollama.User(query),
	})
	t.metrics.RecordLLMCall(time.Since(start), err)
	return answer, err
}
