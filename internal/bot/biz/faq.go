package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/shopbot/internal/bot/metrics"
	"github.com/kart-io/shopbot/internal/bot/store"
	"github.com/kart-io/shopbot/internal/model"
	"github.com/kart-io/shopbot/pkg/component/ollama"
)

// faqPromptFormat grounds the answer in the retrieved context and
// forbids making things up.
const faqPromptFormat = `Given the question and context below, generate the answer based on the context only.
If you don't find the answer inside the context then say "I don't know".
Do not make things up.

QUESTION: %s

CONTEXT: %s`

// FAQPipelineConfig configures the FAQ retrieval pipeline.
type FAQPipelineConfig struct {
	// Collection is the knowledge base collection name.
	Collection string
	// Dimension is the embedding dimension.
	Dimension int
	// TopK is how many entries to retrieve per query.
	TopK int
}

// FAQPipeline answers policy questions from the FAQ knowledge base.
type FAQPipeline struct {
	store    store.FAQStore
	embedder Embedder
	chat     ChatClient
	config   *FAQPipelineConfig
	metrics  *metrics.BotMetrics
}

// NewFAQPipeline creates a FAQ pipeline.
func NewFAQPipeline(faqStore store.FAQStore, embedder Embedder, chat ChatClient, config *FAQPipelineConfig) *FAQPipeline {
	return &FAQPipeline{
		store:    faqStore,
		embedder: embedder,
		chat:     chat,
		config:   config,
		metrics:  metrics.GetBotMetrics(),
	}
}

// Ingest loads FAQ entries into the knowledge base. Entries already
// present are skipped, so repeated startups do not duplicate data.
func (p *FAQPipeline) Ingest(ctx context.Context, entries []model.FAQEntry) error {
	if err := p.store.CreateCollection(ctx, &store.CollectionConfig{
		Name:        p.config.Collection,
		Description: "FAQ knowledge base",
		Dimension:   p.config.Dimension,
	}); err != nil {
		return fmt.Errorf("failed to create faq collection: %w", err)
	}

	var missing []model.FAQEntry
	for _, e := range entries {
		exists, err := p.store.Exists(ctx, p.config.Collection, e.ID)
		if err != nil {
			return fmt.Errorf("failed to check faq entry %s: %w", e.ID, err)
		}
		if !exists {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		logger.Infow("faq knowledge base already ingested", "collection", p.config.Collection)
		return nil
	}

	questions := make([]string, len(missing))
	for i, e := range missing {
		questions[i] = e.Question
	}
	embeddings, err := p.embedder.Embed(ctx, questions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	if err := p.store.Insert(ctx, p.config.Collection, missing, embeddings); err != nil {
		return err
	}

	logger.Infow("faq entries ingested",
		"collection", p.config.Collection,
		"count", len(missing),
	)
	return nil
}

// Answer retrieves the closest FAQ entries and generates a grounded
// reply. The retrieved answers are concatenated in retrieval order and
// handed to the model as the only permitted context.
func (p *FAQPipeline) Answer(ctx context.Context, query string) (string, error) {
	vec, err := p.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	hits, err := p.store.Search(ctx, p.config.Collection, vec, p.config.TopK)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve faq entries: %w", err)
	}

	var sb strings.Builder
	for _, hit := range hits {
		sb.WriteString(hit.Entry.Answer)
	}

	prompt := fmt.Sprintf(faqPromptFormat, query, sb.String())
	start := time.Now()
	answer, err := p.chat.Chat(ctx, []ollama.ChatMessage{ollama.User(prompt)})
	p.metrics.RecordLLMCall(time.Since(start), err)
	return answer, err
}
