package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/shopbot/internal/bot/store"
	"github.com/kart-io/shopbot/internal/model"
)

func faqTestConfig() *FAQPipelineConfig {
	return &FAQPipelineConfig{
		Collection: "faqs",
		Dimension:  3,
		TopK:       2,
	}
}

func TestFAQIngest(t *testing.T) {
	faqStore := newMockFAQStore()
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"What is the refund policy?": {1, 0, 0},
		"Do you accept cash?":        {0, 1, 0},
	}}
	p := NewFAQPipeline(faqStore, embedder, &mockChat{}, faqTestConfig())

	entries := []model.FAQEntry{
		{ID: "id_0", Question: "What is the refund policy?", Answer: "30 days."},
		{ID: "id_1", Question: "Do you accept cash?", Answer: "Yes."},
	}
	require.NoError(t, p.Ingest(context.Background(), entries))
	assert.Len(t, faqStore.entries, 2)
}

func TestFAQIngest_Idempotent(t *testing.T) {
	faqStore := newMockFAQStore()
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"What is the refund policy?": {1, 0, 0},
		"Do you accept cash?":        {0, 1, 0},
	}}
	p := NewFAQPipeline(faqStore, embedder, &mockChat{}, faqTestConfig())

	entries := []model.FAQEntry{
		{ID: "id_0", Question: "What is the refund policy?", Answer: "30 days."},
		{ID: "id_1", Question: "Do you accept cash?", Answer: "Yes."},
	}
	require.NoError(t, p.Ingest(context.Background(), entries))
	firstEmbeds := embedder.embedCalls

	// Second startup with the same data embeds nothing new.
	require.NoError(t, p.Ingest(context.Background(), entries))
	assert.Len(t, faqStore.entries, 2)
	assert.Equal(t, firstEmbeds, embedder.embedCalls)
}

func TestFAQIngest_EmbedError(t *testing.T) {
	p := NewFAQPipeline(newMockFAQStore(), &mockEmbedder{err: assert.AnError}, &mockChat{}, faqTestConfig())

	err := p.Ingest(context.Background(), []model.FAQEntry{{ID: "id_0", Question: "q", Answer: "a"}})
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestFAQAnswer(t *testing.T) {
	faqStore := newMockFAQStore()
	faqStore.hits = []store.FAQHit{
		{Entry: model.FAQEntry{ID: "id_0", Question: "What is the refund policy?", Answer: "Refunds take 5-7 days."}, Score: 0.1},
		{Entry: model.FAQEntry{ID: "id_1", Question: "How do I request a refund?", Answer: "Use the orders page."}, Score: 0.3},
	}
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"How long do refunds take?": {1, 0, 0},
	}}
	chat := &mockChat{response: "Refunds take 5-7 days."}
	p := NewFAQPipeline(faqStore, embedder, chat, faqTestConfig())

	answer, err := p.Answer(context.Background(), "How long do refunds take?")
	require.NoError(t, err)
	assert.Equal(t, "Refunds take 5-7 days.", answer)
	assert.Equal(t, 2, faqStore.searchTopK)

	prompt := chat.lastUserContent()
	assert.Contains(t, prompt, "QUESTION: How long do refunds take?")
	// Retrieved answers are concatenated in retrieval order.
	assert.Contains(t, prompt, "CONTEXT: Refunds take 5-7 days.Use the orders page.")
	assert.Contains(t, prompt, `say "I don't know"`)
}

func TestFAQAnswer_EmbedError(t *testing.T) {
	p := NewFAQPipeline(newMockFAQStore(), &mockEmbedder{err: assert.AnError}, &mockChat{}, faqTestConfig())

	_, err := p.Answer(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestFAQAnswer_SearchError(t *testing.T) {
	faqStore := newMockFAQStore()
	faqStore.searchErr = assert.AnError
	embedder := &mockEmbedder{vectors: map[string][]float32{"q": {1}}}
	p := NewFAQPipeline(faqStore, embedder, &mockChat{}, faqTestConfig())

	_, err := p.Answer(context.Background(), "q")
	assert.ErrorIs(t, err, assert.AnError)
}
