package biz

import (
	"context"
	"fmt"

	"github.com/kart-io/shopbot/internal/bot/store"
	"github.com/kart-io/shopbot/internal/model"
	"github.com/kart-io/shopbot/pkg/component/ollama"
)

// mockChat scripts chat completions and records what it was asked.
type mockChat struct {
	response  string
	responses []string // consumed in order when set
	err       error

	calls    int
	messages [][]ollama.ChatMessage
}

func (m *mockChat) Chat(ctx context.Context, messages []ollama.ChatMessage, opts ...ollama.ChatOption) (string, error) {
	m.calls++
	m.messages = append(m.messages, messages)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) > 0 {
		resp := m.responses[0]
		m.responses = m.responses[1:]
		return resp, nil
	}
	return m.response, nil
}

// lastUserContent returns the user message of the most recent call.
func (m *mockChat) lastUserContent() string {
	if len(m.messages) == 0 {
		return ""
	}
	msgs := m.messages[len(m.messages)-1]
	for _, msg := range msgs {
		if msg.Role == "user" {
			return msg.Content
		}
	}
	return ""
}

// lastSystemContent returns the system message of the most recent call.
func (m *mockChat) lastSystemContent() string {
	if len(m.messages) == 0 {
		return ""
	}
	msgs := m.messages[len(m.messages)-1]
	for _, msg := range msgs {
		if msg.Role == "system" {
			return msg.Content
		}
	}
	return ""
}

// mockEmbedder maps known texts to fixed vectors.
type mockEmbedder struct {
	vectors map[string][]float32
	err     error

	embedCalls int
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.embedCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, ok := m.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", t)
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// mockFAQStore is an in-memory FAQStore.
type mockFAQStore struct {
	entries   map[string]model.FAQEntry
	hits      []store.FAQHit
	searchErr error
	insertErr error

	searchTopK int
}

func newMockFAQStore() *mockFAQStore {
	return &mockFAQStore{entries: make(map[string]model.FAQEntry)}
}

func (m *mockFAQStore) CreateCollection(ctx context.Context, config *store.CollectionConfig) error {
	return nil
}

func (m *mockFAQStore) Exists(ctx context.Context, collection, entryID string) (bool, error) {
	_, ok := m.entries[entryID]
	return ok, nil
}

func (m *mockFAQStore) Insert(ctx context.Context, collection string, entries []model.FAQEntry, embeddings [][]float32) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return nil
}

func (m *mockFAQStore) Search(ctx context.Context, collection string, embedding []float32, topK int) ([]store.FAQHit, error) {
	m.searchTopK = topK
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.hits, nil
}

func (m *mockFAQStore) Count(ctx context.Context, collection string) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *mockFAQStore) Close(ctx context.Context) error {
	return nil
}

// mockProductStore scripts catalog query results.
type mockProductStore struct {
	rows []model.Row
	err  error

	queries []string
}

func (m *mockProductStore) Query(ctx context.Context, query string) ([]model.Row, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}
