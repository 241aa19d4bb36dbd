package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/kart-io/shopbot/internal/model"
	"github.com/kart-io/shopbot/pkg/component/milvus"
)

// MilvusStore implements FAQStore on top of Milvus.
type MilvusStore struct {
	client *milvus.Client
}

// NewMilvusStore creates a Milvus-backed FAQ store.
func NewMilvusStore(client *milvus.Client) *MilvusStore {
	return &MilvusStore{client: client}
}

// CreateCollection creates the FAQ collection.
func (s *MilvusStore) CreateCollection(ctx context.Context, config *CollectionConfig) error {
	schema := &milvus.CollectionSchema{
		Name:        config.Name,
		Description: config.Description,
		Dimension:   config.Dimension,
		MetaFields: []milvus.MetaField{
			{Name: "entry_id", DataType: entity.FieldTypeVarChar, MaxLen: 64},
			{Name: "question", DataType: entity.FieldTypeVarChar, MaxLen: 2048},
			{Name: "answer", DataType: entity.FieldTypeVarChar, MaxLen: 65535},
		},
	}
	return s.client.CreateCollection(ctx, schema)
}

// Exists reports whether an entry with the given ID is already stored.
func (s *MilvusStore) Exists(ctx context.Context, collection, entryID string) (bool, error) {
	exists, err := s.client.HasCollection(ctx, collection)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	expr := fmt.Sprintf(`entry_id == "%s"`, escapeExpr(entryID))
	return s.client.Exists(ctx, collection, expr)
}

// Insert stores FAQ entries with their question embeddings.
func (s *MilvusStore) Insert(ctx context.Context, collection string, entries []model.FAQEntry, embeddings [][]float32) error {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) != len(embeddings) {
		return fmt.Errorf("entries and embeddings length mismatch: %d != %d", len(entries), len(embeddings))
	}

	metadata := map[string][]any{
		"entry_id": make([]any, len(entries)),
		"question": make([]any, len(entries)),
		"answer":   make([]any, len(entries)),
	}
	for i, e := range entries {
		metadata["entry_id"][i] = e.ID
		metadata["question"][i] = e.Question
		metadata["answer"][i] = e.Answer
	}

	data := &milvus.InsertData{
		Embeddings: embeddings,
		Metadata:   metadata,
	}

	if _, err := s.client.Insert(ctx, collection, data); err != nil {
		return fmt.Errorf("failed to insert faq entries: %w", err)
	}
	return nil
}

// Search returns the topK entries closest to the query embedding.
func (s *MilvusStore) Search(ctx context.Context, collection string, embedding []float32, topK int) ([]FAQHit, error) {
	outputFields := []string{"entry_id", "question", "answer"}
	results, err := s.client.Search(ctx, collection, embedding, topK, outputFields)
	if err != nil {
		return nil, fmt.Errorf("failed to search faq collection: %w", err)
	}

	hits := make([]FAQHit, len(results))
	for i, r := range results {
		hits[i] = FAQHit{
			Entry: model.FAQEntry{
				ID:       asString(r.Metadata["entry_id"]),
				Question: asString(r.Metadata["question"]),
				Answer:   asString(r.Metadata["answer"]),
			},
			Score: r.Score,
		}
	}
	return hits, nil
}

// Count returns the number of stored entries.
func (s *MilvusStore) Count(ctx context.Context, collection string) (int64, error) {
	return s.client.GetCollectionStats(ctx, collection)
}

// Close closes the Milvus connection.
func (s *MilvusStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// escapeExpr escapes quotes so IDs cannot break out of the filter
// expression.
func escapeExpr(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

var _ FAQStore = (*MilvusStore)(nil)
