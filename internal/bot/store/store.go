package store

import (
	"context"

	"github.com/kart-io/shopbot/internal/model"
)

// FAQHit is a retrieved FAQ entry with its similarity score.
type FAQHit struct {
	Entry model.FAQEntry
	Score float32
}

// CollectionConfig configures the FAQ collection.
type CollectionConfig struct {
	// Name is the collection name.
	Name string
	// Description describes the collection.
	Description string
	// Dimension is the embedding dimension.
	Dimension int
}

// FAQStore defines the FAQ knowledge base interface.
type FAQStore interface {
	// CreateCollection creates the collection if it does not exist.
	CreateCollection(ctx context.Context, config *CollectionConfig) error

	// Exists reports whether an entry with the given ID is already stored.
	Exists(ctx context.Context, collection, entryID string) (bool, error)

	// Insert stores FAQ entries with their question embeddings.
	Insert(ctx context.Context, collection string, entries []model.FAQEntry, embeddings [][]float32) error

	// Search returns the topK entries closest to the query embedding.
	Search(ctx context.Context, collection string, embedding []float32, topK int) ([]FAQHit, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context, collection string) (int64, error)

	// Close closes the underlying connection.
	Close(ctx context.Context) error
}
