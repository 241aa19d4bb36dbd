package biz

import (
	"context"
	"fmt"
	"math"
)

// Intent identifies which pipeline handles a query.
type Intent string

const (
	// IntentFAQ routes to the FAQ retrieval pipeline.
	IntentFAQ Intent = "faq"
	// IntentSQL routes to the catalog query pipeline.
	IntentSQL Intent = "sql"
	// IntentSmallTalk routes to the conversational pipeline.
	IntentSmallTalk Intent = "small-talk"
	// IntentUnknown means no route matched.
	IntentUnknown Intent = "unknown"
)

// Route pairs an intent with reference utterances that describe it.
type Route struct {
	Name       Intent
	Utterances []string
}

// ClassifierConfig configures the semantic classifier.
type ClassifierConfig struct {
	// Threshold is the minimum similarity a route must reach to match.
	Threshold float64
}

// routeIndex maps every encoded utterance back to its route.
type routeIndex struct {
	route  int
	vector []float32
}

// Classifier assigns an intent to a query by comparing its embedding
// against pre-encoded route utterances.
type Classifier struct {
	embedder  Embedder
	routes    []Route
	index     []routeIndex
	threshold float64
}

// NewClassifier encodes every route utterance up front and returns a
// ready classifier. Encoding failure is fatal for the caller since a
// classifier without reference vectors cannot route anything.
func NewClassifier(ctx context.Context, embedder Embedder, routes []Route, config *ClassifierConfig) (*Classifier, error) {
	var texts []string
	var owners []int
	for ri, route := range routes {
		for _, u := range route.Utterances {
			texts = append(texts, u)
			owners = append(owners, ri)
		}
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d utterances", ErrEncoding, len(vectors), len(texts))
	}

	index := make([]routeIndex, len(texts))
	for i := range texts {
		index[i] = routeIndex{route: owners[i], vector: vectors[i]}
	}

	return &Classifier{
		embedder:  embedder,
		routes:    routes,
		index:     index,
		threshold: config.Threshold,
	}, nil
}

// Classify returns the intent whose utterances are most similar to the
// query. A route wins only if its best utterance similarity is at least
// the threshold; ties keep the earliest declared route. Empty queries
// are unknown without touching the embedding backend.
func (c *Classifier) Classify(ctx context.Context, query string) (Intent, error) {
	if query == "" {
		return IntentUnknown, nil
	}

	vec, err := c.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return IntentUnknown, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	// Best utterance similarity per route.
	best := make([]float64, len(c.routes))
	for i := range best {
		best[i] = math.Inf(-1)
	}
	for _, entry := range c.index {
		score := cosineSimilarity(vec, entry.vector)
		if score > best[entry.route] {
			best[entry.route] = score
		}
	}

	winner := -1
	winnerScore := math.Inf(-1)
	for i, score := range best {
		if score > winnerScore {
			winner = i
			winnerScore = score
		}
	}

	if winner < 0 || winnerScore < c.threshold {
		return IntentUnknown, nil
	}
	return c.routes[winner].Name, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
