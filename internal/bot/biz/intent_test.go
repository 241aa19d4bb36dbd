package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes() []Route {
	return []Route{
		{Name: IntentFAQ, Utterances: []string{"What is the refund policy?", "Do you accept cash?"}},
		{Name: IntentSQL, Utterances: []string{"Are there any Puma shoes on sale?"}},
		{Name: IntentSmallTalk, Utterances: []string{"What is your name?"}},
	}
}

func testEmbedder() *mockEmbedder {
	return &mockEmbedder{vectors: map[string][]float32{
		"What is the refund policy?":        {1, 0, 0},
		"Do you accept cash?":               {0.9, 0.1, 0},
		"Are there any Puma shoes on sale?": {0, 1, 0},
		"What is your name?":                {0, 0, 1},
		"How do refunds work?":              {0.95, 0.05, 0},
		"Show me cheap nike shoes":          {0.1, 0.95, 0},
		"Who are you?":                      {0, 0.1, 0.9},
		"completely unrelated":              {0.5, 0.5, 0.5},
		"equidistant":                       {1, 1, 0},
	}}
}

func newTestClassifier(t *testing.T, threshold float64) *Classifier {
	t.Helper()
	c, err := NewClassifier(context.Background(), testEmbedder(), testRoutes(), &ClassifierConfig{Threshold: threshold})
	require.NoError(t, err)
	return c
}

func TestClassify_RoutesByClosestUtterance(t *testing.T) {
	c := newTestClassifier(t, 0.7)
	ctx := context.Background()

	tests := []struct {
		query string
		want  Intent
	}{
		{"How do refunds work?", IntentFAQ},
		{"Show me cheap nike shoes", IntentSQL},
		{"Who are you?", IntentSmallTalk},
	}
	for _, tt := range tests {
		intent, err := c.Classify(ctx, tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, intent, "query %q", tt.query)
	}
}

func TestClassify_ReferenceUtterancesMatchTheirOwnRoute(t *testing.T) {
	c := newTestClassifier(t, 0.7)
	ctx := context.Background()

	for _, route := range testRoutes() {
		for _, u := range route.Utterances {
			intent, err := c.Classify(ctx, u)
			require.NoError(t, err)
			assert.Equal(t, route.Name, intent, "utterance %q", u)
		}
	}
}

func TestClassify_BelowThresholdIsUnknown(t *testing.T) {
	c := newTestClassifier(t, 0.99)

	intent, err := c.Classify(context.Background(), "completely unrelated")
	require.NoError(t, err)
	assert.Equal(t, IntentUnknown, intent)
}

func TestClassify_EmptyQueryIsUnknown(t *testing.T) {
	embedder := testEmbedder()
	c, err := NewClassifier(context.Background(), embedder, testRoutes(), &ClassifierConfig{Threshold: 0.7})
	require.NoError(t, err)
	calls := embedder.embedCalls

	intent, err := c.Classify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, IntentUnknown, intent)
	// The embedding backend is not consulted for empty input.
	assert.Equal(t, calls, embedder.embedCalls)
}

func TestClassify_TieKeepsEarliestRoute(t *testing.T) {
	// "equidistant" scores identically against both single-utterance
	// routes below.
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"a":           {1, 0},
		"b":           {0, 1},
		"equidistant": {1, 1},
	}}
	routes := []Route{
		{Name: IntentFAQ, Utterances: []string{"a"}},
		{Name: IntentSQL, Utterances: []string{"b"}},
	}
	c, err := NewClassifier(context.Background(), embedder, routes, &ClassifierConfig{Threshold: 0.5})
	require.NoError(t, err)

	intent, err := c.Classify(context.Background(), "equidistant")
	require.NoError(t, err)
	assert.Equal(t, IntentFAQ, intent)
}

func TestClassify_EmbedderError(t *testing.T) {
	c := newTestClassifier(t, 0.7)

	intent, err := c.Classify(context.Background(), "text with no vector")
	assert.ErrorIs(t, err, ErrEncoding)
	assert.Equal(t, IntentUnknown, intent)
}

func TestNewClassifier_EncodeFailureIsFatal(t *testing.T) {
	embedder := &mockEmbedder{err: assert.AnError}

	_, err := NewClassifier(context.Background(), embedder, testRoutes(), &ClassifierConfig{Threshold: 0.7})
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestDefaultRoutes_CoversAllIntents(t *testing.T) {
	routes := DefaultRoutes()
	require.Len(t, routes, 3)
	assert.Equal(t, IntentFAQ, routes[0].Name)
	assert.Equal(t, IntentSQL, routes[1].Name)
	assert.Equal(t, IntentSmallTalk, routes[2].Name)
	for _, r := range routes {
		assert.NotEmpty(t, r.Utterances)
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, cosineSimilarity(nil, nil))
}
