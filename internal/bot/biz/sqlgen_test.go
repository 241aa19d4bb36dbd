package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/shopbot/internal/bot/store"
)

func TestSynthesize_ExtractsQuery(t *testing.T) {
	chat := &mockChat{response: "<SQL>SELECT * FROM product WHERE brand LIKE '%puma%'</SQL>"}
	s := NewQuerySynthesizer(chat)

	query, err := s.Synthesize(context.Background(), "Show me puma shoes")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM product WHERE brand LIKE '%puma%'", query)
	assert.Contains(t, chat.lastSystemContent(), "<schema>")
	assert.Equal(t, "Show me puma shoes", chat.lastUserContent())
}

func TestSynthesize_MultilineQuery(t *testing.T) {
	chat := &mockChat{response: "Here you go:\n<SQL>\nSELECT *\nFROM product\nWHERE price < 3000\n</SQL>\nHope that helps."}
	s := NewQuerySynthesizer(chat)

	query, err := s.Synthesize(context.Background(), "shoes under 3000")
	require.NoError(t, err)
	assert.Equal(t, "SELECT *\nFROM product\nWHERE price < 3000", query)
}

func TestSynthesize_FirstBlockWins(t *testing.T) {
	chat := &mockChat{response: "<SQL>SELECT * FROM product</SQL> or maybe <SQL>SELECT * FROM product WHERE 1=2</SQL>"}
	s := NewQuerySynthesizer(chat)

	query, err := s.Synthesize(context.Background(), "everything")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM product", query)
}

func TestSynthesize_NoSentinelBlock(t *testing.T) {
	for _, resp := range []string{
		"I cannot answer that.",
		"<SQL>SELECT * FROM product",
		"SELECT * FROM product</SQL>",
		"",
	} {
		chat := &mockChat{response: resp}
		s := NewQuerySynthesizer(chat)

		_, err := s.Synthesize(context.Background(), "anything")
		assert.ErrorIs(t, err, ErrNoQueryFound, "response %q", resp)
	}
}

func TestSynthesize_ChatError(t *testing.T) {
	chat := &mockChat{err: assert.AnError}
	s := NewQuerySynthesizer(chat)

	_, err := s.Synthesize(context.Background(), "anything")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSynthesize_RejectsNonSelect(t *testing.T) {
	for _, resp := range []string{
		"<SQL>DELETE FROM product</SQL>",
		"<SQL>  DeLeTe FROM product WHERE price > 0</SQL>",
		"<SQL>DROP TABLE product</SQL>",
		"<SQL>UPDATE product SET price = 0</SQL>",
		"<SQL>  </SQL>",
	} {
		chat := &mockChat{response: resp}
		s := NewQuerySynthesizer(chat)

		query, err := s.Synthesize(context.Background(), "anything")
		assert.ErrorIs(t, err, store.ErrQueryRejected, "response %q", resp)
		assert.Empty(t, query, "response %q", resp)
	}
}
