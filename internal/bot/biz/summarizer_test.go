package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/shopbot/internal/model"
)

func TestSummarize(t *testing.T) {
	chat := &mockChat{response: "1. Campus Women Running Shoes: Rs. 1104 (35 percent off), Rating: 4.4 <link>"}
	s := NewSummarizer(chat)

	rows := []model.Row{
		{
			"title":      "Campus Women Running Shoes",
			"price":      1104,
			"discount":   0.35,
			"avg_rating": 4.4,
		},
	}

	answer, err := s.Summarize(context.Background(), "Show me running shoes", rows)
	require.NoError(t, err)
	assert.Equal(t, chat.response, answer)

	user := chat.lastUserContent()
	assert.Contains(t, user, "QUESTION: Show me running shoes")
	assert.Contains(t, user, "DATA: ")
	assert.Contains(t, user, "Campus Women Running Shoes")
	assert.Contains(t, user, "4.4")

	system := chat.lastSystemContent()
	assert.Contains(t, system, "Reply based on only the data provided")
	assert.Contains(t, system, "Rs. 1104 (35 percent off)")
}

func TestSummarize_EmptyRows(t *testing.T) {
	chat := &mockChat{response: "No matching products were found."}
	s := NewSummarizer(chat)

	answer, err := s.Summarize(context.Background(), "Show me gold shoes", nil)
	require.NoError(t, err)
	assert.Equal(t, chat.response, answer)
	assert.Contains(t, chat.lastUserContent(), "DATA: null")
}

func TestSummarize_ChatError(t *testing.T) {
	chat := &mockChat{err: assert.AnError}
	s := NewSummarizer(chat)

	_, err := s.Summarize(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, assert.AnError)
}
