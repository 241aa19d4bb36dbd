package biz

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kart-io/shopbot/internal/bot/metrics"
	"github.com/kart-io/shopbot/internal/bot/store"
	"github.com/kart-io/shopbot/internal/pkg/sqlguard"
	"github.com/kart-io/shopbot/pkg/component/ollama"
)

// sqlSystemPrompt instructs the model to translate a catalog question
// into a single SELECT statement wrapped in sentinel tags.
const sqlSystemPrompt = `You are an expert in understanding the database schema and generating SQL queries for a natural language question asked
pertaining to the data you have. The schema is provided in the schema tags.
<schema>
table: product

fields:
product_link - string (hyperlink to product)
title - string (name of the product)
brand - string (brand of the product)
price - integer (price of the product in Indian Rupees)
discount - float (discount on the product. 10 percent discount is represented as 0.1, 20 percent as 0.2, and such.)
avg_rating - float (average rating of the product. Range 0-5, 5 is the highest.)
total_ratings - integer (total number of ratings for the product)

</schema>
Make sure whenever you try to search for the brand name, the name can be in any case.
So, make sure to use %LIKE% to find the brand in condition. Never use "ILIKE".
Create a single SQL query for the question provided.
The query should have all the fields in SELECT clause (i.e. SELECT *)

Just the SQL query is needed, nothing more. Always provide the SQL in between the <SQL></SQL> tags.`

// sqlTagPattern extracts the statement between the sentinel tags. (?s)
// lets the match span newlines; the non-greedy body stops at the first
// closing tag.
var sqlTagPattern = regexp.MustCompile(`(?s)<SQL>(.*?)</SQL>`)

const (
	sqlTemperature = 0.2
	sqlMaxTokens   = 1024
)

// QuerySynthesizer turns natural language catalog questions into SQL.
type QuerySynthesizer struct {
	chat    ChatClient
	metrics *metrics.BotMetrics
}

// NewQuerySynthesizer creates a query synthesizer.
func NewQuerySynthesizer(chat ChatClient) *QuerySynthesizer {
	return &QuerySynthesizer{chat: chat, metrics: metrics.GetBotMetrics()}
}

// Synthesize asks the model for a query, extracts the first sentinel
// block and checks the read-only prefix. Responses without a sentinel
// block return ErrNoQueryFound; extracted statements that are not plain
// SELECTs return store.ErrQueryRejected. The executor re-checks the
// prefix on its own.
func (s *QuerySynthesizer) Synthesize(ctx context.Context, question string) (string, error) {
	start := time.Now()
	resp, err := s.chat.Chat(ctx,
		[]ollama.ChatMessage{
			ollama.System(sqlSystemPrompt),
			ollama.User(question),
		},
		ollama.WithTemperature(sqlTemperature),
		ollama.WithMaxTokens(sqlMaxTokens),
	)
	s.metrics.RecordLLMCall(time.Since(start), err)
	if err != nil {
		return "", err
	}

	match := sqlTagPattern.FindStringSubmatch(resp)
	if match == nil {
		return "", ErrNoQueryFound
	}

	statement := strings.TrimSpace(match[1])
	if !sqlguard.IsReadOnly(statement) {
		return "", fmt.Errorf("synthesized statement failed the read-only check: %w", store.ErrQueryRejected)
	}

	return statement, nil
}
