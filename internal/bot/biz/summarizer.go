package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/kart-io/shopbot/internal/bot/metrics"
	"github.com/kart-io/shopbot/internal/model"
	"github.com/kart-io/shopbot/pkg/component/ollama"
)

// comprehensionPrompt turns raw query results into a plain language
// reply, with a fixed list format for product answers.
const comprehensionPrompt = `You are an expert in understanding the context of the question and replying based on the data pertaining to the question provided.
You will be provided with Question: and Data:. The data will be in the form of an array or a dataframe or dict.
Reply based on only the data provided as Data for answering the question asked as Question.
Do not write anything like 'Based on the data' or any other technical words. Just a plain simple natural language response.
The Data would always be in context to the question asked.
For example is the question is "What is the average rating?" and data is "4.3", then answer should be "The average rating for the product is 4.3".
So make sure the response is curated with the question and data.
Make sure to note the column names to have some context, if needed, for your response.
There can also be cases where you are given an entire dataframe in the Data: field.
Always remember that the data field contains the answer of the question asked.
All you need to do is to always reply in the following format when asked about a product:
Product title, price in indian rupees, discount, and rating, and then product link.
Take care that all the products are listed in list format, one line after the other. Not as a paragraph.
For example:
1. Campus Women Running Shoes: Rs. 1104 (35 percent off), Rating: 4.4 <link>
2. Campus Women Running Shoes: Rs. 1104 (35 percent off), Rating: 4.4 <link>
3. Campus Women Running Shoes: Rs. 1104 (35 percent off), Rating: 4.4 <link>`

// Summarizer renders catalog query results as a natural language
// answer.
type Summarizer struct {
	chat    ChatClient
	metrics *metrics.BotMetrics
}

// NewSummarizer creates a summarizer.
func NewSummarizer(chat ChatClient) *Summarizer {
	return &Summarizer{chat: chat, metrics: metrics.GetBotMetrics()}
}

// Summarize answers the question from the given result rows.
func (s *Summarizer) Summarize(ctx context.Context, question string, rows []model.Row) (string, error) {
	data, err := sonic.MarshalString(rows)
	if err != nil {
		return "", fmt.Errorf("failed to encode result rows: %w", err)
	}

	start := time.Now()
	answer, err := s.chat.Chat(ctx,
		[]ollama.ChatMessage{
			ollama.System(comprehensionPrompt),
			ollama.User(fmt.Sprintf("QUESTION: %s DATA: %s", question, data)),
		},
		ollama.WithTemperature(sqlTemperature),
	)
	s.metrics.RecordLLMCall(time.Since(start), err)
	return answer, err
}
