package biz

import (
	"context"
	"errors"

	"github.com/kart-io/logger"

	"github.com/kart-io/shopbot/internal/bot/metrics"
	"github.com/kart-io/shopbot/internal/bot/store"
	"github.com/kart-io/shopbot/internal/model"
)

// Fixed user-facing replies for failure paths.
const (
	msgNotUnderstood = "Sorry, I didn't understand that."
	msgNoQuery       = "Sorry, LLM is not able to generate a query for your question"
	msgQueryFailed   = "Sorry, there was a problem executing your query"
)

// Service is the conversational entrypoint.
type Service interface {
	// Ask answers one user query.
	Ask(ctx context.Context, query string) (*model.ChatResult, error)
	// GetStats returns knowledge base and traffic statistics.
	GetStats(ctx context.Context) (map[string]any, error)
}

// BotService dispatches classified queries to the matching pipeline.
type BotService struct {
	classifier  *Classifier
	faq         *FAQPipeline
	synthesizer *QuerySynthesizer
	summarizer  *Summarizer
	smallTalk   *SmallTalk
	products    store.ProductStore
	collection  string
	faqStore    store.FAQStore
	metrics     *metrics.BotMetrics
}

// NewBotService creates the dispatcher from its pipelines.
func NewBotService(
	classifier *Classifier,
	faq *FAQPipeline,
	synthesizer *QuerySynthesizer,
	summarizer *Summarizer,
	smallTalk *SmallTalk,
	products store.ProductStore,
	faqStore store.FAQStore,
	collection string,
) *BotService {
	return &BotService{
		classifier:  classifier,
		faq:         faq,
		synthesizer: synthesizer,
		summarizer:  summarizer,
		smallTalk:   smallTalk,
		products:    products,
		faqStore:    faqStore,
		collection:  collection,
		metrics:     metrics.GetBotMetrics(),
	}
}

// Ask classifies the query and runs the matching pipeline. Pipeline
// failures never surface as errors to the caller: each failure path has
// a fixed apology reply. Only context cancellation propagates.
func (s *BotService) Ask(ctx context.Context, query string) (*model.ChatResult, error) {
	intent, err := s.classifier.Classify(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warnw("intent classification failed", "error", err.Error(), "query", query)
		s.metrics.RecordChat(string(IntentUnknown), true)
		return &model.ChatResult{Answer: msgNotUnderstood, Intent: string(IntentUnknown)}, nil
	}

	var answer string
	failed := false

	switch intent {
	case IntentFAQ:
		answer, err = s.faq.Answer(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warnw("faq pipeline failed", "error", err.Error(), "query", query)
			answer, failed = msgNotUnderstood, true
		}

	case IntentSQL:
		answer, failed, err = s.askCatalog(ctx, query)
		if err != nil {
			return nil, err
		}

	case IntentSmallTalk:
		answer, err = s.smallTalk.Talk(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warnw("small talk pipeline failed", "error", err.Error(), "query", query)
			answer, failed = msgNotUnderstood, true
		}

	default:
		answer, failed = msgNotUnderstood, true
	}

	s.metrics.RecordChat(string(intent), failed)
	return &model.ChatResult{Answer: answer, Intent: string(intent)}, nil
}

// askCatalog runs the synthesize, execute, summarize chain. Synthesis
// producing no query has its own reply; a rejected statement and an
// execution failure share the execution apology.
func (s *BotService) askCatalog(ctx context.Context, query string) (answer string, failed bool, err error) {
	statement, err := s.synthesizer.Synthesize(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		if errors.Is(err, store.ErrQueryRejected) {
			logger.Warnw("synthesized query rejected", "error", err.Error(), "query", query)
			s.metrics.RecordSQLSynthesis(true)
			return msgQueryFailed, true, nil
		}
		logger.Warnw("query synthesis failed", "error", err.Error(), "query", query)
		return msgNoQuery, true, nil
	}
	s.metrics.RecordSQLSynthesis(false)

	logger.Debugw("synthesized catalog query", "sql", statement)

	rows, err := s.products.Query(ctx, statement)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		s.metrics.RecordSQLExecError()
		logger.Warnw("catalog query failed", "error", err.Error(), "sql", statement)
		return msgQueryFailed, true, nil
	}

	answer, err = s.summarizer.Summarize(ctx, query, rows)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		logger.Warnw("summarization failed", "error", err.Error(), "query", query)
		return msgQueryFailed, true, nil
	}
	return answer, false, nil
}

// GetStats reports knowledge base size and traffic counters.
func (s *BotService) GetStats(ctx context.Context) (map[string]any, error) {
	count, err := s.faqStore.Count(ctx, s.collection)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"collection": s.collection,
		"faq_count":  count,
		"metrics":    s.metrics.Stats(),
	}, nil
}

var _ Service = (*BotService)(nil)
