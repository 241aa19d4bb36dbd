// Package biz provides the business logic layer for the shopbot service.
//
// Incoming queries are classified into intents by the semantic
// Classifier, then dispatched to one of three pipelines:
//   - FAQPipeline: retrieval-grounded answers from the FAQ knowledge base
//   - QuerySynthesizer + Summarizer: natural language catalog search
//   - SmallTalk: persona-driven casual conversation
//
// BotService combines the pipelines behind a single Ask entrypoint.
package biz
