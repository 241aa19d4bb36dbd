// Package metrics collects business metrics for the shopbot service.
package metrics

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// BotMetrics tracks chat traffic per intent plus pipeline health.
type BotMetrics struct {
	chatsTotal  uint64
	chatsFAQ    uint64
	chatsSQL    uint64
	chatsSmall  uint64
	chatsOther  uint64
	chatsErrors uint64

	sqlSynthesized uint64
	sqlRejected    uint64
	sqlExecErrors  uint64

	llmCallsTotal    uint64
	llmCallsErrors   uint64
	llmCallsDuration float64

	startTime  time.Time
	durationMu sync.Mutex
}

var (
	globalBotMetrics *BotMetrics
	botMetricsOnce   sync.Once
)

// GetBotMetrics returns the global metrics instance.
func GetBotMetrics() *BotMetrics {
	botMetricsOnce.Do(func() {
		globalBotMetrics = &BotMetrics{
			startTime: time.Now(),
		}
	})
	return globalBotMetrics
}

// RecordChat records a handled chat request. The intent is one of the
// dispatcher's route names.
func (m *BotMetrics) RecordChat(intent string, failed bool) {
	atomic.AddUint64(&m.chatsTotal, 1)
	switch intent {
	case "faq":
		atomic.AddUint64(&m.chatsFAQ, 1)
	case "sql":
		atomic.AddUint64(&m.chatsSQL, 1)
	case "small-talk":
		atomic.AddUint64(&m.chatsSmall, 1)
	default:
		atomic.AddUint64(&m.chatsOther, 1)
	}
	if failed {
		atomic.AddUint64(&m.chatsErrors, 1)
	}
}

// RecordSQLSynthesis records one successfully extracted catalog query.
// rejected marks statements that failed the read-only guard.
func (m *BotMetrics) RecordSQLSynthesis(rejected bool) {
	atomic.AddUint64(&m.sqlSynthesized, 1)
	if rejected {
		atomic.AddUint64(&m.sqlRejected, 1)
	}
}

// RecordSQLExecError records a catalog query execution failure.
func (m *BotMetrics) RecordSQLExecError() {
	atomic.AddUint64(&m.sqlExecErrors, 1)
}

// RecordLLMCall records a language model call.
func (m *BotMetrics) RecordLLMCall(duration time.Duration, err error) {
	atomic.AddUint64(&m.llmCallsTotal, 1)
	if err != nil {
		atomic.AddUint64(&m.llmCallsErrors, 1)
		return
	}

	m.durationMu.Lock()
	m.llmCallsDuration += duration.Seconds()
	m.durationMu.Unlock()
}

// Export renders the metrics in Prometheus text format.
func (m *BotMetrics) Export(namespace, subsystem string) string {
	var sb strings.Builder
	prefix := namespace
	if subsystem != "" {
		prefix = prefix + "_" + subsystem
	}

	counter := func(name, help string, value uint64) {
		sb.WriteString(fmt.Sprintf("# HELP %s_%s %s\n", prefix, name, help))
		sb.WriteString(fmt.Sprintf("# TYPE %s_%s counter\n", prefix, name))
		sb.WriteString(fmt.Sprintf("%s_%s %d\n\n", prefix, name, value))
	}

	counter("chats_total", "Total number of chat requests.", atomic.LoadUint64(&m.chatsTotal))
	counter("chats_faq_total", "Chat requests routed to the FAQ pipeline.", atomic.LoadUint64(&m.chatsFAQ))
	counter("chats_sql_total", "Chat requests routed to the catalog query pipeline.", atomic.LoadUint64(&m.chatsSQL))
	counter("chats_smalltalk_total", "Chat requests routed to small talk.", atomic.LoadUint64(&m.chatsSmall))
	counter("chats_unknown_total", "Chat requests with no matching route.", atomic.LoadUint64(&m.chatsOther))
	counter("chats_errors_total", "Chat requests that ended in a failure reply.", atomic.LoadUint64(&m.chatsErrors))
	counter("sql_synthesized_total", "Catalog queries extracted from model responses.", atomic.LoadUint64(&m.sqlSynthesized))
	counter("sql_rejected_total", "Extracted queries rejected by the read-only guard.", atomic.LoadUint64(&m.sqlRejected))
	counter("sql_exec_errors_total", "Catalog query execution failures.", atomic.LoadUint64(&m.sqlExecErrors))
	counter("llm_calls_total", "Total language model calls.", atomic.LoadUint64(&m.llmCallsTotal))
	counter("llm_calls_errors_total", "Failed language model calls.", atomic.LoadUint64(&m.llmCallsErrors))

	m.durationMu.Lock()
	llmDuration := m.llmCallsDuration
	m.durationMu.Unlock()

	sb.WriteString(fmt.Sprintf("# HELP %s_llm_calls_duration_seconds_total Total LLM call duration.\n", prefix))
	sb.WriteString(fmt.Sprintf("# TYPE %s_llm_calls_duration_seconds_total counter\n", prefix))
	sb.WriteString(fmt.Sprintf("%s_llm_calls_duration_seconds_total %.6f\n\n", prefix, llmDuration))

	uptime := time.Since(m.startTime).Seconds()
	sb.WriteString(fmt.Sprintf("# HELP %s_uptime_seconds Service uptime in seconds.\n", prefix))
	sb.WriteString(fmt.Sprintf("# TYPE %s_uptime_seconds gauge\n", prefix))
	sb.WriteString(fmt.Sprintf("%s_uptime_seconds %.2f\n\n", prefix, uptime))

	return sb.String()
}

// Stats returns the current statistics for the API.
func (m *BotMetrics) Stats() map[string]interface{} {
	m.durationMu.Lock()
	llmDuration := m.llmCallsDuration
	m.durationMu.Unlock()

	llmTotal := atomic.LoadUint64(&m.llmCallsTotal)
	avgLLMDuration := 0.0
	if llmTotal > 0 {
		avgLLMDuration = llmDuration / float64(llmTotal)
	}

	return map[string]interface{}{
		"chats": map[string]interface{}{
			"total":      atomic.LoadUint64(&m.chatsTotal),
			"faq":        atomic.LoadUint64(&m.chatsFAQ),
			"sql":        atomic.LoadUint64(&m.chatsSQL),
			"small_talk": atomic.LoadUint64(&m.chatsSmall),
			"unknown":    atomic.LoadUint64(&m.chatsOther),
			"errors":     atomic.LoadUint64(&m.chatsErrors),
		},
		"sql": map[string]interface{}{
			"synthesized": atomic.LoadUint64(&m.sqlSynthesized),
			"rejected":    atomic.LoadUint64(&m.sqlRejected),
			"exec_errors": atomic.LoadUint64(&m.sqlExecErrors),
		},
		"llm": map[string]interface{}{
			"calls_total":         llmTotal,
			"total_duration_secs": llmDuration,
			"avg_duration_secs":   avgLLMDuration,
			"errors":              atomic.LoadUint64(&m.llmCallsErrors),
		},
		"uptime_seconds": time.Since(m.startTime).Seconds(),
	}
}

// Reset clears all metrics. Test helper.
func (m *BotMetrics) Reset() {
	atomic.StoreUint64(&m.chatsTotal, 0)
	atomic.StoreUint64(&m.chatsFAQ, 0)
	atomic.StoreUint64(&m.chatsSQL, 0)
	atomic.StoreUint64(&m.chatsSmall, 0)
	atomic.StoreUint64(&m.chatsOther, 0)
	atomic.StoreUint64(&m.chatsErrors, 0)
	atomic.StoreUint64(&m.sqlSynthesized, 0)
	atomic.StoreUint64(&m.sqlRejected, 0)
	atomic.StoreUint64(&m.sqlExecErrors, 0)
	atomic.StoreUint64(&m.llmCallsTotal, 0)
	atomic.StoreUint64(&m.llmCallsErrors, 0)

	m.durationMu.Lock()
	m.llmCallsDuration = 0
	m.startTime = time.Now()
	m.durationMu.Unlock()
}
