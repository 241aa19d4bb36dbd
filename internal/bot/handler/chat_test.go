package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/shopbot/internal/model"
)

type mockService struct {
	result   *model.ChatResult
	stats    map[string]any
	askErr   error
	statsErr error
}

func (m *mockService) Ask(ctx context.Context, query string) (*model.ChatResult, error) {
	if m.askErr != nil {
		return nil, m.askErr
	}
	return m.result, nil
}

func (m *mockService) GetStats(ctx context.Context) (map[string]any, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.stats, nil
}

func newTestRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(svc)
	engine := gin.New()
	engine.GET("/healthz", h.Healthz)
	engine.POST("/v1/chat", h.Chat)
	engine.GET("/v1/stats", h.Stats)
	return engine
}

func TestChat(t *testing.T) {
	engine := newTestRouter(&mockService{
		result: &model.ChatResult{Answer: "Refunds take 5-7 days.", Intent: "faq"},
	})

	body, _ := json.Marshal(ChatRequest{Query: "How do refunds work?"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "Refunds take 5-7 days.", data["answer"])
	assert.Equal(t, "faq", data["intent"])
}

func TestChat_MissingQuery(t *testing.T) {
	engine := newTestRouter(&mockService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_InvalidJSON(t *testing.T) {
	engine := newTestRouter(&mockService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_ServiceError(t *testing.T) {
	engine := newTestRouter(&mockService{askErr: assert.AnError})

	body, _ := json.Marshal(ChatRequest{Query: "anything"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStats(t *testing.T) {
	engine := newTestRouter(&mockService{
		stats: map[string]any{"collection": "faqs", "faq_count": int64(12)},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "faqs", data["collection"])
}

func TestHealthz(t *testing.T) {
	engine := newTestRouter(&mockService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
