package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/internal/service/answer"
	"github.com/sandevgo/campusbot/internal/service/history"
	"github.com/sandevgo/campusbot/internal/stream"
)

func testServer(t *testing.T, enabled bool) *Server {
	t.Helper()

	appCfg := &config.AppConfig{LLMProvider: "deepseek", HTTPAddr: ":0", ContextWindowSize: 5}
	svcCfg := &config.ServiceConfig{Enabled: enabled, MaxTokens: 2000, Temperature: 0.7}
	gen := answer.NewGenerator(svcCfg, nil, nil, history.NewStore(), appCfg.ContextWindowSize)

	return NewServer(appCfg, svcCfg, gen)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodGet, "/api/chat", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "ok", got["status"])
}

func TestChat(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodPost, "/api/chat", `{"query":"你好"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "general", got["topic"])
	assert.InDelta(t, 0.304, got["confidence"].(float64), 1e-9)
	assert.NotEmpty(t, got["reply"])
	assert.NotEmpty(t, got["timestamp"])
}

func TestChatMissingQuery(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodPost, "/api/chat", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Query is required", decodeBody(t, rec)["error"])
}

func TestChatDisabled(t *testing.T) {
	rec := doRequest(t, testServer(t, false), http.MethodPost, "/api/chat", `{"query":"你好"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "Service disabled", got["error"])
	assert.Equal(t, disabledReply, got["reply"])
}

func parseFrames(t *testing.T, body string) []stream.Message {
	t.Helper()

	var messages []stream.Message
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var m stream.Message
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &m))
		messages = append(messages, m)
	}
	return messages
}

func TestChatStream(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodPost, "/api/chat/stream", `{"query":"如何学习 React？"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	messages := parseFrames(t, rec.Body.String())
	require.GreaterOrEqual(t, len(messages), 3)

	assert.Equal(t, stream.MessageStart, messages[0].Type)
	assert.Equal(t, stream.StartContent, messages[0].Content)

	last := messages[len(messages)-1]
	require.Equal(t, stream.MessageEnd, last.Type)
	require.NotNil(t, last.Metadata)
	assert.Equal(t, "programming", last.Metadata.Topic)

	var reply strings.Builder
	for _, m := range messages[1 : len(messages)-1] {
		require.Equal(t, stream.MessageChunk, m.Type)
		reply.WriteString(m.Content)
	}
	assert.Contains(t, reply.String(), "1. **分析需求**", "concatenated chunks rebuild the reply")
}

func TestChatStreamDisabled(t *testing.T) {
	rec := doRequest(t, testServer(t, false), http.MethodPost, "/api/chat/stream", `{"query":"你好"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, disabledMessage, decodeBody(t, rec)["message"])
}

func TestChatStreamClientGone(t *testing.T) {
	s := testServer(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/chat/stream", strings.NewReader(`{"query":"你好"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()

	// Must return promptly without panicking on a dead client.
	s.Handler().ServeHTTP(rec, req)
}

func TestHistoryLifecycle(t *testing.T) {
	s := testServer(t, true)

	doRequest(t, s, http.MethodPost, "/api/chat", `{"query":"你好"}`)
	doRequest(t, s, http.MethodPost, "/api/chat", `{"query":"什么是人工智能？"}`)

	rec := doRequest(t, s, http.MethodGet, "/api/chat/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.EqualValues(t, 2, got["count"])

	stats := got["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["totalRequests"])
	assert.EqualValues(t, 2, stats["conversationCount"])

	rec = doRequest(t, s, http.MethodDelete, "/api/chat/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Conversation history cleared successfully", decodeBody(t, rec)["message"])

	rec = doRequest(t, s, http.MethodGet, "/api/chat/history", "")
	got = decodeBody(t, rec)
	assert.EqualValues(t, 0, got["count"])

	stats = got["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["totalRequests"], "the request counter survives a clear")
}

func TestStatus(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodGet, "/api/chat/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "online", got["status"])

	cfg := got["config"].(map[string]any)
	assert.Equal(t, true, cfg["enabled"])
	assert.Equal(t, "deepseek", cfg["provider"])
}

func TestCheckWithoutKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	rec := doRequest(t, testServer(t, true), http.MethodGet, "/api/chat/check", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)

	checks := got["checks"].(map[string]any)
	assert.Equal(t, "deepseek", checks["provider"])
	assert.Equal(t, false, checks["configured"])
	assert.Equal(t, "not set", checks["keyPreview"])
	assert.NotEmpty(t, got["recommendations"])
}

func TestCheckWithKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-abcdef0123456789")

	rec := doRequest(t, testServer(t, true), http.MethodGet, "/api/chat/check", "")
	got := decodeBody(t, rec)

	checks := got["checks"].(map[string]any)
	assert.Equal(t, true, checks["configured"])
	assert.Equal(t, "sk-abcde...", checks["keyPreview"])
}

func TestSelfTest(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodGet, "/api/chat/selftest", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)

	perf := got["performance"].(map[string]any)
	assert.EqualValues(t, len(selfTestCases), perf["totalTests"])
	assert.EqualValues(t, len(selfTestCases), perf["successfulTests"])
	assert.EqualValues(t, len(selfTestCases), perf["topicMatches"], "every canned query must route to its expected topic")
}
