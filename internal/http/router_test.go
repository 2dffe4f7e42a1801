// README: HTTP surface tests over the assembled router.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"voyago/internal/ai"
	"voyago/internal/cache"
	"voyago/internal/config"
	"voyago/internal/modules/banner"
	"voyago/internal/modules/chat"
	"voyago/internal/modules/history"
	"voyago/internal/modules/planner"
	"voyago/internal/modules/trending"
)

type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Generate(context.Context, string, ai.GenerateConfig) (string, error) {
	return p.text, p.err
}

func (p *stubProvider) Chat(context.Context, string, []ai.Message, ai.GenerateConfig) (string, error) {
	return p.text, p.err
}

// hangingProvider blocks until the request context is cancelled, the way a
// stalled upstream call surfaces through the per-request deadline.
type hangingProvider struct{}

func (hangingProvider) Generate(ctx context.Context, _ string, _ ai.GenerateConfig) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (hangingProvider) Chat(ctx context.Context, _ string, _ []ai.Message, _ ai.GenerateConfig) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

const planReply = `{
	"summary": "Three days in Tokyo",
	"itinerary": [
		{"day": 1, "date": "Friday", "summary": "Arrival", "activities": ["Shibuya crossing"]},
		{"day": 2, "date": "Saturday", "summary": "Temples", "activities": ["Senso-ji"]},
		{"day": 3, "date": "Sunday", "summary": "Departure", "activities": ["Last ramen"]}
	],
	"images": []
}`

func newTestRouter(t *testing.T, provider ai.Provider) http.Handler {
	return newTestRouterTimeout(t, provider, 5*time.Second)
}

func newTestRouterTimeout(t *testing.T, provider ai.Provider, timeout time.Duration) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), logger)
	hist := history.NewService(store, logger)

	return NewRouter(RouterDeps{
		Planner:    planner.NewService(provider, hist, nil, logger),
		Chat:       chat.NewService(provider, hist, logger),
		History:    hist,
		Trending:   trending.NewService(hist, cache.NewMemory[[]trending.Destination](), logger),
		Banner:     banner.NewService(provider, cache.NewMemory[string](), config.BannerConfig{Language: "English", Tone: "friendly"}, logger),
		Logger:     logger,
		GenTimeout: timeout,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, body, forwardedFor string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlanScenarioTokyo(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})

	w := doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo", "days": "3"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.Equal(t, 3, int(gjson.Get(body, "itinerary.#").Int()))
	images := gjson.Get(body, "images").Array()
	require.NotEmpty(t, images)
	assert.Contains(t, images[0].String(), "Tokyo")
}

func TestPlanRejectsUnknownKey(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})

	w := doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo", "airline": "ANA"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, gjson.Get(w.Body.String(), "error").String())
}

func TestPlanMissingDestination(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})

	w := doJSON(t, router, "POST", "/plan", `{"days": "3"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanInvalidJSONBody(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})

	w := doJSON(t, router, "POST", "/plan", `{"destination": `, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanUpstreamEmpty(t *testing.T) {
	router := newTestRouter(t, &stubProvider{err: ai.ErrEmptyResponse})

	w := doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo"}`, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPlanChatTimeout(t *testing.T) {
	router := newTestRouterTimeout(t, hangingProvider{}, 20*time.Millisecond)

	w := doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo"}`, "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "model call timed out", gjson.Get(w.Body.String(), "error").String())

	w = doJSON(t, router, "POST", "/chat", `{"messages": [{"role": "user", "content": "where to?"}]}`, "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "model call timed out", gjson.Get(w.Body.String(), "error").String())
}

func TestPlanParseFailureAttachesRaw(t *testing.T) {
	raw := "I'd rather talk about the weather."
	router := newTestRouter(t, &stubProvider{text: raw})

	w := doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo"}`, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, raw, gjson.Get(w.Body.String(), "raw").String())
	assert.NotEmpty(t, gjson.Get(w.Body.String(), "error").String())
}

func TestChatFreeFormReply(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: "Have you considered Lisbon?"})

	w := doJSON(t, router, "POST", "/chat", `{"messages": [{"role": "user", "content": "where to?"}]}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var reply struct {
		Text   string          `json:"text"`
		Parsed json.RawMessage `json:"parsed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "Have you considered Lisbon?", reply.Text)
	assert.Equal(t, "null", strings.TrimSpace(string(reply.Parsed)))
}

func TestChatInvalidBody(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: "ok"})

	for _, body := range []string{`{"messages": "nope"}`, `{}`, `{"messages": []}`} {
		w := doJSON(t, router, "POST", "/chat", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestHistoryScopedToIdentity(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})

	// Two clients plan trips; each must only see their own history.
	require.Equal(t, http.StatusOK, doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo"}`, "203.0.113.7").Code)
	require.Equal(t, http.StatusOK, doJSON(t, router, "POST", "/plan", `{"destination": "Oslo"}`, "198.51.100.9").Code)

	w := doJSON(t, router, "GET", "/history", "", "203.0.113.7")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 1, int(gjson.Get(body, "total").Int()))
	assert.Equal(t, "Tokyo", gjson.Get(body, "results.0.request.destination").String())
	assert.Equal(t, 1, int(gjson.Get(body, "totalPages").Int()))
}

func TestHistoryDeleteMissing(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})

	w := doJSON(t, router, "DELETE", "/history/does-not-exist", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", gjson.Get(w.Body.String(), "error").String())
}

func TestHistoryDeleteForeignEntryForbidden(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})

	require.Equal(t, http.StatusOK, doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo"}`, "203.0.113.7").Code)
	list := doJSON(t, router, "GET", "/history", "", "203.0.113.7")
	id := gjson.Get(list.Body.String(), "results.0.id").String()
	require.NotEmpty(t, id)

	w := doJSON(t, router, "DELETE", "/history/"+id, "", "198.51.100.9")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner can still delete it.
	w = doJSON(t, router, "DELETE", "/history/"+id, "", "203.0.113.7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gjson.Get(w.Body.String(), "success").Bool())
}

func TestTrendingEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: planReply})
	require.Equal(t, http.StatusOK, doJSON(t, router, "POST", "/plan", `{"destination": "Tokyo"}`, "").Code)

	w := doJSON(t, router, "GET", "/trending", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tokyo", gjson.Get(w.Body.String(), "results.0.tag").String())
}

func TestBannerNeverFails(t *testing.T) {
	router := newTestRouter(t, &stubProvider{err: ai.ErrEmptyResponse})

	w := doJSON(t, router, "GET", "/banner", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, banner.Fallback, gjson.Get(w.Body.String(), "text").String())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubProvider{text: "ok"})
	w := doJSON(t, router, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
