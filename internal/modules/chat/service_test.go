// README: Conversation service tests (degraded parsing, conditional history capture).
package chat

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/internal/ai"
	"voyago/internal/modules/history"
)

type stubProvider struct {
	text       string
	err        error
	lastSystem string
	lastMsgs   []ai.Message
}

func (p *stubProvider) Generate(_ context.Context, _ string, _ ai.GenerateConfig) (string, error) {
	return p.text, p.err
}

func (p *stubProvider) Chat(_ context.Context, system string, msgs []ai.Message, _ ai.GenerateConfig) (string, error) {
	p.lastSystem = system
	p.lastMsgs = msgs
	return p.text, p.err
}

func newTestService(t *testing.T, provider ai.Provider) (*Service, *history.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), logger)
	hist := history.NewService(store, logger)
	return NewService(provider, hist, logger), hist
}

func userMsg(content any) InboundMessage {
	return InboundMessage{Role: "user", Content: content}
}

func TestConverseFreeFormReplyIsNotAnError(t *testing.T) {
	provider := &stubProvider{text: "How about somewhere warm? Portugal is lovely in May."}
	svc, hist := newTestService(t, provider)

	reply, err := svc.Converse(context.Background(), "h1", []InboundMessage{userMsg("where should I go?")}, "")
	require.NoError(t, err)
	assert.Equal(t, provider.text, reply.Text)
	assert.Nil(t, reply.Parsed, "conversational reply should carry no structured payload")

	p, _ := hist.PageByUser(context.Background(), "h1", 1, 10)
	assert.Equal(t, 0, p.Total, "no itinerary, no history entry")
}

func TestConverseCapturesItinerary(t *testing.T) {
	provider := &stubProvider{text: `Here you go!
{"summary": "Weekend in Porto", "itinerary": [{"day": 1, "date": "Saturday", "summary": "Ribeira", "activities": ["walk the riverside"]}]}`}
	svc, hist := newTestService(t, provider)

	msgs := []InboundMessage{
		userMsg("plan me a weekend in Porto"),
		{Role: "assistant", Content: "Any preferences?"},
		userMsg("something walkable"),
	}
	reply, err := svc.Converse(context.Background(), "h1", msgs, "couple")
	require.NoError(t, err)
	require.NotNil(t, reply.Parsed)

	p, _ := hist.PageByUser(context.Background(), "h1", 1, 10)
	require.Equal(t, 1, p.Total)
	e := p.Results[0]
	assert.Equal(t, history.ModeChat, e.Request.Mode)
	assert.Equal(t, "couple", e.Request.Group)
	assert.Equal(t, "something walkable", e.Request.Message, "hint is the last user message, not the whole conversation")
	assert.Empty(t, e.Request.Destination)
}

func TestConverseSnippetIsTruncated(t *testing.T) {
	provider := &stubProvider{text: `{"summary": "x", "itinerary": []}`}
	svc, hist := newTestService(t, provider)

	long := strings.Repeat("a", 1000)
	_, err := svc.Converse(context.Background(), "h1", []InboundMessage{userMsg(long)}, "")
	require.NoError(t, err)

	p, _ := hist.PageByUser(context.Background(), "h1", 1, 10)
	require.Equal(t, 1, p.Total)
	assert.Len(t, p.Results[0].Request.Message, 200)
}

func TestConverseNonStringContentBecomesEmpty(t *testing.T) {
	provider := &stubProvider{text: "ok"}
	svc, _ := newTestService(t, provider)

	_, err := svc.Converse(context.Background(), "h1", []InboundMessage{userMsg(map[string]any{"nested": true})}, "")
	require.NoError(t, err)
	require.Len(t, provider.lastMsgs, 1)
	assert.Equal(t, "", provider.lastMsgs[0].Content)
}

func TestConverseSanitizesContentAndGroup(t *testing.T) {
	provider := &stubProvider{text: "ok"}
	svc, _ := newTestService(t, provider)

	_, err := svc.Converse(context.Background(), "h1",
		[]InboundMessage{userMsg(`Rome<script>alert(1)</script>`)}, "<b>family</b>")
	require.NoError(t, err)
	assert.Equal(t, "Rome", provider.lastMsgs[0].Content)
	assert.Contains(t, provider.lastSystem, "family")
	assert.NotContains(t, provider.lastSystem, "<b>")
}

func TestConverseRejectsEmptyMessages(t *testing.T) {
	svc, _ := newTestService(t, &stubProvider{text: "ok"})

	_, err := svc.Converse(context.Background(), "h1", nil, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConversePropagatesUpstreamEmpty(t *testing.T) {
	svc, _ := newTestService(t, &stubProvider{err: ai.ErrEmptyResponse})

	_, err := svc.Converse(context.Background(), "h1", []InboundMessage{userMsg("hi")}, "")
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}
