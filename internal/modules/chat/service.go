// README: Conversation service; free-form chat with opportunistic itinerary capture.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"voyago/internal/ai"
	"voyago/internal/modules/history"
	"voyago/internal/sanitize"
)

var ErrInvalidInput = errors.New("messages must be a list of role/content pairs")

// chatConfig gives conversations more headroom than single-shot planning:
// higher temperature, larger token budget.
var chatConfig = ai.GenerateConfig{Temperature: 0.8, MaxOutputTokens: 4096}

// snippetLimit bounds the user-message hint stored with chat history
// entries so arbitrarily long conversations cannot bloat the log.
const snippetLimit = 200

const systemInstruction = `You are a friendly travel assistant. Help the user shape their trip through conversation.
When the user has settled on a concrete plan, include in your reply a JSON object with a "summary" string and an "itinerary" array of day objects ({"day", "date", "summary", "activities"}).
Until then, just converse naturally.`

// InboundMessage is one wire-format conversation turn. Content is decoded
// loosely: anything that is not a string becomes empty content.
type InboundMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// Reply carries the raw model text plus a best-effort structured
// extraction. Parsed is null when the reply was purely conversational.
type Reply struct {
	Text   string          `json:"text"`
	Parsed json.RawMessage `json:"parsed"`
}

type Service struct {
	provider ai.Provider
	history  *history.Service
	logger   *slog.Logger
}

func NewService(provider ai.Provider, hist *history.Service, logger *slog.Logger) *Service {
	return &Service{provider: provider, history: hist, logger: logger}
}

// Converse runs one chat turn. A reply that cannot be parsed as JSON is a
// normal outcome, not an error; history is appended only when the parsed
// payload actually contains an itinerary.
func (s *Service) Converse(ctx context.Context, userHash string, msgs []InboundMessage, group string) (*Reply, error) {
	if len(msgs) == 0 {
		return nil, ErrInvalidInput
	}
	group = sanitize.Clean(group)

	normalized := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		content := ""
		if str, ok := m.Content.(string); ok {
			content = sanitize.Clean(str)
		}
		normalized = append(normalized, ai.Message{Role: m.Role, Content: content})
	}

	system := systemInstruction
	if group != "" {
		system += fmt.Sprintf("\nThe user is traveling as: %s.", group)
	}

	text, err := s.provider.Chat(ctx, system, normalized, chatConfig)
	if err != nil {
		return nil, err
	}

	reply := &Reply{Text: text}
	var obj map[string]any
	if err := ai.ExtractJSON(text, &obj); err == nil {
		if parsed, err := json.Marshal(obj); err == nil {
			reply.Parsed = parsed
		}
	}

	if gjson.GetBytes(reply.Parsed, "itinerary").Exists() {
		s.history.Append(ctx, &history.Entry{
			UserHash: userHash,
			Request: history.RequestRecord{
				Mode:    history.ModeChat,
				Group:   group,
				Message: truncate(lastUserContent(normalized), snippetLimit),
			},
			Response: reply.Parsed,
		})
	}
	return reply, nil
}

// lastUserContent returns the most recent user turn, falling back to the
// final message when the caller sent no user role at all.
func lastUserContent(msgs []ai.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			return msgs[i].Content
		}
	}
	return msgs[len(msgs)-1].Content
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
