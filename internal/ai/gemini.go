package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Generate sends a single prompt to Gemini and returns the reply text.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, cfg GenerateConfig) (string, error) {
	model := p.model(cfg)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return candidateText(resp)
}

// Chat replays the conversation as Gemini chat history and sends the last
// message. The system instruction rides on the model rather than the prompt
// so multi-turn context stays clean.
func (p *GeminiProvider) Chat(ctx context.Context, system string, msgs []Message, cfg GenerateConfig) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("gemini: empty conversation")
	}
	model := p.model(cfg)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	session := model.StartChat()
	for _, m := range msgs[:len(msgs)-1] {
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(msgs[len(msgs)-1].Content))
	if err != nil {
		return "", fmt.Errorf("gemini: send message: %w", err)
	}
	return candidateText(resp)
}

func (p *GeminiProvider) model(cfg GenerateConfig) *genai.GenerativeModel {
	model := p.client.GenerativeModel(geminiModel)
	model.SetTemperature(cfg.Temperature)
	if cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	}
	return model
}

// candidateText flattens the first candidate's text parts.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.Join(parts, "\n"), nil
}
