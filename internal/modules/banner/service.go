// README: Daily promotional banner phrase; falls back to a fixed line on any failure.
package banner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"voyago/internal/ai"
	"voyago/internal/cache"
	"voyago/internal/config"
)

// Fallback is served whenever the model cannot produce a phrase. Banner
// text is decorative and must never block a page render.
const Fallback = "Every journey begins with a single step."

var bannerConfig = ai.GenerateConfig{Temperature: 0.7, MaxOutputTokens: 60}

type Service struct {
	provider ai.Provider
	cache    cache.Daily[string]
	cfg      config.BannerConfig
	logger   *slog.Logger
}

func NewService(provider ai.Provider, daily cache.Daily[string], cfg config.BannerConfig, logger *slog.Logger) *Service {
	return &Service{provider: provider, cache: daily, cfg: cfg, logger: logger}
}

// Text returns today's banner phrase. Failures are not cached, so a
// transient upstream outage does not pin the fallback for a whole day.
func (s *Service) Text(ctx context.Context) string {
	phrase, err := s.cache.Get(ctx, s.compute)
	if err != nil {
		s.logger.Warn("banner generation failed, using fallback", "err", err)
		return Fallback
	}
	return phrase
}

func (s *Service) compute(ctx context.Context) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short, %s sentence about the joy of travel, in %s. No emojis, no quotes, at most twelve words.",
		s.cfg.Tone, s.cfg.Language,
	)
	text, err := s.provider.Generate(ctx, prompt, bannerConfig)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}
