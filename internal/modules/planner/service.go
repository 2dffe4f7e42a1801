// README: Itinerary service; validates input, calls the model, repairs output, appends history.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"voyago/internal/ai"
	"voyago/internal/modules/history"
	"voyago/internal/sanitize"
)

// planConfig keeps the single-shot flow concise and cheap: low temperature
// for stable structure, bounded output length.
var planConfig = ai.GenerateConfig{Temperature: 0.3, MaxOutputTokens: 2048}

var allowedFields = map[string]bool{
	"destination": true,
	"days":        true,
	"budget":      true,
	"interests":   true,
	"group":       true,
}

// PhotoSource supplies destination photos for itineraries whose model
// output carried none. Optional; the default image URL covers its absence.
type PhotoSource interface {
	PhotosFor(ctx context.Context, destination string) ([]string, error)
}

type Service struct {
	provider ai.Provider
	history  *history.Service
	photos   PhotoSource
	logger   *slog.Logger
}

func NewService(provider ai.Provider, hist *history.Service, photos PhotoSource, logger *slog.Logger) *Service {
	return &Service{provider: provider, history: hist, photos: photos, logger: logger}
}

// Plan validates the raw field map, asks the model for an itinerary, and
// appends the exchange to the caller's history. Validation happens before
// the model call so bad input never burns upstream quota. Parse failures
// surface as *ai.ParseError with the raw model text attached.
func (s *Service) Plan(ctx context.Context, userHash string, fields map[string]any) (*Itinerary, error) {
	for k := range fields {
		if !allowedFields[k] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFields, k)
		}
	}

	req := Request{
		Destination: cleanField(fields, "destination"),
		Days:        cleanField(fields, "days"),
		Budget:      cleanField(fields, "budget"),
		Interests:   cleanField(fields, "interests"),
		Group:       cleanField(fields, "group"),
	}
	if req.Destination == "" {
		return nil, ErrMissingDestination
	}

	text, err := s.provider.Generate(ctx, buildPrompt(req), planConfig)
	if err != nil {
		return nil, err
	}

	var it Itinerary
	if err := ai.ExtractJSON(text, &it); err != nil {
		return nil, err
	}
	s.ensureImages(ctx, &it, req.Destination)

	response, err := json.Marshal(&it)
	if err != nil {
		return nil, err
	}
	s.history.Append(ctx, &history.Entry{
		UserHash: userHash,
		Request: history.RequestRecord{
			Destination: req.Destination,
			Days:        req.Days,
			Budget:      req.Budget,
			Interests:   req.Interests,
			Group:       req.Group,
		},
		Response: response,
	})
	return &it, nil
}

// ensureImages guarantees a non-empty image list: Places photos when a
// source is configured, otherwise a single image-search URL for the
// destination.
func (s *Service) ensureImages(ctx context.Context, it *Itinerary, destination string) {
	if len(it.Images) > 0 {
		return
	}
	if s.photos != nil {
		urls, err := s.photos.PhotosFor(ctx, destination)
		if err != nil {
			s.logger.Warn("places photo lookup failed", "destination", destination, "err", err)
		} else if len(urls) > 0 {
			it.Images = urls
			return
		}
	}
	it.Images = []string{defaultImageURL(destination)}
}

func defaultImageURL(destination string) string {
	return "https://www.google.com/search?tbm=isch&q=" + url.QueryEscape(destination+" travel")
}

func cleanField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	str, ok := v.(string)
	if !ok {
		return ""
	}
	return sanitize.Clean(str)
}
