// README: Trending destinations derived from the history log, rebuilt once per day.
package trending

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"voyago/internal/cache"
	"voyago/internal/modules/history"
)

const (
	cacheDepth = 20
	exposed    = 10
)

// Destination is one ranked entry: Tag is the normalized token used for
// counting, Name its display form.
type Destination struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

type Service struct {
	history *history.Service
	cache   cache.Daily[[]Destination]
	logger  *slog.Logger
}

func NewService(hist *history.Service, daily cache.Daily[[]Destination], logger *slog.Logger) *Service {
	return &Service{history: hist, cache: daily, logger: logger}
}

// Top returns up to 10 destinations ranked by frequency across all history
// entries, memoized per day. A store failure degrades to an empty list.
func (s *Service) Top(ctx context.Context) []Destination {
	ranked, err := s.cache.Get(ctx, s.compute)
	if err != nil {
		s.logger.Warn("trending recompute failed", "err", err)
		return []Destination{}
	}
	if len(ranked) > exposed {
		ranked = ranked[:exposed]
	}
	return ranked
}

// compute retains the top 20 so the cached value has headroom beyond what
// callers see. Chat entries have no destination field; their response
// summary stands in as a destination proxy, a known accuracy tradeoff
// since summaries are prose rather than canonical place names.
func (s *Service) compute(ctx context.Context) ([]Destination, error) {
	entries, err := s.history.All(ctx)
	if err != nil {
		s.logger.Warn("trending scan failed, serving empty", "err", err)
		return []Destination{}, nil
	}

	counts := make(map[string]int)
	var firstSeen []string
	for _, e := range entries {
		token := e.Request.Destination
		if token == "" && e.Request.Mode == history.ModeChat {
			token = gjson.GetBytes(e.Response, "summary").String()
		}
		token = normalize(token)
		if token == "" {
			continue
		}
		if counts[token] == 0 {
			firstSeen = append(firstSeen, token)
		}
		counts[token]++
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(firstSeen, func(i, j int) bool {
		return counts[firstSeen[i]] > counts[firstSeen[j]]
	})
	if len(firstSeen) > cacheDepth {
		firstSeen = firstSeen[:cacheDepth]
	}

	ranked := make([]Destination, 0, len(firstSeen))
	for _, tag := range firstSeen {
		ranked = append(ranked, Destination{Name: capitalize(tag), Tag: tag})
	}
	return ranked, nil
}

// normalize collapses near-duplicates: "Paris, France" and "paris" both
// count for "paris".
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
