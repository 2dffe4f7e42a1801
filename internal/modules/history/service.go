// README: History service; pagination, scoped deletion, and tolerant appends.
package history

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("history entry not found")
	ErrForbidden = errors.New("history entry belongs to another user")
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Page is one window of a user's history, newest first.
type Page struct {
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
	Total      int     `json:"total"`
	Results    []Entry `json:"results"`
}

// Append assigns the entry an ID and timestamp and persists it. A failed
// write is logged and swallowed: the itinerary was already produced and
// the caller should still receive it even when persistence is down.
func (s *Service) Append(ctx context.Context, e *Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if err := s.store.Append(ctx, e); err != nil {
		s.logger.Error("history append failed", "id", e.ID, "err", err)
	}
}

// PageByUser returns the requested page of the user's entries sorted by
// timestamp descending. limit caps at 50 and page floors at 1.
func (s *Service) PageByUser(ctx context.Context, userHash string, page, limit int) (Page, error) {
	// A non-positive limit means the caller sent garbage; fall back to the
	// default page size rather than clamping to a 1-entry page.
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}

	all, err := s.store.All(ctx)
	if err != nil {
		return Page{}, err
	}

	var mine []Entry
	for _, e := range all {
		if e.UserHash == userHash {
			mine = append(mine, e)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Timestamp.After(mine[j].Timestamp)
	})

	total := len(mine)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	results := mine[start:end]
	if results == nil {
		results = []Entry{}
	}
	return Page{Page: page, TotalPages: totalPages, Total: total, Results: results}, nil
}

// Delete removes the entry when it exists and belongs to requesterHash.
func (s *Service) Delete(ctx context.Context, id, requesterHash string) error {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.UserHash != requesterHash {
		return ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

// All exposes the raw log for the trending aggregation.
func (s *Service) All(ctx context.Context) ([]Entry, error) {
	return s.store.All(ctx)
}
