package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository"
)

const (
	TrendingWindowDays = 7
	TrendingLimit      = 8
)

// SearchService builds suggestion lists and records searches.
type SearchService struct {
	events repository.SearchEventRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewSearchService(events repository.SearchEventRepository, logger *slog.Logger) *SearchService {
	return &SearchService{events: events, logger: logger, now: time.Now}
}

// Suggest returns intent matches for raw plus the trending queries. An
// empty query lists every section instead.
func (s *SearchService) Suggest(ctx context.Context, raw, lang string) (*domain.SuggestResponse, error) {
	lang = langOrDefault(lang)
	norm := domain.Normalize(raw)

	var items []domain.Suggestion
	if norm == "" {
		items = domain.PageSuggestions(lang)
	} else {
		items = domain.IntentSuggestions(norm, lang)
	}

	trending, err := s.TrendingSuggestions(ctx, lang, TrendingWindowDays, TrendingLimit)
	if err != nil {
		return nil, err
	}

	return &domain.SuggestResponse{Q: raw, Lang: lang, Items: items, Trending: trending}, nil
}

// TrendingSuggestions ranks normalised queries seen in lang over the last
// windowDays days.
func (s *SearchService) TrendingSuggestions(ctx context.Context, lang string, windowDays, limit int) ([]domain.Suggestion, error) {
	since := s.now().UTC().Add(-time.Duration(windowDays) * 24 * time.Hour)

	rows, err := s.events.Trending(ctx, lang, since, limit)
	if err != nil {
		return nil, fmt.Errorf("load trending queries: %w", err)
	}

	out := make([]domain.Suggestion, 0, len(rows))
	for _, q := range rows {
		out = append(out, q.Suggestion())
	}
	return out, nil
}

// LogSearchInput describes a search to record.
type LogSearchInput struct {
	Query        string
	Lang         string
	SessionID    *string
	ChosenRoute  *string
	ChosenItemID *int64
}

// LogSearch stores the raw and normalised query.
func (s *SearchService) LogSearch(ctx context.Context, in LogSearchInput) (*domain.SearchLogged, error) {
	e := &domain.SearchEvent{
		Query:        domain.TruncateRunes(strings.TrimSpace(in.Query), domain.MaxQueryRunes),
		QueryNorm:    domain.Normalize(in.Query),
		Lang:         langOrDefault(in.Lang),
		SessionID:    in.SessionID,
		ChosenRoute:  in.ChosenRoute,
		ChosenItemID: in.ChosenItemID,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("log search: %w", err)
	}

	s.logger.DebugContext(ctx, "search logged",
		slog.Int64("search_event_id", e.ID),
		slog.String("lang", e.Lang),
	)
	return &domain.SearchLogged{OK: true, ID: e.ID, CreatedAt: e.CreatedAt}, nil
}

func langOrDefault(lang string) string {
	if lang == domain.LangRU {
		return domain.LangRU
	}
	return domain.LangUA
}
