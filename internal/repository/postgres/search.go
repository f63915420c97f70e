package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/database"
)

// SearchEventRepository implements repository.SearchEventRepository.
type SearchEventRepository struct {
	db database.DBTX
}

func NewSearchEventRepository(db database.DBTX) *SearchEventRepository {
	return &SearchEventRepository{db: db}
}

func (r *SearchEventRepository) Create(ctx context.Context, e *domain.SearchEvent) (err error) {
	query := `
		INSERT INTO search_events (query, query_norm, lang, session_id, chosen_route, chosen_item_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "search_events.Create", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		e.Query, e.QueryNorm, e.Lang, e.SessionID, e.ChosenRoute, e.ChosenItemID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert search event: %w", err)
	}
	return nil
}

// Trending groups events by normalised query. Empty queries are filtered
// before the limit applies.
func (r *SearchEventRepository) Trending(ctx context.Context, lang string, since time.Time, limit int) (_ []domain.TrendingQuery, err error) {
	query := `
		SELECT query_norm, COUNT(id) AS cnt
		FROM search_events
		WHERE created_at >= $1 AND lang = $2 AND query_norm <> ''
		GROUP BY query_norm
		ORDER BY cnt DESC
		LIMIT $3`

	ctx, end := database.TraceQuery(ctx, "search_events.Trending", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, since, lang, limit)
	if err != nil {
		return nil, fmt.Errorf("query trending: %w", err)
	}
	defer rows.Close()

	out := []domain.TrendingQuery{}
	for rows.Next() {
		var q domain.TrendingQuery
		if err = rows.Scan(&q.QueryNorm, &q.Count); err != nil {
			return nil, fmt.Errorf("scan trending: %w", err)
		}
		out = append(out, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trending: %w", err)
	}
	return out, nil
}
