package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/database"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

const reviewColumns = `id, author_name, text, rating, sentiment, status, is_featured, created_at`

// ReviewRepository implements repository.ReviewRepository.
type ReviewRepository struct {
	db database.DBTX
}

func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) (err error) {
	query := `
		INSERT INTO reviews (author_name, text, rating, sentiment, status, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "reviews.Create", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		rv.AuthorName, rv.Text, rv.Rating, rv.Sentiment, rv.Status, rv.IsFeatured,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (_ *domain.Review, err error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "reviews.GetByID", query)
	defer func() { end(err) }()

	var rv domain.Review
	if err = scanReview(r.db.QueryRow(ctx, query, id), &rv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return &rv, nil
}

func (r *ReviewRepository) ListPublic(ctx context.Context, limit int, onlyPublished bool) ([]domain.Review, error) {
	if onlyPublished {
		return r.list(ctx, "reviews.ListPublic",
			`SELECT `+reviewColumns+` FROM reviews WHERE status = $1
			 ORDER BY is_featured DESC, created_at DESC LIMIT $2`,
			domain.ReviewStatusPublished, limit)
	}
	return r.list(ctx, "reviews.ListPublic",
		`SELECT `+reviewColumns+` FROM reviews
		 ORDER BY is_featured DESC, created_at DESC LIMIT $1`,
		limit)
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	return r.list(ctx, "reviews.ListAll", `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`)
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) (err error) {
	query := `
		UPDATE reviews
		SET rating = $1, sentiment = $2, status = $3, is_featured = $4
		WHERE id = $5`

	ctx, end := database.TraceQuery(ctx, "reviews.Update", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, rv.Rating, rv.Sentiment, rv.Status, rv.IsFeatured, rv.ID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", strconv.FormatInt(rv.ID, 10))
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) (err error) {
	query := `DELETE FROM reviews WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "reviews.Delete", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", strconv.FormatInt(id, 10))
	}
	return nil
}

func (r *ReviewRepository) list(ctx context.Context, op, query string, args ...any) (_ []domain.Review, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err = scanReview(rows, &rv); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

func scanReview(row pgx.Row, rv *domain.Review) error {
	return row.Scan(&rv.ID, &rv.AuthorName, &rv.Text, &rv.Rating, &rv.Sentiment,
		&rv.Status, &rv.IsFeatured, &rv.CreatedAt)
}
