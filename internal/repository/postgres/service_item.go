package postgres

import (
	"context"
	"fmt"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/database"
)

// ServiceItemRepository implements repository.ServiceItemRepository.
type ServiceItemRepository struct {
	db database.DBTX
}

func NewServiceItemRepository(db database.DBTX) *ServiceItemRepository {
	return &ServiceItemRepository{db: db}
}

func (r *ServiceItemRepository) ListActive(ctx context.Context) (_ []domain.ServiceItem, err error) {
	query := `
		SELECT id, type, title, description, duration_min, price_uah, is_active, sort_order, created_at
		FROM service_items
		WHERE is_active = TRUE
		ORDER BY type, sort_order, id`

	ctx, end := database.TraceQuery(ctx, "service_items.ListActive", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list service items: %w", err)
	}
	defer rows.Close()

	out := []domain.ServiceItem{}
	for rows.Next() {
		var it domain.ServiceItem
		if err = rows.Scan(&it.ID, &it.Type, &it.Title, &it.Description, &it.DurationMin,
			&it.PriceUAH, &it.IsActive, &it.SortOrder, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service item: %w", err)
		}
		out = append(out, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service items: %w", err)
	}
	return out, nil
}

func (r *ServiceItemRepository) Upsert(ctx context.Context, it *domain.ServiceItem) (err error) {
	query := `
		INSERT INTO service_items (type, title, description, duration_min, price_uah, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (type, title) DO UPDATE SET
			description = EXCLUDED.description,
			duration_min = EXCLUDED.duration_min,
			price_uah = EXCLUDED.price_uah,
			is_active = EXCLUDED.is_active,
			sort_order = EXCLUDED.sort_order
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "service_items.Upsert", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		it.Type, it.Title, it.Description, it.DurationMin, it.PriceUAH, it.IsActive, it.SortOrder,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert service item: %w", err)
	}
	return nil
}
