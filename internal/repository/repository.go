package repository

import (
	"context"
	"time"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts u and fills its ID and CreatedAt.
	Create(ctx context.Context, u *domain.User) error

	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// FindByEmailOrPhone matches identifier against both email and phone.
	FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)

	// List returns every user, newest id first.
	List(ctx context.Context) ([]domain.User, error)

	Delete(ctx context.Context, id int64) error
}

// SearchEventRepository stores search events and aggregates them.
type SearchEventRepository interface {
	Create(ctx context.Context, e *domain.SearchEvent) error

	// Trending counts non-empty normalised queries for lang created after since.
	Trending(ctx context.Context, lang string, since time.Time, limit int) ([]domain.TrendingQuery, error)
}

// ContactRepository persists contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error)
	List(ctx context.Context, f domain.ContactFilter) ([]domain.ContactMessage, error)
	Update(ctx context.Context, m *domain.ContactMessage) error
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)

	// ListPublic orders featured reviews first, then newest.
	ListPublic(ctx context.Context, limit int, onlyPublished bool) ([]domain.Review, error)

	ListAll(ctx context.Context) ([]domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id int64) error
}

// ServiceItemRepository reads and seeds the service catalog.
type ServiceItemRepository interface {
	ListActive(ctx context.Context) ([]domain.ServiceItem, error)

	// Upsert inserts item or updates the row with the same type and title.
	Upsert(ctx context.Context, item *domain.ServiceItem) error
}
