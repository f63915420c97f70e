package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/auth"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/identity"
)

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepository) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockUserRepository) FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.User, error) {
	return m.user(m.Called(ctx, identifier))
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *mockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return m.user(m.Called(ctx, phone))
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Search Event Repository ---

type mockSearchRepository struct {
	mock.Mock
}

func (m *mockSearchRepository) Create(ctx context.Context, e *domain.SearchEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockSearchRepository) Trending(ctx context.Context, lang string, since time.Time, limit int) ([]domain.TrendingQuery, error) {
	args := m.Called(ctx, lang, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrendingQuery), args.Error(1)
}

// --- Mock Contact Repository ---

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockContactRepository) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *mockContactRepository) List(ctx context.Context, f domain.ContactFilter) ([]domain.ContactMessage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *mockContactRepository) Update(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockContactRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListPublic(ctx context.Context, limit int, onlyPublished bool) ([]domain.Review, error) {
	args := m.Called(ctx, limit, onlyPublished)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Service Item Repository ---

type mockServiceItemRepository struct {
	mock.Mock
}

func (m *mockServiceItemRepository) ListActive(ctx context.Context) ([]domain.ServiceItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceItem), args.Error(1)
}

func (m *mockServiceItemRepository) Upsert(ctx context.Context, it *domain.ServiceItem) error {
	return m.Called(ctx, it).Error(0)
}

// --- Mock Identity Verifier ---

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, assertion string) (*identity.Assertion, error) {
	args := m.Called(ctx, assertion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Assertion), args.Error(1)
}

// --- Mock Event Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) UserRegistered(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockPublisher) ContactReceived(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockPublisher) ReviewSubmitted(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(auth.TokenConfig{Secret: "test-secret", Algorithm: "HS256", TTL: time.Hour})
	require.NoError(t, err)
	return m
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	require.NoError(t, err)
	return h
}
