package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/auth"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/event"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/identity"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/health"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/middleware"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) one(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.one(m.Called(ctx, id))
}

func (m *mockUserRepo) FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.User, error) {
	return m.one(m.Called(ctx, identifier))
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.one(m.Called(ctx, email))
}

func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return m.one(m.Called(ctx, phone))
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSearchRepo struct{ mock.Mock }

func (m *mockSearchRepo) Create(ctx context.Context, e *domain.SearchEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockSearchRepo) Trending(ctx context.Context, lang string, since time.Time, limit int) ([]domain.TrendingQuery, error) {
	args := m.Called(ctx, lang, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrendingQuery), args.Error(1)
}

type mockContactRepo struct{ mock.Mock }

func (m *mockContactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockContactRepo) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *mockContactRepo) List(ctx context.Context, f domain.ContactFilter) ([]domain.ContactMessage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *mockContactRepo) Update(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockContactRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListPublic(ctx context.Context, limit int, onlyPublished bool) ([]domain.Review, error) {
	args := m.Called(ctx, limit, onlyPublished)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListAll(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockServiceItemRepo struct{ mock.Mock }

func (m *mockServiceItemRepo) ListActive(ctx context.Context) ([]domain.ServiceItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ServiceItem), args.Error(1)
}

func (m *mockServiceItemRepo) Upsert(ctx context.Context, it *domain.ServiceItem) error {
	return m.Called(ctx, it).Error(0)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, assertion string) (*identity.Assertion, error) {
	args := m.Called(ctx, assertion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Assertion), args.Error(1)
}

// ============================================================================
// Test Harness
// ============================================================================

const (
	testAdminID = int64(1)
	testUserID  = int64(2)
)

type testEnv struct {
	t        *testing.T
	users    *mockUserRepo
	searches *mockSearchRepo
	contacts *mockContactRepo
	reviews  *mockReviewRepo
	items    *mockServiceItemRepo
	verifier *mockVerifier
	tokens   *auth.TokenManager
	limiter  middleware.Limiter
	router   http.Handler
}

type envOption func(*testEnv)

func withLimiter(l middleware.Limiter) envOption {
	return func(e *testEnv) { e.limiter = l }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenManager(auth.TokenConfig{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	e := &testEnv{
		t:        t,
		users:    new(mockUserRepo),
		searches: new(mockSearchRepo),
		contacts: new(mockContactRepo),
		reviews:  new(mockReviewRepo),
		items:    new(mockServiceItemRepo),
		verifier: new(mockVerifier),
		tokens:   tokens,
	}
	for _, o := range opts {
		o(e)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := event.NopPublisher{}
	authSvc := service.NewAuthService(e.users, tokens, e.verifier, events, logger)

	e.router = NewRouter(Services{
		Auth:    authSvc,
		Admin:   service.NewAdminService(e.users, authSvc, "bootstrap-secret", logger),
		Search:  service.NewSearchService(e.searches, logger),
		Contact: service.NewContactService(e.contacts, events, logger),
		Catalog: service.NewCatalogService(e.items),
		Review:  service.NewReviewService(e.reviews, events, logger),
	}, health.NewHandler(), RouterConfig{
		CORS:    middleware.DefaultCORSConfig(),
		Limiter: e.limiter,
	}, logger)
	return e
}

// asAdmin returns a bearer token for an admin whose account still exists.
func (e *testEnv) asAdmin() string {
	e.t.Helper()
	email := "admin@example.com"
	e.users.On("GetByID", mock.Anything, testAdminID).
		Return(&domain.User{ID: testAdminID, Email: &email, Role: domain.RoleAdmin}, nil)
	tok, err := e.tokens.Issue(testAdminID)
	require.NoError(e.t, err)
	return tok
}

// asUser returns a bearer token for a regular user.
func (e *testEnv) asUser() string {
	e.t.Helper()
	email := "user@example.com"
	e.users.On("GetByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Email: &email, Role: domain.RoleUser}, nil)
	tok, err := e.tokens.Issue(testUserID)
	require.NoError(e.t, err)
	return tok
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			reader = bytes.NewBufferString(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(e.t, err)
			reader = bytes.NewReader(b)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.RemoteAddr = "203.0.113.7:5000"

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error, rec.Body.String())
	return env.Error.Code
}

func strPtr(s string) *string { return &s }
