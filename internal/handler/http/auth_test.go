package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/auth"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/identity"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

func TestRegister_Created(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindByEmail", mock.Anything, "anna@example.com").Return(nil, apperrors.ErrNotFound)
	env.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 42 }).
		Return(nil)

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "anna@example.com",
		"password": "secret1",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tok domain.TokenResponse
	decodeData(t, rec, &tok)
	assert.Equal(t, "bearer", tok.TokenType)

	id, err := env.tokens.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestRegister_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "not-an-email",
		"password": "123",
	}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env2 := decodeEnvelope(t, rec)
	require.NotNil(t, env2.Error)
	assert.Equal(t, "VALIDATION_ERROR", env2.Error.Code)
	assert.Contains(t, env2.Error.Fields, "email")
	assert.Contains(t, env2.Error.Fields, "password")
}

func TestRegister_NoIdentifier(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{"password": "secret1"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	email := "anna@example.com"
	env.users.On("FindByEmail", mock.Anything, email).Return(&domain.User{ID: 3, Email: &email}, nil)

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"password": "secret1",
	}, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorCode(t, rec))
}

func TestRegister_RequiresJSONContentType(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", errorCode(t, rec))
	env.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	phone := "+380501112233"

	tests := []struct {
		name       string
		login      string
		password   string
		setup      func(env *testEnv)
		wantStatus int
	}{
		{
			name:     "by phone",
			login:    phone,
			password: "secret1",
			setup: func(env *testEnv) {
				env.users.On("FindByEmailOrPhone", mock.Anything, phone).
					Return(&domain.User{ID: 5, Phone: &phone, PasswordHash: hash, Role: domain.RoleUser}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "wrong password",
			login:    phone,
			password: "wrong-one",
			setup: func(env *testEnv) {
				env.users.On("FindByEmailOrPhone", mock.Anything, phone).
					Return(&domain.User{ID: 5, Phone: &phone, PasswordHash: hash, Role: domain.RoleUser}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:     "unknown identifier",
			login:    "ghost@example.com",
			password: "secret1",
			setup: func(env *testEnv) {
				env.users.On("FindByEmailOrPhone", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "blank login",
			login:      "   ",
			password:   "secret1",
			setup:      func(*testEnv) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)

			rec := env.do(http.MethodPost, "/api/auth/login", map[string]any{
				"login":    tt.login,
				"password": tt.password,
			}, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestGoogleVerify(t *testing.T) {
	t.Run("existing account", func(t *testing.T) {
		env := newTestEnv(t)
		email := "g@example.com"
		env.verifier.On("Verify", mock.Anything, "credential-xyz").
			Return(&identity.Assertion{Email: email, Subject: "123"}, nil)
		env.users.On("FindByEmail", mock.Anything, email).
			Return(&domain.User{ID: 9, Email: &email, Role: domain.RoleUser}, nil)

		rec := env.do(http.MethodPost, "/api/auth/google/verify", map[string]string{"credential": "credential-xyz"}, "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var tok domain.TokenResponse
		decodeData(t, rec, &tok)
		id, err := env.tokens.Verify(tok.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(9), id)
	})

	t.Run("short credential", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/api/auth/google/verify", map[string]string{"credential": "short"}, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("provider rejects", func(t *testing.T) {
		env := newTestEnv(t)
		env.verifier.On("Verify", mock.Anything, "credential-xyz").
			Return(nil, apperrors.New(identity.CodeAudienceMismatch, "audience mismatch", http.StatusUnauthorized, apperrors.ErrUnauthorized))

		rec := env.do(http.MethodPost, "/api/auth/google/verify", map[string]string{"credential": "credential-xyz"}, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, identity.CodeAudienceMismatch, errorCode(t, rec))
	})
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.asUser()

	rec := env.do(http.MethodGet, "/api/auth/me", nil, token)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v domain.UserView
	decodeData(t, rec, &v)
	assert.Equal(t, testUserID, v.ID)
	assert.Equal(t, domain.RoleUser, v.Role)
	assert.NotContains(t, rec.Body.String(), "password")
	env.users.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestMe_Unauthenticated(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "garbage token", header: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(http.MethodGet, "/api/auth/me", nil, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMe_DeletedUser(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetByID", mock.Anything, int64(77)).Return(nil, apperrors.ErrNotFound)
	token, err := env.tokens.Issue(77)
	require.NoError(t, err)

	rec := env.do(http.MethodGet, "/api/auth/me", nil, token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
