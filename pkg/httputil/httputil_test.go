package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app error", apperrors.NotFound("review", "7"), http.StatusNotFound, "NOT_FOUND"},
		{"custom app error", apperrors.New("AUDIENCE_MISMATCH", "audience mismatch", http.StatusUnauthorized, apperrors.ErrUnauthorized), http.StatusUnauthorized, "AUDIENCE_MISMATCH"},
		{"wrapped app error", fmt.Errorf("login: %w", apperrors.Unauthorized("invalid credentials")), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"sentinel not found", fmt.Errorf("get: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"sentinel exists", apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"sentinel invalid", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown", fmt.Errorf("pool closed"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/reviews/7", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestWriteError_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, apperrors.Internal(fmt.Errorf("password=hunter2")), testLogger())

	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestWriteError_RequestID(t *testing.T) {
	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, apperrors.ErrNotFound, testLogger())
	assert.Equal(t, "corr-123", decode(t, rec).Error.RequestID)

	rec = httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.ErrNotFound, testLogger())
	assert.NotContains(t, rec.Body.String(), "request_id")
}

type loginBody struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":"a@b.ua","password":"secret"}`))
		var body loginBody
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &body))
		assert.Equal(t, "a@b.ua", body.Login)
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":`))
		var body loginBody
		err := DecodeJSON(httptest.NewRecorder(), req, &body)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("validation renders fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":"a@b.ua"}`))
		rec := httptest.NewRecorder()
		var body loginBody
		err := DecodeJSON(rec, req, &body)
		require.Error(t, err)

		WriteError(rec, req, err, testLogger())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Contains(t, resp.Error.Fields, "password")
	})

	t.Run("too large", func(t *testing.T) {
		big := `{"login":"` + strings.Repeat("x", MaxBodyBytes) + `","password":"p"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
		var body loginBody
		err := DecodeJSON(httptest.NewRecorder(), req, &body)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestParseID(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := ParseID(rec, "42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		rec := httptest.NewRecorder()
		_, ok := ParseID(rec, bad)
		assert.False(t, ok, bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_PARAMETER", decode(t, rec).Error.Code)
	}
}
