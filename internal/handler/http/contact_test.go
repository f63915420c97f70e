package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

func TestContactInfo_Cacheable(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/contact/info", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	var info domain.ContactInfo
	decodeData(t, rec, &info)
	assert.Equal(t, domain.DefaultContactInfo(), info)
}

func TestContactSend(t *testing.T) {
	env := newTestEnv(t)
	received := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	env.contacts.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.ContactMessage) bool {
		return m.PreferredContact == domain.DefaultPreferredContact && m.Status == domain.ContactStatusNew
	})).Run(func(args mock.Arguments) {
		m := args.Get(1).(*domain.ContactMessage)
		m.ID = 7
		m.CreatedAt = received
	}).Return(nil)

	rec := env.do(http.MethodPost, "/api/contact/send", map[string]any{
		"name":    "Olena",
		"phone":   "+380501112233",
		"message": "Хочу записатися на масаж",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var receipt domain.ContactReceipt
	decodeData(t, rec, &receipt)
	assert.True(t, receipt.OK)
	assert.Equal(t, int64(7), receipt.ID)
	assert.True(t, receipt.ReceivedAt.Equal(received))
	assert.Equal(t, domain.ContactReceivedNote, receipt.Note)
}

func TestContactSend_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/contact/send", map[string]any{
		"name":    " ",
		"phone":   "+380501112233",
		"message": "",
		"email":   "nope",
	}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Contains(t, body.Error.Fields, "name")
	assert.Contains(t, body.Error.Fields, "message")
	assert.Contains(t, body.Error.Fields, "email")
	env.contacts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContactList_Filters(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFilter domain.ContactFilter
	}{
		{name: "defaults", query: "", wantFilter: domain.ContactFilter{Limit: 50}},
		{
			name:       "status and unread",
			query:      "?status=new&unread_only=true&limit=10",
			wantFilter: domain.ContactFilter{Status: "new", UnreadOnly: true, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			token := env.asAdmin()
			env.contacts.On("List", mock.Anything, tt.wantFilter).Return([]domain.ContactMessage{{ID: 1}}, nil)

			rec := env.do(http.MethodGet, "/api/contact/all"+tt.query, nil, token)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			env.contacts.AssertExpectations(t)
		})
	}
}

func TestContactList_BadQuery(t *testing.T) {
	queries := []string{"?limit=0", "?limit=201", "?status=archived", "?unread_only=maybe"}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(http.MethodGet, "/api/contact/all"+q, nil, env.asAdmin())
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestContactAdminRoutes_Forbidden(t *testing.T) {
	env := newTestEnv(t)
	token := env.asUser()

	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/contact/all", nil, token).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/contact/3", nil, token).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodPatch, "/api/contact/3", map[string]any{"is_read": true}, token).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodDelete, "/api/contact/3", nil, token).Code)
}

func TestContactUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.asAdmin()
	env.contacts.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.ContactMessage{ID: 3, Status: domain.ContactStatusNew}, nil)
	env.contacts.On("Update", mock.Anything, mock.AnythingOfType("*domain.ContactMessage")).Return(nil)

	rec := env.do(http.MethodPatch, "/api/contact/3", map[string]any{"is_read": true, "status": "closed"}, token)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var m domain.ContactMessage
	decodeData(t, rec, &m)
	assert.True(t, m.IsRead)
	assert.Equal(t, domain.ContactStatusClosed, m.Status)
}

func TestContactUpdate_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPatch, "/api/contact/3", map[string]any{"status": "archived"}, env.asAdmin())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.contacts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestContactGetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.asAdmin()
	env.contacts.On("GetByID", mock.Anything, int64(4)).Return(nil, apperrors.NotFound("contact message", "4"))
	env.contacts.On("Delete", mock.Anything, int64(5)).Return(nil)

	rec := env.do(http.MethodGet, "/api/contact/4", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))

	rec = env.do(http.MethodDelete, "/api/contact/5", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var del domain.Deleted
	decodeData(t, rec, &del)
	assert.Equal(t, int64(5), del.DeletedID)
}
