package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httputil"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/pagination"
)

var contactLimit = pagination.Bounds{Default: 50, Max: 200}

// ContactHandler serves the contact form and the admin inbox.
type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: svc, logger: logger}
}

// SendRequest is the body of POST /api/contact/send.
type SendRequest struct {
	Name             string  `json:"name" validate:"required,notblank,max=100"`
	Phone            string  `json:"phone" validate:"required,notblank,max=50"`
	Email            *string `json:"email" validate:"omitempty,email,max=255"`
	Topic            *string `json:"topic" validate:"omitempty,max=50"`
	Message          string  `json:"message" validate:"required,notblank,max=5000"`
	PreferredContact string  `json:"preferred_contact" validate:"omitempty,max=20"`
}

// Info handles GET /api/contact/info
func (h *ContactHandler) Info(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Info())
}

// Send handles POST /api/contact/send
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	out, err := h.service.Send(r.Context(), service.SendInput{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		Topic:            req.Topic,
		Message:          req.Message,
		PreferredContact: req.PreferredContact,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, out)
}

// List handles GET /api/contact/all?status=&unread_only=&limit=
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := pagination.Limit(q, contactLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	unread, err := pagination.Bool(q, "unread_only", false)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	status := q.Get("status")
	if status != "" && !domain.IsValidContactStatus(status) {
		httputil.WriteError(w, r, apperrors.InvalidInput("status must be one of: new, closed, spam"), h.logger)
		return
	}

	msgs, err := h.service.List(r.Context(), domain.ContactFilter{Status: status, UnreadOnly: unread, Limit: limit})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, msgs)
}

// Get handles GET /api/contact/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, m)
}

// Update handles PATCH /api/contact/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var patch domain.ContactPatch
	if err := httputil.DecodeJSON(w, r, &patch); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	m, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, m)
}

// Delete handles DELETE /api/contact/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	out, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, out)
}
