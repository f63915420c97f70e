package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httputil"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/pagination"
)

var reviewLimit = pagination.Bounds{Default: 6, Max: 100}

// ReviewHandler serves public reviews and moderation.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// CreateReviewRequest is the body of POST /api/reviews.
type CreateReviewRequest struct {
	AuthorName string `json:"author_name" validate:"required,min=2,max=80"`
	Text       string `json:"text" validate:"required,min=10,max=3000"`
	Rating     *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// List handles GET /api/reviews?limit=&only_published=
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := pagination.Limit(q, reviewLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	onlyPublished, err := pagination.Bool(q, "only_published", true)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	reviews, err := h.service.ListPublic(r.Context(), limit, onlyPublished)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, reviews)
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	rv, err := h.service.Create(r.Context(), service.CreateReviewInput{
		AuthorName: req.AuthorName,
		Text:       req.Text,
		Rating:     req.Rating,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, rv)
}

// ListAll handles GET /api/reviews/all
func (h *ReviewHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, reviews)
}

// Get handles GET /api/reviews/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	rv, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, rv)
}

// Patch handles PATCH /api/reviews/{id}
func (h *ReviewHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var patch domain.ReviewPatch
	if err := httputil.DecodeJSON(w, r, &patch); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	rv, err := h.service.Patch(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, rv)
}

// Delete handles DELETE /api/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
