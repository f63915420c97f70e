package http

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httputil"
)

// SearchHandler serves suggestions and search logging.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{service: svc, logger: logger}
}

// SearchLogRequest is the body of POST /api/search/log.
type SearchLogRequest struct {
	Query        string  `json:"query" validate:"max=1000"`
	Lang         string  `json:"lang" validate:"omitempty,oneof=ua ru"`
	SessionID    *string `json:"session_id" validate:"omitempty,max=64"`
	ChosenRoute  *string `json:"chosen_route" validate:"omitempty,max=200"`
	ChosenItemID *int64  `json:"chosen_item_id"`
}

// Suggest handles GET /api/search/suggest?q=&lang=
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if utf8.RuneCountInString(q) > domain.MaxQueryRunes {
		httputil.WriteError(w, r, apperrors.InvalidInput("q must be at most 200 characters"), h.logger)
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = domain.LangUA
	}
	if lang != domain.LangUA && lang != domain.LangRU {
		httputil.WriteError(w, r, apperrors.InvalidInput("lang must be one of: ua, ru"), h.logger)
		return
	}

	resp, err := h.service.Suggest(r.Context(), q, lang)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// Log handles POST /api/search/log
func (h *SearchHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req SearchLogRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	out, err := h.service.LogSearch(r.Context(), service.LogSearchInput{
		Query:        req.Query,
		Lang:         req.Lang,
		SessionID:    req.SessionID,
		ChosenRoute:  req.ChosenRoute,
		ChosenItemID: req.ChosenItemID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, out)
}
