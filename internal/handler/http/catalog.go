package http

import (
	"log/slog"
	"net/http"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httputil"
)

// CatalogHandler serves the service catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger}
}

// List handles GET /api/services
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.ListActive(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, c)
}
