package http

import (
	"log/slog"
	"net/http"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httputil"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/middleware"
)

// AuthHandler serves the sign-in endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Password string  `json:"password" validate:"required,min=6,max=256"`
}

// LoginRequest is the body of POST /api/auth/login. Login is an email or a
// phone number.
type LoginRequest struct {
	Login    string `json:"login" validate:"required,notblank,max=255"`
	Password string `json:"password" validate:"required"`
}

// GoogleVerifyRequest is the body of POST /api/auth/google/verify.
type GoogleVerifyRequest struct {
	Credential string `json:"credential" validate:"required,min=10"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// GoogleVerify handles POST /api/auth/google/verify
func (h *AuthHandler) GoogleVerify(w http.ResponseWriter, r *http.Request) {
	var req GoogleVerifyRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.FederatedLogin(r.Context(), req.Credential)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if u, ok := claims.Principal.(*domain.User); ok {
			httputil.WriteData(w, http.StatusOK, u.View())
			return
		}
	}

	u, err := h.service.CurrentUser(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, u.View())
}
