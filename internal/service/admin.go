package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

// AdminService bootstraps administrators and manages accounts.
type AdminService struct {
	users     repository.UserRepository
	accounts  *AuthService
	bootstrap string
	logger    *slog.Logger
}

// NewAdminService builds the service. An empty bootstrapSecret disables
// Bootstrap.
func NewAdminService(users repository.UserRepository, accounts *AuthService, bootstrapSecret string, logger *slog.Logger) *AdminService {
	return &AdminService{
		users:     users,
		accounts:  accounts,
		bootstrap: strings.TrimSpace(bootstrapSecret),
		logger:    logger,
	}
}

// BootstrapInput creates an admin account when Secret matches.
type BootstrapInput struct {
	Secret   string
	Email    *string
	Phone    *string
	Password string
}

// Bootstrap creates an admin account guarded by the configured secret.
func (s *AdminService) Bootstrap(ctx context.Context, in BootstrapInput) (*domain.UserView, error) {
	if s.bootstrap == "" {
		return nil, apperrors.New("BOOTSTRAP_DISABLED", "ADMIN_BOOTSTRAP_SECRET is not set",
			http.StatusInternalServerError, apperrors.ErrInternal)
	}
	given := strings.TrimSpace(in.Secret)
	if subtle.ConstantTimeCompare([]byte(given), []byte(s.bootstrap)) != 1 {
		s.logger.WarnContext(ctx, "admin bootstrap rejected")
		return nil, apperrors.Forbidden("invalid bootstrap secret")
	}

	u, err := s.accounts.createAccount(ctx, RegisterInput{Email: in.Email, Phone: in.Phone, Password: in.Password}, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "admin bootstrapped", slog.Int64("user_id", u.ID))
	v := u.View()
	return &v, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserView, 0, len(users))
	for i := range users {
		out = append(out, users[i].View())
	}
	return out, nil
}

func (s *AdminService) GetUser(ctx context.Context, id int64) (*domain.UserView, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	v := u.View()
	return &v, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) (domain.Deleted, error) {
	if err := s.users.Delete(ctx, id); err != nil {
		return domain.Deleted{}, err
	}
	s.logger.InfoContext(ctx, "user deleted", slog.Int64("user_id", id))
	return domain.Deleted{OK: true, DeletedID: id}, nil
}
