package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/auth"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/event"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/identity"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/logger"
)

const (
	minPasswordLength     = 6
	provisionedSecretSize = 16
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgInvalidToken       = "could not validate credentials"
)

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(subjectID int64) (string, error)
	Verify(token string) (int64, error)
}

// AuthService implements registration, password and federated login, and
// token resolution.
type AuthService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	verifier identity.Verifier
	events   event.Publisher
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	users repository.UserRepository,
	tokens TokenIssuer,
	verifier identity.Verifier,
	events event.Publisher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		events:   events,
		logger:   logger,
	}
}

// RegisterInput holds the parameters for creating an account. At least one
// of Email and Phone must be non-empty.
type RegisterInput struct {
	Email    *string
	Phone    *string
	Password string
}

// Register creates a user account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.TokenResponse, error) {
	u, err := s.createAccount(ctx, in, domain.RoleUser)
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return s.issue(u)
}

// createAccount applies the registration rules and stores the account with
// the given role.
func (s *AuthService) createAccount(ctx context.Context, in RegisterInput, role string) (*domain.User, error) {
	email := trimmedOrNil(in.Email)
	phone := trimmedOrNil(in.Phone)
	if email == nil && phone == nil {
		return nil, apperrors.InvalidInput("provide email or phone")
	}
	if !domain.IsValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if email != nil {
		if err := s.ensureFree(ctx, s.users.FindByEmail, "email", *email); err != nil {
			return nil, err
		}
	}
	if phone != nil {
		if err := s.ensureFree(ctx, s.users.FindByPhone, "phone", *phone); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Email: email, Phone: phone, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishRegistered(ctx, u)
	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", u.ID),
		slog.String("role", u.Role),
	)
	return u, nil
}

func (s *AuthService) ensureFree(ctx context.Context, find func(context.Context, string) (*domain.User, error), field, value string) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return apperrors.AlreadyExists("user", field, value)
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check %s: %w", field, err)
	}
}

// Login authenticates by email or phone and password. Unknown identifiers
// and wrong passwords produce the same error and comparable latency.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.TokenResponse, error) {
	identifier = strings.TrimSpace(identifier)

	u, err := s.users.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return domain.TokenResponse{}, fmt.Errorf("find user: %w", err)
		}
		_, _ = auth.VerifyPassword(password, s.dummy())
		return domain.TokenResponse{}, apperrors.Unauthorized(msgInvalidCredentials)
	}

	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored password hash unreadable",
			slog.Int64("user_id", u.ID),
			slog.String("error", err.Error()),
		)
		return domain.TokenResponse{}, apperrors.Unauthorized(msgInvalidCredentials)
	}
	if !ok {
		return domain.TokenResponse{}, apperrors.Unauthorized(msgInvalidCredentials)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", u.ID))
	return s.issue(u)
}

// FederatedLogin exchanges a verified identity-provider assertion for a
// token, provisioning an account on first sign-in.
func (s *AuthService) FederatedLogin(ctx context.Context, assertion string) (domain.TokenResponse, error) {
	a, err := s.verifier.Verify(ctx, assertion)
	if err != nil {
		return domain.TokenResponse{}, err
	}

	u, err := s.users.FindByEmail(ctx, a.Email)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		u, err = s.provision(ctx, a.Email)
		if err != nil {
			return domain.TokenResponse{}, err
		}
	default:
		return domain.TokenResponse{}, fmt.Errorf("find user: %w", err)
	}

	s.logger.InfoContext(ctx, "federated login",
		slog.Int64("user_id", u.ID),
		logger.Email("email", a.Email),
	)
	return s.issue(u)
}

func (s *AuthService) provision(ctx context.Context, email string) (*domain.User, error) {
	secret, err := auth.RandomPassword(provisionedSecretSize)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Email: &email, PasswordHash: hash, Role: domain.RoleUser}
	if err := s.users.Create(ctx, u); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("provision user: %w", err)
		}
		// Lost a race with a concurrent first sign-in.
		existing, ferr := s.users.FindByEmail(ctx, email)
		if ferr != nil {
			return nil, fmt.Errorf("reload provisioned user: %w", ferr)
		}
		return existing, nil
	}

	s.publishRegistered(ctx, u)
	s.logger.InfoContext(ctx, "user provisioned from identity provider", slog.Int64("user_id", u.ID))
	return u, nil
}

// ResolveCurrentUser returns the live user a token was issued for.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	return s.CurrentUser(ctx, id)
}

// CurrentUser loads the authenticated user by id. A user deleted since the
// token was issued is reported as Unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidToken)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (s *AuthService) issue(u *domain.User) (domain.TokenResponse, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return domain.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return domain.NewTokenResponse(tok), nil
}

func (s *AuthService) publishRegistered(ctx context.Context, u *domain.User) {
	if err := s.events.UserRegistered(ctx, u); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", u.ID),
			slog.String("error", err.Error()),
		)
	}
}

// dummy returns a hash verified against when the identifier is unknown.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := auth.HashPassword("not-a-real-password")
		if err != nil {
			s.logger.Error("failed to build dummy hash", slog.String("error", err.Error()))
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
