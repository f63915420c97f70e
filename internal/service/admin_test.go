package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

func newAdminFixture(t *testing.T, secret string) (*AdminService, *authFixture) {
	f := newAuthFixture(t)
	return NewAdminService(f.users, f.svc, secret, newTestLogger()), f
}

func TestBootstrap_SecretUnset(t *testing.T) {
	svc, _ := newAdminFixture(t, "  ")
	_, err := svc.Bootstrap(context.Background(), BootstrapInput{Secret: "", Email: strPtr("a@b.c"), Password: "secret1"})
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))
}

func TestBootstrap_WrongSecret(t *testing.T) {
	svc, f := newAdminFixture(t, "s3cret")
	_, err := svc.Bootstrap(context.Background(), BootstrapInput{Secret: "guess", Email: strPtr("a@b.c"), Password: "secret1"})
	assert.Equal(t, http.StatusForbidden, apperrors.HTTPStatus(err))
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBootstrap_CreatesAdmin(t *testing.T) {
	svc, f := newAdminFixture(t, "s3cret")
	ctx := context.Background()
	f.users.On("FindByEmail", ctx, "boss@b.c").Return(nil, apperrors.ErrNotFound)
	f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.Role == domain.RoleAdmin })).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 1 }).
		Return(nil)
	f.events.On("UserRegistered", ctx, mock.Anything).Return(nil)

	v, err := svc.Bootstrap(ctx, BootstrapInput{Secret: " s3cret\n", Email: strPtr("boss@b.c"), Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ID)
	assert.Equal(t, domain.RoleAdmin, v.Role)
	assert.Equal(t, "boss@b.c", *v.Email)
}

func TestBootstrap_EmailTaken(t *testing.T) {
	svc, f := newAdminFixture(t, "s3cret")
	ctx := context.Background()
	f.users.On("FindByEmail", ctx, "boss@b.c").Return(&domain.User{ID: 1}, nil)

	_, err := svc.Bootstrap(ctx, BootstrapInput{Secret: "s3cret", Email: strPtr("boss@b.c"), Password: "secret1"})
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(err))
}

func TestAdminUsers(t *testing.T) {
	svc, f := newAdminFixture(t, "")
	ctx := context.Background()
	email := "a@b.c"
	f.users.On("List", ctx).Return([]domain.User{{ID: 2, Email: &email, Role: domain.RoleUser, PasswordHash: "h"}}, nil)
	f.users.On("GetByID", ctx, int64(9)).Return(nil, apperrors.ErrNotFound)
	f.users.On("Delete", ctx, int64(2)).Return(nil)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)

	_, err = svc.GetUser(ctx, 9)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))

	del, err := svc.DeleteUser(ctx, 2)
	require.NoError(t, err)
	assert.True(t, del.OK)
}
