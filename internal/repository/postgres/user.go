package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/database"
	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

const userColumns = `id, email, phone, password_hash, role, created_at`

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A duplicate email or phone is reported as
// AlreadyExists naming the offending field.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (err error) {
	query := `
		INSERT INTO users (email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "users.Create", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query, u.Email, u.Phone, u.PasswordHash, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return duplicateUser(err, u)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func duplicateUser(err error, u *domain.User) error {
	if database.ConstraintName(err) == "users_phone_key" && u.Phone != nil {
		return apperrors.AlreadyExists("user", "phone", *u.Phone)
	}
	if u.Email != nil {
		return apperrors.AlreadyExists("user", "email", *u.Email)
	}
	if u.Phone != nil {
		return apperrors.AlreadyExists("user", "phone", *u.Phone)
	}
	return apperrors.Conflict("user already exists")
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "users.GetByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.User, error) {
	return r.getOne(ctx, "users.FindByEmailOrPhone",
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR phone = $1 ORDER BY id LIMIT 1`, identifier)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "users.FindByEmail", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getOne(ctx, "users.FindByPhone", `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

func (r *UserRepository) List(ctx context.Context) (_ []domain.User, err error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC`

	ctx, end := database.TraceQuery(ctx, "users.List", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err = scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (err error) {
	query := `DELETE FROM users WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "users.Delete", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("user", strconv.FormatInt(id, 10))
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (_ *domain.User, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	var u domain.User
	if err = scanUser(r.db.QueryRow(ctx, query, arg), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanUser(row pgx.Row, u *domain.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
}
