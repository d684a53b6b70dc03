package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	remember_token TEXT NOT NULL DEFAULT '',
	email_verified_at DATETIME NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, remember_token, email_verified_at, created_at, updated_at
FROM users
WHERE id = ?`,
		id.Int64(),
	)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, remember_token, email_verified_at, created_at, updated_at
FROM users
WHERE email = ?`,
		email.String(),
	)
	return scanUser(row)
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	var verifiedAt sql.NullTime
	if user.EmailVerifiedAt() != nil {
		verifiedAt = sql.NullTime{Time: *user.EmailVerifiedAt(), Valid: true}
	}

	if user.IsNew() {
		res, err := r.db.ExecContext(ctx, `
INSERT INTO users (name, email, password_hash, remember_token, email_verified_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			user.Name(),
			user.Email().String(),
			user.Password(),
			user.RememberToken(),
			verifiedAt,
			user.CreatedAt(),
			user.UpdatedAt(),
		)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				return domain.Conflictf("email %s is already registered", user.Email())
			}
			return fmt.Errorf("insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("user last insert id: %w", err)
		}
		userID, err := domain.NewUserID(id)
		if err != nil {
			return fmt.Errorf("user insert id: %w", err)
		}
		return user.AssignID(userID)
	}

	if _, err := r.db.ExecContext(ctx, `
UPDATE users
SET name = ?, email = ?, password_hash = ?, remember_token = ?, email_verified_at = ?, updated_at = ?
WHERE id = ?`,
		user.Name(),
		user.Email().String(),
		user.Password(),
		user.RememberToken(),
		verifiedAt,
		user.UpdatedAt(),
		user.ID().Int64(),
	); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return domain.Conflictf("email %s is already registered", user.Email())
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.Int64())
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		id           int64
		name         string
		email        string
		passwordHash string
		rememberTok  string
		verifiedAt   sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &name, &email, &passwordHash, &rememberTok, &verifiedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	userID, err := domain.NewUserID(id)
	if err != nil {
		return nil, fmt.Errorf("stored user id: %w", err)
	}
	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("stored user email: %w", err)
	}
	var verified *time.Time
	if verifiedAt.Valid {
		v := verifiedAt.Time
		verified = &v
	}
	user, err := domain.RestoreUser(userID, name, addr, passwordHash, rememberTok, verified, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("restore user: %w", err)
	}
	return user, nil
}
