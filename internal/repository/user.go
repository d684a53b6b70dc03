package repository

import (
	"context"

	"taskboard/internal/domain"
)

// UserRepository defines persistence operations for User aggregates.
//
// FindByID and FindByEmail return (nil, nil) when no user matches; a non-nil
// error always means the storage call itself failed. Save upserts: for a new
// entity it inserts and assigns the storage-issued id before returning.
type UserRepository interface {
	Init(ctx context.Context) error
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id domain.UserID) (bool, error)
}
