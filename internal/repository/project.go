package repository

import (
	"context"

	"taskboard/internal/domain"
)

// ProjectRepository exposes persistence operations for Project aggregates.
//
// FindByID returns (nil, nil) when no project matches. FindByUserID returns
// an empty, id-ordered slice (never nil) when the user owns nothing. Save
// upserts and assigns the storage-issued id to new entities. Delete reports
// whether a row was actually removed.
type ProjectRepository interface {
	Init(ctx context.Context) error
	FindByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
	FindByUserID(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error)
	Save(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id domain.ProjectID) (bool, error)
}
