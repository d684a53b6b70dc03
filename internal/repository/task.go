package repository

import (
	"context"

	"taskboard/internal/domain"
)

// TaskRepository exposes persistence operations for Task aggregates.
//
// FindByID returns (nil, nil) when no task matches. FindByProjectID returns
// an empty, id-ordered slice (never nil) when the project has no tasks. Save
// upserts and assigns the storage-issued id to new entities. Delete reports
// whether a row was actually removed.
type TaskRepository interface {
	Init(ctx context.Context) error
	FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	FindByProjectID(ctx context.Context, projectID domain.ProjectID) ([]*domain.Task, error)
	Save(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id domain.TaskID) (bool, error)
}
