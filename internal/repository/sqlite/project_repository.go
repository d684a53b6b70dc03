package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProjectsTable); err != nil {
		return fmt.Errorf("create projects table: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description, status, user_id, created_at, updated_at
FROM projects
WHERE id = ?`,
		id.Int64(),
	)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) FindByUserID(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, status, user_id, created_at, updated_at
FROM projects
WHERE user_id = ?
ORDER BY id`,
		ownerID.Int64(),
	)
	if err != nil {
		return nil, fmt.Errorf("query projects by user: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *domain.Project) error {
	if project.IsNew() {
		res, err := r.db.ExecContext(ctx, `
INSERT INTO projects (name, description, status, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
			project.Name(),
			project.Description(),
			string(project.Status()),
			project.OwnerID().Int64(),
			project.CreatedAt(),
			project.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("project last insert id: %w", err)
		}
		projectID, err := domain.NewProjectID(id)
		if err != nil {
			return fmt.Errorf("project insert id: %w", err)
		}
		return project.AssignID(projectID)
	}

	if _, err := r.db.ExecContext(ctx, `
UPDATE projects
SET name = ?, description = ?, status = ?, updated_at = ?
WHERE id = ?`,
		project.Name(),
		project.Description(),
		string(project.Status()),
		project.UpdatedAt(),
		project.ID().Int64(),
	); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id.Int64())
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete project rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanProject(row interface {
	Scan(dest ...any) error
}) (*domain.Project, error) {
	var (
		id          int64
		name        string
		description string
		status      string
		userID      int64
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &name, &description, &status, &userID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}

	projectID, err := domain.NewProjectID(id)
	if err != nil {
		return nil, fmt.Errorf("stored project id: %w", err)
	}
	ownerID, err := domain.NewUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("stored project owner id: %w", err)
	}
	parsedStatus, err := domain.ParseProjectStatus(status)
	if err != nil {
		return nil, fmt.Errorf("stored project status: %w", err)
	}
	project, err := domain.RestoreProject(projectID, name, description, parsedStatus, ownerID, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("restore project: %w", err)
	}
	return project, nil
}
