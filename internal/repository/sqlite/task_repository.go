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

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	due_date DATETIME NULL,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, status, due_date, project_id, user_id, created_at, updated_at
FROM tasks
WHERE id = ?`,
		id.Int64(),
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) FindByProjectID(ctx context.Context, projectID domain.ProjectID) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, status, due_date, project_id, user_id, created_at, updated_at
FROM tasks
WHERE project_id = ?
ORDER BY id`,
		projectID.Int64(),
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks by project: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *domain.Task) error {
	var dueDate sql.NullTime
	if task.DueDate() != nil {
		dueDate = sql.NullTime{Time: *task.DueDate(), Valid: true}
	}

	if task.IsNew() {
		res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (title, description, status, due_date, project_id, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			task.Title(),
			task.Description(),
			string(task.Status()),
			dueDate,
			task.ProjectID().Int64(),
			task.OwnerID().Int64(),
			task.CreatedAt(),
			task.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("task last insert id: %w", err)
		}
		taskID, err := domain.NewTaskID(id)
		if err != nil {
			return fmt.Errorf("task insert id: %w", err)
		}
		return task.AssignID(taskID)
	}

	if _, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET title = ?, description = ?, status = ?, due_date = ?, updated_at = ?
WHERE id = ?`,
		task.Title(),
		task.Description(),
		string(task.Status()),
		dueDate,
		task.UpdatedAt(),
		task.ID().Int64(),
	); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id domain.TaskID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.Int64())
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanTask(row interface {
	Scan(dest ...any) error
}) (*domain.Task, error) {
	var (
		id          int64
		title       string
		description string
		status      string
		dueDate     sql.NullTime
		projectID   int64
		userID      int64
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &title, &description, &status, &dueDate, &projectID, &userID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	taskID, err := domain.NewTaskID(id)
	if err != nil {
		return nil, fmt.Errorf("stored task id: %w", err)
	}
	parentID, err := domain.NewProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("stored task project id: %w", err)
	}
	ownerID, err := domain.NewUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("stored task owner id: %w", err)
	}
	parsedStatus, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, fmt.Errorf("stored task status: %w", err)
	}
	var due *time.Time
	if dueDate.Valid {
		v := dueDate.Time
		due = &v
	}
	task, err := domain.RestoreTask(taskID, title, description, parsedStatus, due, parentID, ownerID, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("restore task: %w", err)
	}
	return task, nil
}
