package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// ParseTaskStatus maps a raw status token to a TaskStatus. Any token outside
// the enum is a ValidationError.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch TaskStatus(raw) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(raw), nil
	}
	return "", Validationf("invalid task status: %q", raw)
}

// Task is a unit of work inside a project. It carries both the parent
// ProjectID and the owning UserID; the task does not re-verify that the
// project exists, that is the caller's job.
type Task struct {
	id          TaskID
	title       string
	description string
	status      TaskStatus
	dueDate     *time.Time
	projectID   ProjectID
	ownerID     UserID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTask builds an unsaved task with status todo.
func NewTask(title, description string, dueDate *time.Time, projectID ProjectID, ownerID UserID, now time.Time) (*Task, error) {
	if err := validateTaskTitle(title); err != nil {
		return nil, err
	}
	return &Task{
		title:       title,
		description: description,
		status:      TaskStatusTodo,
		dueDate:     dueDate,
		projectID:   projectID,
		ownerID:     ownerID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreTask rebuilds a persisted task from storage fields.
func RestoreTask(id TaskID, title, description string, status TaskStatus, dueDate *time.Time, projectID ProjectID, ownerID UserID, createdAt, updatedAt time.Time) (*Task, error) {
	if err := validateTaskTitle(title); err != nil {
		return nil, err
	}
	return &Task{
		id:          id,
		title:       title,
		description: description,
		status:      status,
		dueDate:     dueDate,
		projectID:   projectID,
		ownerID:     ownerID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func validateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return Validationf("task title cannot be blank")
	}
	if len(title) < 3 {
		return Validationf("task title must be at least 3 characters long")
	}
	if len(title) > 255 {
		return Validationf("task title cannot exceed 255 characters")
	}
	return nil
}

func (t *Task) ID() TaskID           { return t.id }
func (t *Task) Title() string        { return t.title }
func (t *Task) Description() string  { return t.description }
func (t *Task) Status() TaskStatus   { return t.status }
func (t *Task) DueDate() *time.Time  { return t.dueDate }
func (t *Task) ProjectID() ProjectID { return t.projectID }
func (t *Task) OwnerID() UserID      { return t.ownerID }
func (t *Task) CreatedAt() time.Time { return t.createdAt }
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

func (t *Task) IsNew() bool { return t.id == 0 }

// AssignID records the storage-issued id. It refuses to reassign.
func (t *Task) AssignID(id TaskID) error {
	if t.id != 0 {
		return Validationf("task id already assigned")
	}
	t.id = id
	return nil
}

func (t *Task) Update(title, description string, dueDate *time.Time, now time.Time) error {
	if err := validateTaskTitle(title); err != nil {
		return err
	}
	t.title = title
	t.description = description
	t.dueDate = dueDate
	t.updatedAt = now
	return nil
}

// ChangeStatus moves the task to the given status. Any status is reachable
// from any other; there is no transition graph.
func (t *Task) ChangeStatus(status TaskStatus, now time.Time) {
	t.status = status
	t.updatedAt = now
}
