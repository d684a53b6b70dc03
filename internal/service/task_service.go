package service

import (
	"context"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// dueDateLayout is the external representation of a task due date.
const dueDateLayout = "2006-01-02"

// TaskInput carries task fields before validation. An empty DueDate means no
// due date.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
}

// TaskService describes task operations. Per-task lookups gate on the task's
// own owner id; project-scoped operations (create, list) additionally verify
// the caller owns the parent project, so a foreign project behaves exactly
// like a missing one.
type TaskService interface {
	CreateTask(ctx context.Context, input TaskInput, projectID, ownerID int64) (*domain.Task, error)
	GetProjectTasks(ctx context.Context, projectID, ownerID int64) ([]*domain.Task, error)
	GetTaskByID(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, input TaskInput, ownerID int64) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status string, ownerID int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, ownerID int64) (bool, error)
}

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	now      Clock
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, now Clock) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		now:      now,
	}
}

// ownedProject resolves a project id against the caller; (nil, nil) covers
// both "missing" and "not yours".
func (s *taskService) ownedProject(ctx context.Context, projectID, ownerID int64) (*domain.Project, error) {
	id, err := domain.NewProjectID(projectID)
	if err != nil {
		return nil, err
	}
	owner, err := domain.NewUserID(ownerID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project, ok := owned(project, owner)
	if !ok {
		return nil, nil
	}
	return project, nil
}

func (s *taskService) CreateTask(ctx context.Context, input TaskInput, projectID, ownerID int64) (*domain.Task, error) {
	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	project, err := s.ownedProject(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	task, err := domain.NewTask(input.Title, input.Description, dueDate, project.ID(), project.OwnerID(), s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetProjectTasks(ctx context.Context, projectID, ownerID int64) ([]*domain.Task, error) {
	project, err := s.ownedProject(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return s.tasks.FindByProjectID(ctx, project.ID())
}

func (s *taskService) GetTaskByID(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	taskID, err := domain.NewTaskID(id)
	if err != nil {
		return nil, err
	}
	owner, err := domain.NewUserID(ownerID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task, ok := owned(task, owner)
	if !ok {
		return nil, nil
	}
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id int64, input TaskInput, ownerID int64) (*domain.Task, error) {
	task, err := s.GetTaskByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	if err := task.Update(input.Title, input.Description, dueDate, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, id int64, status string, ownerID int64) (*domain.Task, error) {
	task, err := s.GetTaskByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}
	task.ChangeStatus(parsed, s.now().UTC())
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id, ownerID int64) (bool, error) {
	task, err := s.GetTaskByID(ctx, id, ownerID)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, nil
	}
	return s.tasks.Delete(ctx, task.ID())
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return nil, domain.Validationf("invalid due date %q, expected YYYY-MM-DD", raw)
	}
	return &due, nil
}
