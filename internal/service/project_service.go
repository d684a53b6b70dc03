package service

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// ProjectInput carries project fields before validation.
type ProjectInput struct {
	Name        string
	Description string
}

// ProjectService describes project operations scoped to an owner. Lookups
// return (nil, nil) both for missing projects and projects owned by someone
// else.
type ProjectService interface {
	CreateProject(ctx context.Context, input ProjectInput, ownerID int64) (*domain.Project, error)
	GetUserProjects(ctx context.Context, ownerID int64) ([]*domain.Project, error)
	GetProjectByID(ctx context.Context, id, ownerID int64) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, input ProjectInput, ownerID int64) (*domain.Project, error)
	UpdateProjectStatus(ctx context.Context, id int64, status string, ownerID int64) (*domain.Project, error)
	DeleteProject(ctx context.Context, id, ownerID int64) (bool, error)
}

type projectService struct {
	projects repository.ProjectRepository
	now      Clock
}

func NewProjectService(projects repository.ProjectRepository, now Clock) ProjectService {
	return &projectService{
		projects: projects,
		now:      now,
	}
}

func (s *projectService) CreateProject(ctx context.Context, input ProjectInput, ownerID int64) (*domain.Project, error) {
	owner, err := domain.NewUserID(ownerID)
	if err != nil {
		return nil, err
	}

	project, err := domain.NewProject(input.Name, input.Description, owner, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetUserProjects(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	owner, err := domain.NewUserID(ownerID)
	if err != nil {
		return nil, err
	}
	return s.projects.FindByUserID(ctx, owner)
}

func (s *projectService) GetProjectByID(ctx context.Context, id, ownerID int64) (*domain.Project, error) {
	projectID, err := domain.NewProjectID(id)
	if err != nil {
		return nil, err
	}
	owner, err := domain.NewUserID(ownerID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project, ok := owned(project, owner)
	if !ok {
		return nil, nil
	}
	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id int64, input ProjectInput, ownerID int64) (*domain.Project, error) {
	project, err := s.GetProjectByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	if err := project.Update(input.Name, input.Description, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) UpdateProjectStatus(ctx context.Context, id int64, status string, ownerID int64) (*domain.Project, error) {
	project, err := s.GetProjectByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	parsed, err := domain.ParseProjectStatus(status)
	if err != nil {
		return nil, err
	}
	project.ChangeStatus(parsed, s.now().UTC())
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id, ownerID int64) (bool, error) {
	project, err := s.GetProjectByID(ctx, id, ownerID)
	if err != nil {
		return false, err
	}
	if project == nil {
		return false, nil
	}
	return s.projects.Delete(ctx, project.ID())
}
