package domain

import (
	"strings"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// ParseProjectStatus maps a raw status token to a ProjectStatus. Any token
// outside the enum is a ValidationError.
func ParseProjectStatus(raw string) (ProjectStatus, error) {
	switch ProjectStatus(raw) {
	case ProjectStatusPending, ProjectStatusInProgress, ProjectStatusCompleted:
		return ProjectStatus(raw), nil
	}
	return "", Validationf("invalid project status: %q", raw)
}

// Project is a user-owned container for tasks. Tasks reference it by
// ProjectID; the project does not hold a task list.
type Project struct {
	id          ProjectID
	name        string
	description string
	status      ProjectStatus
	ownerID     UserID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProject builds an unsaved project with status pending.
func NewProject(name, description string, ownerID UserID, now time.Time) (*Project, error) {
	if err := validateProjectName(name); err != nil {
		return nil, err
	}
	return &Project{
		name:        name,
		description: description,
		status:      ProjectStatusPending,
		ownerID:     ownerID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreProject rebuilds a persisted project from storage fields.
func RestoreProject(id ProjectID, name, description string, status ProjectStatus, ownerID UserID, createdAt, updatedAt time.Time) (*Project, error) {
	if err := validateProjectName(name); err != nil {
		return nil, err
	}
	return &Project{
		id:          id,
		name:        name,
		description: description,
		status:      status,
		ownerID:     ownerID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func validateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Validationf("project name cannot be blank")
	}
	if len(name) < 3 {
		return Validationf("project name must be at least 3 characters long")
	}
	if len(name) > 255 {
		return Validationf("project name cannot exceed 255 characters")
	}
	return nil
}

func (p *Project) ID() ProjectID         { return p.id }
func (p *Project) Name() string          { return p.name }
func (p *Project) Description() string   { return p.description }
func (p *Project) Status() ProjectStatus { return p.status }
func (p *Project) OwnerID() UserID       { return p.ownerID }
func (p *Project) CreatedAt() time.Time  { return p.createdAt }
func (p *Project) UpdatedAt() time.Time  { return p.updatedAt }

func (p *Project) IsNew() bool { return p.id == 0 }

// AssignID records the storage-issued id. It refuses to reassign.
func (p *Project) AssignID(id ProjectID) error {
	if p.id != 0 {
		return Validationf("project id already assigned")
	}
	p.id = id
	return nil
}

func (p *Project) Update(name, description string, now time.Time) error {
	if err := validateProjectName(name); err != nil {
		return err
	}
	p.name = name
	p.description = description
	p.updatedAt = now
	return nil
}

// ChangeStatus moves the project to the given status. Any status is
// reachable from any other; there is no transition graph.
func (p *Project) ChangeStatus(status ProjectStatus, now time.Time) {
	p.status = status
	p.updatedAt = now
}
