package service

import (
	"context"
	"time"

	"taskboard/internal/domain"
)

// In-memory repositories backing the service tests. They honor the port
// contracts: (nil, nil) for missing rows, never-nil slices, Save assigning
// storage ids to new entities.

type memUserRepo struct {
	seq   int64
	users map[domain.UserID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[domain.UserID]*domain.User)}
}

func (r *memUserRepo) Init(ctx context.Context) error { return nil }

func (r *memUserRepo) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email() == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Save(ctx context.Context, user *domain.User) error {
	if user.IsNew() {
		r.seq++
		id, err := domain.NewUserID(r.seq)
		if err != nil {
			return err
		}
		if err := user.AssignID(id); err != nil {
			return err
		}
	}
	r.users[user.ID()] = user
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

type memProjectRepo struct {
	seq      int64
	projects map[domain.ProjectID]*domain.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[domain.ProjectID]*domain.Project)}
}

func (r *memProjectRepo) Init(ctx context.Context) error { return nil }

func (r *memProjectRepo) FindByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	return r.projects[id], nil
}

func (r *memProjectRepo) FindByUserID(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error) {
	result := make([]*domain.Project, 0)
	for i := int64(1); i <= r.seq; i++ {
		if project, ok := r.projects[domain.ProjectID(i)]; ok && project.OwnerID() == ownerID {
			result = append(result, project)
		}
	}
	return result, nil
}

func (r *memProjectRepo) Save(ctx context.Context, project *domain.Project) error {
	if project.IsNew() {
		r.seq++
		id, err := domain.NewProjectID(r.seq)
		if err != nil {
			return err
		}
		if err := project.AssignID(id); err != nil {
			return err
		}
	}
	r.projects[project.ID()] = project
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id domain.ProjectID) (bool, error) {
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

type memTaskRepo struct {
	seq   int64
	tasks map[domain.TaskID]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[domain.TaskID]*domain.Task)}
}

func (r *memTaskRepo) Init(ctx context.Context) error { return nil }

func (r *memTaskRepo) FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	return r.tasks[id], nil
}

func (r *memTaskRepo) FindByProjectID(ctx context.Context, projectID domain.ProjectID) ([]*domain.Task, error) {
	result := make([]*domain.Task, 0)
	for i := int64(1); i <= r.seq; i++ {
		if task, ok := r.tasks[domain.TaskID(i)]; ok && task.ProjectID() == projectID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (r *memTaskRepo) Save(ctx context.Context, task *domain.Task) error {
	if task.IsNew() {
		r.seq++
		id, err := domain.NewTaskID(r.seq)
		if err != nil {
			return err
		}
		if err := task.AssignID(id); err != nil {
			return err
		}
	}
	r.tasks[task.ID()] = task
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id domain.TaskID) (bool, error) {
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (fakeHasher) Verify(plaintext, hash string) bool { return hash == "hashed:"+plaintext }

type fakeTokens struct {
	issued int
}

func (f *fakeTokens) Issue(userID domain.UserID) (string, error) {
	f.issued++
	return "token", nil
}

// tickingClock returns a Clock advancing one second per call.
func tickingClock(start time.Time) Clock {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}
