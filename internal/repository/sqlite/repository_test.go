package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewProjectRepository(db).Init(ctx))
	require.NoError(t, NewTaskRepository(db).Init(ctx))
	return db
}

func seedUser(t *testing.T, db *sql.DB, email string) *domain.User {
	t.Helper()

	addr, err := domain.NewEmail(email)
	require.NoError(t, err)
	user, err := domain.NewUser("Alice", addr, "hash", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, err)
	require.NoError(t, NewUserRepository(db).Save(context.Background(), user))
	return user
}

func seedProject(t *testing.T, db *sql.DB, owner domain.UserID) *domain.Project {
	t.Helper()

	project, err := domain.NewProject("My Project", "notes", owner, time.Now().UTC().Truncate(time.Second))
	require.NoError(t, err)
	require.NoError(t, NewProjectRepository(db).Save(context.Background(), project))
	return project
}

func TestUserRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	saved := seedUser(t, db, "alice@example.com")
	require.False(t, saved.IsNew())

	loaded, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.ID(), loaded.ID())
	assert.Equal(t, saved.Name(), loaded.Name())
	assert.Equal(t, saved.Email(), loaded.Email())
	assert.Equal(t, saved.Password(), loaded.Password())
	assert.Nil(t, loaded.EmailVerifiedAt())
	assert.WithinDuration(t, saved.CreatedAt(), loaded.CreatedAt(), time.Second)

	byEmail, err := repo.FindByEmail(ctx, saved.Email())
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, saved.ID(), byEmail.ID())
}

func TestUserFindMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.FindByID(ctx, domain.UserID(42))
	assert.NoError(t, err)
	assert.Nil(t, user)

	addr, err := domain.NewEmail("nobody@example.com")
	require.NoError(t, err)
	user, err = repo.FindByEmail(ctx, addr)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserSaveUpdatesMutableFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	now := time.Now().UTC().Truncate(time.Second).Add(time.Hour)

	newEmail, err := domain.NewEmail("alice.smith@example.com")
	require.NoError(t, err)
	require.NoError(t, user.UpdateProfile("Alice Smith", newEmail, now))
	user.MarkEmailVerified(now)
	user.SetRememberToken("remember-me", now)
	require.NoError(t, repo.Save(ctx, user))

	loaded, err := repo.FindByID(ctx, user.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Alice Smith", loaded.Name())
	assert.Equal(t, newEmail, loaded.Email())
	assert.Equal(t, "remember-me", loaded.RememberToken())
	require.NotNil(t, loaded.EmailVerifiedAt())
	assert.WithinDuration(t, now, *loaded.EmailVerifiedAt(), time.Second)
}

func TestUserDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")

	deleted, err := repo.Delete(ctx, user.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, user.ID())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserDuplicateEmailConflicts(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice@example.com")

	addr, err := domain.NewEmail("alice@example.com")
	require.NoError(t, err)
	dup, err := domain.NewUser("Other Alice", addr, "hash", time.Now().UTC())
	require.NoError(t, err)

	err = repo.Save(ctx, dup)
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestProjectRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	saved := seedProject(t, db, user.ID())
	require.False(t, saved.IsNew())

	loaded, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.ID(), loaded.ID())
	assert.Equal(t, "My Project", loaded.Name())
	assert.Equal(t, "notes", loaded.Description())
	assert.Equal(t, domain.ProjectStatusPending, loaded.Status())
	assert.Equal(t, user.ID(), loaded.OwnerID())
	assert.WithinDuration(t, saved.CreatedAt(), loaded.CreatedAt(), time.Second)
}

func TestProjectFindByUserID(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	first := seedProject(t, db, alice.ID())
	second := seedProject(t, db, alice.ID())
	seedProject(t, db, bob.ID())

	projects, err := repo.FindByUserID(ctx, alice.ID())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID(), projects[0].ID())
	assert.Equal(t, second.ID(), projects[1].ID())

	none, err := repo.FindByUserID(ctx, domain.UserID(999))
	require.NoError(t, err)
	require.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProjectSaveUpdatesAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	project := seedProject(t, db, user.ID())

	now := time.Now().UTC().Truncate(time.Second).Add(time.Hour)
	require.NoError(t, project.Update("Renamed", "new notes", now))
	project.ChangeStatus(domain.ProjectStatusCompleted, now)
	require.NoError(t, repo.Save(ctx, project))

	loaded, err := repo.FindByID(ctx, project.ID())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name())
	assert.Equal(t, domain.ProjectStatusCompleted, loaded.Status())

	deleted, err := repo.Delete(ctx, project.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, project.ID())
	require.NoError(t, err)
	assert.False(t, deleted)

	gone, err := repo.FindByID(ctx, project.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestTaskRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	project := seedProject(t, db, user.ID())

	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	task, err := domain.NewTask("Write report", "quarterly numbers", &due, project.ID(), user.ID(), time.Now().UTC().Truncate(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, task))
	require.False(t, task.IsNew())

	loaded, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, task.ID(), loaded.ID())
	assert.Equal(t, "Write report", loaded.Title())
	assert.Equal(t, "quarterly numbers", loaded.Description())
	assert.Equal(t, domain.TaskStatusTodo, loaded.Status())
	assert.Equal(t, project.ID(), loaded.ProjectID())
	assert.Equal(t, user.ID(), loaded.OwnerID())
	require.NotNil(t, loaded.DueDate())
	assert.WithinDuration(t, due, *loaded.DueDate(), time.Second)
}

func TestTaskWithoutDueDate(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	project := seedProject(t, db, user.ID())

	task, err := domain.NewTask("Write report", "", nil, project.ID(), user.ID(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, task))

	loaded, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Nil(t, loaded.DueDate())
}

func TestTaskFindByProjectID(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	project := seedProject(t, db, user.ID())
	other := seedProject(t, db, user.ID())

	for _, title := range []string{"First task", "Second task"} {
		task, err := domain.NewTask(title, "", nil, project.ID(), user.ID(), time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, task))
	}

	tasks, err := repo.FindByProjectID(ctx, project.ID())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "First task", tasks[0].Title())
	assert.Equal(t, "Second task", tasks[1].Title())

	empty, err := repo.FindByProjectID(ctx, other.ID())
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDeletingProjectCascadesToTasks(t *testing.T) {
	db := openTestDB(t)
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	project := seedProject(t, db, user.ID())

	task, err := domain.NewTask("Write report", "", nil, project.ID(), user.ID(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, tasks.Save(ctx, task))

	deleted, err := projects.Delete(ctx, project.ID())
	require.NoError(t, err)
	require.True(t, deleted)

	gone, err := tasks.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}
