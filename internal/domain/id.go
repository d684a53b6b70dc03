package domain

// Identifier types for the three aggregates. The zero value marks an entity
// that has not been persisted yet; storage assigns the real id on first save.

type UserID int64

func NewUserID(v int64) (UserID, error) {
	if v <= 0 {
		return 0, Validationf("user id must be positive, got %d", v)
	}
	return UserID(v), nil
}

func (id UserID) Int64() int64 { return int64(id) }

type ProjectID int64

func NewProjectID(v int64) (ProjectID, error) {
	if v <= 0 {
		return 0, Validationf("project id must be positive, got %d", v)
	}
	return ProjectID(v), nil
}

func (id ProjectID) Int64() int64 { return int64(id) }

type TaskID int64

func NewTaskID(v int64) (TaskID, error) {
	if v <= 0 {
		return 0, Validationf("task id must be positive, got %d", v)
	}
	return TaskID(v), nil
}

func (id TaskID) Int64() int64 { return int64(id) }
