package repository

import (
	"context"
	"time"

	"todolist/internal/model"
)

// ProjectPatch carries the fields of a partial project update. Nil fields
// are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// TaskPatch carries the fields of a partial task update. Nil fields are
// left untouched; clearing a deadline is not supported.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *model.Status
	Deadline    *time.Time
}

// Store is the persistence contract shared by the relational and the
// in-memory implementations.
//
// Get* methods return (nil, nil) when the id is absent; callers decide
// whether absence is an error. Update, delete and close operations return
// a NotFound apperr for absent ids. Create methods assign the next id and
// populate the creation timestamp.
type Store interface {
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id uint) (*model.Project, error)
	GetAllProjects(ctx context.Context) ([]model.Project, error)
	GetProjectByName(ctx context.Context, name string) (*model.Project, error)
	UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error)
	DeleteProject(ctx context.Context, id uint) error
	// ProjectNameExists reports whether a project other than excludeID
	// already uses the name. Comparison is case-insensitive. Pass
	// excludeID 0 to consider all projects.
	ProjectNameExists(ctx context.Context, name string, excludeID uint) (bool, error)
	CountProjects(ctx context.Context) (int, error)

	CreateTask(ctx context.Context, t *model.Task) error
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	GetTasksByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	// GetOverdueTasks returns tasks with a deadline before now that are
	// not done and have never been closed. Point-in-time query; callers
	// re-evaluate on each invocation.
	GetOverdueTasks(ctx context.Context, now time.Time) ([]model.Task, error)
	UpdateTask(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
	// CloseTask sets the status to done and stamps ClosedAt. Closing an
	// already-closed task is a no-op.
	CloseTask(ctx context.Context, id uint, now time.Time) (*model.Task, error)
	// CountTasks counts tasks in the given project, or all tasks when
	// projectID is 0.
	CountTasks(ctx context.Context, projectID uint) (int, error)
}
