package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todolist/internal/apperr"
	"todolist/internal/config"
	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/validation"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	ProjectID   uint
	Description string
	Deadline    *time.Time
}

// TaskService wraps task-related business rules around the store.
type TaskService struct {
	store  repository.Store
	limits config.Limits
}

func NewTaskService(store repository.Store, limits config.Limits) *TaskService {
	return &TaskService{store: store, limits: limits}
}

// Create validates the referenced project, the fields, the deadline and
// the per-project task ceiling, then delegates to storage. New tasks start
// in the todo status.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*model.Task, error) {
	project, err := s.store.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFoundf("project with id %d not found", in.ProjectID)
	}

	if err := validation.NonEmpty("task title", in.Title); err != nil {
		return nil, err
	}
	if err := validation.MaxLength("task title", in.Title, s.limits.MaxTaskTitleLength); err != nil {
		return nil, err
	}
	if err := validation.MaxLength("task description", in.Description, s.limits.MaxTaskDescriptionLength); err != nil {
		return nil, err
	}
	if err := validation.DeadlineNotPast(in.Deadline, time.Now()); err != nil {
		return nil, err
	}

	count, err := s.store.CountTasks(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	if err := validation.CountCeiling("tasks per project", count, s.limits.MaxTasksPerProject); err != nil {
		return nil, err
	}

	task := &model.Task{
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Status:      model.StatusTodo,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the task or a NotFound error when the id is absent.
func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFoundf("task with id %d not found", id)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.store.GetAllTasks(ctx)
}

// ListByProject returns the tasks of an existing project.
func (s *TaskService) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFoundf("project with id %d not found", projectID)
	}
	return s.store.GetTasksByProject(ctx, projectID)
}

// ListOverdue returns the tasks that are overdue right now.
func (s *TaskService) ListOverdue(ctx context.Context) ([]model.Task, error) {
	return s.store.GetOverdueTasks(ctx, time.Now())
}

// Update applies a partial update. Only the fields present in the patch
// are validated; unspecified fields are left untouched.
func (s *TaskService) Update(ctx context.Context, id uint, patch repository.TaskPatch) (*model.Task, error) {
	if patch.Title != nil {
		if err := validation.NonEmpty("task title", *patch.Title); err != nil {
			return nil, err
		}
		if err := validation.MaxLength("task title", *patch.Title, s.limits.MaxTaskTitleLength); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if err := validation.MaxLength("task description", *patch.Description, s.limits.MaxTaskDescriptionLength); err != nil {
			return nil, err
		}
	}
	if patch.Deadline != nil {
		if err := validation.DeadlineNotPast(patch.Deadline, time.Now()); err != nil {
			return nil, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperr.Validationf("invalid task status %q", *patch.Status)
	}

	return s.store.UpdateTask(ctx, id, patch)
}

// ChangeStatus moves the task to the given status. A change to done stamps
// ClosedAt once, same as Close.
func (s *TaskService) ChangeStatus(ctx context.Context, id uint, status model.Status) (*model.Task, error) {
	if !status.Valid() {
		return nil, apperr.Validationf("invalid task status %q", status)
	}
	return s.store.UpdateTask(ctx, id, repository.TaskPatch{Status: &status})
}

// Close marks the task done and stamps ClosedAt. Closing an already-closed
// task is a no-op.
func (s *TaskService) Close(ctx context.Context, id uint) (*model.Task, error) {
	return s.store.CloseTask(ctx, id, time.Now())
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	return s.store.DeleteTask(ctx, id)
}

// AutoCloseOverdue closes every task that is currently overdue. It is
// best-effort: a failing close does not stop the batch. It returns the
// number of tasks closed and the joined errors of any failures.
func (s *TaskService) AutoCloseOverdue(ctx context.Context) (int, error) {
	overdue, err := s.ListOverdue(ctx)
	if err != nil {
		return 0, err
	}

	closed := 0
	var errs []error
	for _, task := range overdue {
		if _, err := s.Close(ctx, task.ID); err != nil {
			errs = append(errs, fmt.Errorf("close task %d: %w", task.ID, err))
			continue
		}
		closed++
	}
	return closed, errors.Join(errs...)
}
