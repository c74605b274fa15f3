package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todolist/internal/apperr"
	"todolist/internal/model"
)

// GormStore is the relational Store implementation backed by GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateProject(ctx context.Context, p *model.Project) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Duplicatef("project with name %q already exists", p.Name)
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *GormStore) GetProject(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Preload("Tasks").First(&project, id).Error
	switch {
	case err == nil:
		return &project, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find project: %w", err)
	}
}

func (s *GormStore) GetAllProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.WithContext(ctx).Preload("Tasks").Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *GormStore) GetProjectByName(ctx context.Context, name string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Preload("Tasks").
		Where("LOWER(name) = LOWER(?)", name).First(&project).Error
	switch {
	case err == nil:
		return &project, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find project by name: %w", err)
	}
}

func (s *GormStore) UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error) {
	db := s.db.WithContext(ctx)

	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("project with id %d not found", id)
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}

	if err := db.Save(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicatef("project with name %q already exists", project.Name)
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &project, nil
}

func (s *GormStore) DeleteProject(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Project{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("project with id %d not found", id)
	}
	return nil
}

func (s *GormStore) ProjectNameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check project name: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) CountProjects(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return int(count), nil
}

func (s *GormStore) CreateTask(ctx context.Context, t *model.Task) error {
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *GormStore) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

func (s *GormStore) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormStore) GetTasksByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).
		Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}
	return tasks, nil
}

func (s *GormStore) GetOverdueTasks(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.db.WithContext(ctx).
		Where("deadline IS NOT NULL AND deadline < ? AND status <> ? AND closed_at IS NULL",
			now, model.StatusDone).
		Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormStore) UpdateTask(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error) {
	db := s.db.WithContext(ctx)

	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("task with id %d not found", id)
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	applyTaskPatch(&task, patch, time.Now())

	if err := db.Save(&task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

func (s *GormStore) DeleteTask(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Task{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("task with id %d not found", id)
	}
	return nil
}

func (s *GormStore) CloseTask(ctx context.Context, id uint, now time.Time) (*model.Task, error) {
	db := s.db.WithContext(ctx)

	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("task with id %d not found", id)
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if task.Status == model.StatusDone && task.ClosedAt != nil {
		return &task, nil
	}

	task.Status = model.StatusDone
	if task.ClosedAt == nil {
		task.ClosedAt = &now
	}
	if err := db.Save(&task).Error; err != nil {
		return nil, fmt.Errorf("close task: %w", err)
	}
	return &task, nil
}

func (s *GormStore) CountTasks(ctx context.Context, projectID uint) (int, error) {
	query := s.db.WithContext(ctx).Model(&model.Task{})
	if projectID != 0 {
		query = query.Where("project_id = ?", projectID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return int(count), nil
}

// applyTaskPatch copies set patch fields onto the task. A status change to
// done stamps ClosedAt once, matching the explicit close operation.
func applyTaskPatch(task *model.Task, patch TaskPatch, now time.Time) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
		if task.Status == model.StatusDone && task.ClosedAt == nil {
			task.ClosedAt = &now
		}
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}
}
